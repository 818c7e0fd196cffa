package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"image-judge/internal/app"
	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/repository"
	"image-judge/internal/service"
	"image-judge/internal/stats"
	"image-judge/internal/util"

	"github.com/spf13/cobra"
)

var errInputClosed = errors.New("input closed before the quiz finished")

// NewPlayCmd runs one session in the terminal.
func NewPlayCmd() *cobra.Command {
	var (
		poolFile string
		persist  bool
		tick     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if poolFile != "" {
				cfg.Quiz.PoolFile = poolFile
			}
			if tick <= 0 {
				tick = cfg.Quiz.TickInterval
			}
			images, err := app.LoadPool(cfg)
			if err != nil {
				return err
			}

			var store domain.ResultStore
			userID := ""
			if persist {
				var closer app.Closer
				store, closer = app.NewResultStore(ctx, cfg, nil)
				defer closer()
				userID = util.NewULID()
			}

			svc := service.NewSessionService(
				repository.NewMemorySessionRepository(0),
				images,
				service.NewPersistenceGateway(store),
				0,
			)
			return play(ctx, svc, userID, cmd.InOrStdin(), cmd.OutOrStdout(), tick)
		},
	}
	cmd.Flags().StringVar(&poolFile, "pool", "", "path to a YAML pool file")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the summary in the configured backends")
	cmd.Flags().DurationVar(&tick, "tick", 0, "clock refresh interval (defaults to quiz.tick_interval)")
	return cmd
}

type player struct {
	ctx   context.Context
	svc   service.SessionService
	lines <-chan string
	out   io.Writer
	tick  time.Duration
}

func play(ctx context.Context, svc service.SessionService, userID string, in io.Reader, out io.Writer, tick time.Duration) error {
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := &player{ctx: ctx, svc: svc, lines: readLines(ctx, in), out: out, tick: tick}

	resp, err := svc.Create(ctx, userID)
	if err != nil {
		return err
	}
	id := resp.ID

	fmt.Fprintln(out, "AI or Real? You will see 20 images. Decide whether each one was generated by AI.")
	if userID != "" {
		fmt.Fprint(out, "May we store your anonymous results for research? [y/N] ")
	} else {
		fmt.Fprint(out, "Consent to research use (results are not stored in this run)? [y/N] ")
	}
	line, err := p.readLine()
	if err != nil {
		return err
	}
	if resp, err = svc.Consent(ctx, id, isYes(line)); err != nil {
		return err
	}

	fmt.Fprintln(out, "One half of the images shows whether you were right after each answer, the other half does not.")
	fmt.Fprint(out, "Press Enter to begin. ")
	if _, err := p.readLine(); err != nil {
		return err
	}
	if resp, err = svc.Begin(ctx, id); err != nil {
		return err
	}

	for resp.Phase == string(domain.PhaseEvaluation) {
		if resp.Feedback != nil {
			p.showFeedback(resp.Feedback)
			if _, err := p.readLine(); err != nil {
				return err
			}
			resp, err = svc.Advance(ctx, id)
		} else {
			var aiGenerated bool
			if aiGenerated, err = p.ask(resp); err != nil {
				return err
			}
			resp, err = svc.Answer(ctx, id, aiGenerated)
		}
		if err != nil {
			return err
		}
	}

	summary, err := svc.Summary(ctx, id)
	if err != nil {
		return err
	}
	printSummary(out, summary)
	return svc.Drain(ctx)
}

// ask shows the question with a live clock and returns the participant's label.
func (p *player) ask(resp *dto.SessionResponse) (bool, error) {
	q := resp.Question
	fmt.Fprintf(p.out, "\nImage %d/%d  [set %d: %s]\n%s\n", q.Number, q.Total, q.Set, q.ModeLabel, q.Locator)

	started := time.Now().Add(-time.Duration(resp.ElapsedMs) * time.Millisecond)
	sw := domain.StartStopwatch(started)
	ctx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	clock := domain.RunTicker(ctx, p.tick, time.Now, func() domain.Stopwatch { return sw })

	prompt := "[a] AI-generated  [r] real: "
	fmt.Fprint(p.out, prompt)
	for {
		select {
		case elapsed, ok := <-clock:
			if !ok {
				clock = nil
				continue
			}
			fmt.Fprintf(p.out, "\r%s %s ", prompt, stats.FormatClock(elapsed.Milliseconds()))
		case line, ok := <-p.lines:
			if !ok {
				return false, errInputClosed
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "a", "ai":
				return true, nil
			case "r", "real":
				return false, nil
			}
			fmt.Fprint(p.out, prompt)
		case <-p.ctx.Done():
			return false, p.ctx.Err()
		}
	}
}

func (p *player) showFeedback(f *dto.FeedbackView) {
	verdict := "Wrong"
	if f.IsCorrect {
		verdict = "Correct"
	}
	fmt.Fprintf(p.out, "%s! The image is %s. You answered %s in %s s.\n", verdict, describeLabel(f.CorrectLabel), describeLabel(f.UserLabel), f.ResponseTime)
	fmt.Fprint(p.out, "Press Enter for the next image. ")
}

func (p *player) readLine() (string, error) {
	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", errInputClosed
		}
		return line, nil
	case <-p.ctx.Done():
		return "", p.ctx.Err()
	}
}

func printSummary(out io.Writer, s *dto.SummaryResponse) {
	fmt.Fprintf(out, "\nYou identified %d of %d images correctly (%.1f%%).\n", s.CorrectAnswers, s.TotalQuestions, s.Accuracy)
	fmt.Fprintf(out, "Average response time %s s, total %s s.\n", stats.FormatSeconds(s.AverageResponseMs, 2), s.TotalTime)
	fmt.Fprintf(out, "Mode order %s: %s\n", s.ModeOrder, s.ModeOrderDescription)
	for _, h := range s.Halves {
		fmt.Fprintf(out, "  Images %s, %s: %d/%d correct (%.1f%%), average %s s\n",
			h.Range, h.ModeName, h.CorrectAnswers, domain.HalfSize, h.Accuracy, h.AverageResponse)
	}
	fmt.Fprintln(out, "\nDetails:")
	for _, d := range s.Details {
		mark := "x"
		if d.IsCorrect {
			mark = "ok"
		}
		fmt.Fprintf(out, "  %2d. %-8s %-4s answered %-5s actual %-5s %s s  %s\n",
			d.Position, d.ImageID, mark, describeLabel(d.UserLabel), describeLabel(d.CorrectLabel), d.ResponseTime, d.Mode)
	}
}

func describeLabel(label string) string {
	if label == domain.LabelFake {
		return "AI"
	}
	return "real"
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// readLines feeds input lines to the returned channel until the input ends or ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
