package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"image-judge/internal/app"
	"image-judge/internal/domain"
	"image-judge/internal/dto"
	"image-judge/internal/validation"

	"github.com/spf13/cobra"
)

// NewResultsCmd groups commands over stored summaries.
func NewResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Read stored quiz summaries",
	}
	cmd.AddCommand(newResultsListCmd())
	return cmd
}

func newResultsListCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent summaries from the SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := validation.NewValidator().ValidateResultLimit(limit); len(errs) > 0 {
				return errs
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			repo, closer, err := app.OpenResultRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer closer()
			return listResults(ctx, repo, limit, asJSON, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of summaries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func listResults(ctx context.Context, lister domain.ResultLister, limit int, asJSON bool, out io.Writer) error {
	records, err := lister.ListResults(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}

	resp := dto.ResultListResponse{Results: make([]dto.ResultItem, 0, len(records))}
	for _, r := range records {
		resp.Results = append(resp.Results, dto.ResultItem{
			ID:              r.ID,
			UserID:          r.UserID,
			Accuracy:        r.Accuracy,
			WFAccuracy:      r.WFAccuracy,
			WOFAccuracy:     r.WOFAccuracy,
			NoFeedbackFirst: r.NoFeedbackFirst,
			CreatedAt:       r.CreatedAt,
		})
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tACCURACY\tWITH FEEDBACK\tNO FEEDBACK\tORDER\tCREATED")
	for _, item := range resp.Results {
		order := "feedback first"
		if item.NoFeedbackFirst {
			order = "no feedback first"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%.2f%%\t%.2f%%\t%s\t%s\n",
			item.ID, item.UserID, item.Accuracy, item.WFAccuracy, item.WOFAccuracy, order,
			item.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
