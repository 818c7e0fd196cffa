package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"image-judge/internal/domain"
	"image-judge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrListingUnsupported is returned when none of the configured stores can read records back.
var ErrListingUnsupported = errors.New("no configured result store supports listing")

// MultiResultStore writes every record to all of its stores concurrently.
type MultiResultStore struct {
	stores []domain.ResultStore
}

// NewMultiResultStore combines stores. A single store is returned as is.
func NewMultiResultStore(stores ...domain.ResultStore) domain.ResultStore {
	if len(stores) == 1 {
		return stores[0]
	}
	return &MultiResultStore{stores: stores}
}

func (m *MultiResultStore) Name() string {
	names := make([]string, len(m.stores))
	for i, s := range m.stores {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// SaveResult waits for every store. A failing store does not cancel the others. The
// record counts as already persisted only when every store reports so.
func (m *MultiResultStore) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	errs := make([]error, len(m.stores))
	var g errgroup.Group
	for i, store := range m.stores {
		i, store := i, store
		g.Go(func() error {
			if err := store.SaveResult(ctx, record); err != nil {
				errs[i] = fmt.Errorf("%s: %w", store.Name(), err)
				return errs[i]
			}
			return nil
		})
	}
	if g.Wait() == nil {
		return nil
	}

	duplicates := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, domain.ErrAlreadyPersisted) {
			duplicates++
			continue
		}
		logger.Get().Error("Result store write failed", zap.String("recordID", record.ID), zap.Error(err))
	}
	if duplicates == len(m.stores) {
		return domain.ErrAlreadyPersisted
	}
	return errors.Join(errs...)
}

// ListResults reads from the first store that supports listing.
func (m *MultiResultStore) ListResults(ctx context.Context, limit int) ([]*domain.SummaryRecord, error) {
	for _, s := range m.stores {
		if lister, ok := s.(domain.ResultLister); ok {
			return lister.ListResults(ctx, limit)
		}
	}
	return nil, ErrListingUnsupported
}
