package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/history"
)

type HistoryService struct {
	repo history.Repository
}

func NewHistoryService(repo history.Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

func (s *HistoryService) List(ctx context.Context) ([]history.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list league history: %w", err)
	}

	return items, nil
}

func (s *HistoryService) Upsert(ctx context.Context, rec history.Record) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Upsert")
	defer span.End()

	rec.Champion = strings.TrimSpace(rec.Champion)
	rec.Manager = strings.TrimSpace(rec.Manager)
	rec.Note = strings.TrimSpace(rec.Note)
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert history year=%d: %w", rec.Year, err)
	}

	return nil
}
