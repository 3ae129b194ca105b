package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfpack-fantasy/leaguehub/internal/domain/writeup"
)

type WriteupService struct {
	repo writeup.Repository
}

func NewWriteupService(repo writeup.Repository) *WriteupService {
	return &WriteupService{repo: repo}
}

func (s *WriteupService) List(ctx context.Context) ([]writeup.Writeup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WriteupService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list writeups: %w", err)
	}

	return items, nil
}

func (s *WriteupService) Latest(ctx context.Context) (writeup.Writeup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WriteupService.Latest")
	defer span.End()

	item, exists, err := s.repo.Latest(ctx)
	if err != nil {
		return writeup.Writeup{}, fmt.Errorf("get latest writeup: %w", err)
	}
	if !exists {
		return writeup.Writeup{}, fmt.Errorf("%w: no writeups published yet", ErrNotFound)
	}

	return item, nil
}

func (s *WriteupService) Create(ctx context.Context, w writeup.Writeup) (writeup.Writeup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WriteupService.Create")
	defer span.End()

	w.Title = strings.TrimSpace(w.Title)
	w.Content = strings.TrimSpace(w.Content)
	if err := w.Validate(); err != nil {
		return writeup.Writeup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, w)
	if err != nil {
		return writeup.Writeup{}, fmt.Errorf("create writeup week=%d: %w", w.Week, err)
	}

	return created, nil
}
