package service

import (
	"context"
	"fmt"
	"strings"

	"grafik/internal/modules/notes/domain"
	notesout "grafik/internal/modules/notes/port/out"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
)

type NotesService struct {
	gateway notesout.NoteGateway
}

func NewNotesService(gateway notesout.NoteGateway) *NotesService {
	return &NotesService{gateway: gateway}
}

func (s *NotesService) List(ctx context.Context, date string) ([]domain.Note, error) {
	iso, err := clock.NormalizeDate(date)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w: %w", apperrors.ErrInvalidInput, err)
	}
	return s.gateway.List(ctx, iso)
}

func (s *NotesService) Add(ctx context.Context, date, text string) (domain.Note, error) {
	iso, err := clock.NormalizeDate(date)
	if err != nil {
		return domain.Note{}, fmt.Errorf("add note: %w: %w", apperrors.ErrInvalidInput, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Note{}, fmt.Errorf("add note: %w: text is empty", apperrors.ErrInvalidInput)
	}
	return s.gateway.Add(ctx, iso, text)
}

// Delete is not pre-blocked; the backend decides who may delete.
func (s *NotesService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("delete note: %w: id is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.Delete(ctx, id)
}
