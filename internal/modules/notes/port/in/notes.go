package in

import (
	"context"

	"grafik/internal/modules/notes/dto"
)

type Usecase interface {
	List(ctx context.Context, date string) ([]dto.NoteOutput, error)
	Add(ctx context.Context, date, text string) (dto.NoteOutput, error)
	Delete(ctx context.Context, id int64) error
}
