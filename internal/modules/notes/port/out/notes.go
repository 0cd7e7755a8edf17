package out

import (
	"context"

	"grafik/internal/modules/notes/domain"
)

type NoteGateway interface {
	List(ctx context.Context, date string) ([]domain.Note, error)
	Add(ctx context.Context, date, text string) (domain.Note, error)
	Delete(ctx context.Context, id int64) error
}
