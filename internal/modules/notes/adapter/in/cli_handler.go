package in

import (
	"context"

	"grafik/internal/modules/notes/dto"
	notesin "grafik/internal/modules/notes/port/in"
)

type CLIHandler struct {
	usecase notesin.Usecase
}

func NewCLIHandler(usecase notesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, date string) ([]dto.NoteOutput, error) {
	return h.usecase.List(ctx, date)
}

func (h CLIHandler) Add(ctx context.Context, date, text string) (dto.NoteOutput, error) {
	return h.usecase.Add(ctx, date, text)
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}
