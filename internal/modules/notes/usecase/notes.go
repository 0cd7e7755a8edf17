package usecase

import (
	"context"

	"grafik/internal/modules/notes/domain"
	"grafik/internal/modules/notes/dto"
	notesin "grafik/internal/modules/notes/port/in"
	"grafik/internal/modules/notes/service"
	sessionin "grafik/internal/modules/session/port/in"
)

type Interactor struct {
	svc     *service.NotesService
	session sessionin.Usecase
}

func NewInteractor(svc *service.NotesService, session sessionin.Usecase) notesin.Usecase {
	return &Interactor{svc: svc, session: session}
}

func (i *Interactor) List(ctx context.Context, date string) ([]dto.NoteOutput, error) {
	notes, err := i.svc.List(ctx, date)
	if err != nil {
		return nil, err
	}
	viewer := i.viewer(ctx)
	out := make([]dto.NoteOutput, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNote(n, viewer))
	}
	return out, nil
}

func (i *Interactor) Add(ctx context.Context, date, text string) (dto.NoteOutput, error) {
	note, err := i.svc.Add(ctx, date, text)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return toNote(note, i.viewer(ctx)), nil
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) viewer(ctx context.Context) domain.Viewer {
	if i.session == nil {
		return domain.Viewer{}
	}
	identity, err := i.session.Current(ctx)
	if err != nil {
		return domain.Viewer{}
	}
	return domain.Viewer{SubjectID: identity.SubjectID, FullName: identity.FullName}
}

func toNote(n domain.Note, v domain.Viewer) dto.NoteOutput {
	return dto.NoteOutput{
		ID:        n.ID,
		Date:      n.Date,
		Text:      n.Text,
		Author:    n.Author,
		CreatedAt: n.CreatedAt,
		Deletable: n.Deletable(v),
	}
}
