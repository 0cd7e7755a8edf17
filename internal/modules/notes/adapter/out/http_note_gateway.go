package out

import (
	"context"
	"fmt"
	"net/url"

	"grafik/internal/modules/notes/domain"
	notesout "grafik/internal/modules/notes/port/out"
	"grafik/internal/platform/httpapi"
)

type noteWire struct {
	ID        int64  `json:"id"`
	NoteDate  string `json:"note_date"`
	Text      string `json:"text"`
	AuthorID  int64  `json:"author_id"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

func (w noteWire) domain() domain.Note {
	return domain.Note{ID: w.ID, Date: w.NoteDate, Text: w.Text, AuthorID: w.AuthorID, Author: w.Author, CreatedAt: w.CreatedAt}
}

type HTTPNoteGateway struct {
	client *httpapi.Client
}

func NewHTTPNoteGateway(client *httpapi.Client) notesout.NoteGateway {
	return &HTTPNoteGateway{client: client}
}

func (g *HTTPNoteGateway) List(ctx context.Context, date string) ([]domain.Note, error) {
	var wire []noteWire
	if err := g.client.Get(ctx, "/day-notes", url.Values{"date": {date}}, &wire); err != nil {
		return nil, fmt.Errorf("list notes for %s: %w", date, err)
	}
	out := make([]domain.Note, 0, len(wire))
	for _, n := range wire {
		out = append(out, n.domain())
	}
	return out, nil
}

func (g *HTTPNoteGateway) Add(ctx context.Context, date, text string) (domain.Note, error) {
	body := struct {
		Date string `json:"date"`
		Text string `json:"text"`
	}{Date: date, Text: text}
	var wire noteWire
	if err := g.client.Post(ctx, "/day-notes", body, &wire); err != nil {
		return domain.Note{}, fmt.Errorf("add note for %s: %w", date, err)
	}
	return wire.domain(), nil
}

func (g *HTTPNoteGateway) Delete(ctx context.Context, id int64) error {
	if err := g.client.Delete(ctx, fmt.Sprintf("/day-notes/%d", id), nil); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return nil
}
