package out

import (
	"context"

	"grafik/internal/modules/admin/domain"
)

// DocumentInspector reads a local roster file and rejects it before upload
// when it would not parse on the server.
type DocumentInspector interface {
	Inspect(ctx context.Context, kind domain.FileKind, path string) (domain.ImportFile, error)
}

type ImportGateway interface {
	UploadFile(ctx context.Context, path string, file domain.ImportFile, period domain.Period) (domain.ImportResult, error)
	UploadText(ctx context.Context, text string, period domain.Period) (domain.ImportResult, error)
}

type UserGateway interface {
	Users(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user domain.NewUser) (domain.User, error)
}
