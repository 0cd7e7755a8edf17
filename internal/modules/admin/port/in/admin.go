package in

import (
	"context"

	"grafik/internal/modules/admin/dto"
)

type Usecase interface {
	ImportPDF(ctx context.Context, input dto.FileImportInput) (dto.ImportOutput, error)
	ImportXLSX(ctx context.Context, input dto.FileImportInput) (dto.ImportOutput, error)
	ImportText(ctx context.Context, input dto.TextImportInput) (dto.ImportOutput, error)
	Users(ctx context.Context) ([]dto.UserOutput, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (dto.UserOutput, error)
}
