package dto

type FileImportInput struct {
	Path     string
	Year     int
	Month    int
	Advanced bool
}

type TextImportInput struct {
	Text  string
	Year  int
	Month int
}

type ImportOutput struct {
	FileName     string
	Units        int
	Imported     int
	CreatedUsers []string
}

type UserOutput struct {
	ID       int64
	FullName string
	Email    string
	Role     string
}

type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	Role     string
}
