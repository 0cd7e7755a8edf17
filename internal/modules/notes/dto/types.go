package dto

type NoteOutput struct {
	ID        int64
	Date      string
	Text      string
	Author    string
	CreatedAt string
	Deletable bool
}
