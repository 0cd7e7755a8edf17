package domain

import "strconv"

type Note struct {
	ID        int64
	Date      string
	Text      string
	AuthorID  int64
	Author    string
	CreatedAt string
}

// Viewer is who is looking at the notes, as read from the session claims.
type Viewer struct {
	SubjectID string
	FullName  string
}

// Deletable offers delete to the author only. The name match covers
// backends that omit author_id.
func (n Note) Deletable(v Viewer) bool {
	if v.SubjectID != "" && n.AuthorID != 0 && v.SubjectID == strconv.FormatInt(n.AuthorID, 10) {
		return true
	}
	return v.FullName != "" && n.Author != "" && v.FullName == n.Author
}
