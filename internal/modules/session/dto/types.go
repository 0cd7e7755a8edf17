package dto

type LoginInput struct {
	Email    string
	Password string
	Remember bool
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Remember bool
}

type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// IdentityOutput is what the stored token says about the viewer.
type IdentityOutput struct {
	SubjectID  string
	FullName   string
	Role       string
	Privileged bool
	Scope      string
}

type UserOutput struct {
	ID       int64
	Email    string
	FullName string
	Role     string
}
