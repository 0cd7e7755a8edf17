package dto

type CreateInput struct {
	TargetUserID int64
	MyDate       string
	TheirDate    string
	MyCode       string
	TheirCode    string
}

type TakeoverInput struct {
	TargetUserID int64
	Date         string
}

type PartyOutput struct {
	ID       int64
	FullName string
}

// RowOutput is a proposal laid out for one tab.
type RowOutput struct {
	ID       int64
	From     string
	To       string
	GiveDate string
	GiveCode string
	GetDate  string
	GetCode  string
	Status   string
	Actions  []string
	Fallback bool
}

type ListOutput struct {
	Incoming    []RowOutput
	Outgoing    []RowOutput
	Manager     []RowOutput
	ShowManager bool
}

type OfferOutput struct {
	ID        int64
	Status    string
	Date      string
	Code      string
	Owner     PartyOutput
	Candidate *PartyOutput
	CreatedAt string
	Actions   []string
}

type MarketOutput struct {
	Open []OfferOutput
	Mine []OfferOutput
}
