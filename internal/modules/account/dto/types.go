package dto

type ProfileOutput struct {
	ID       int64
	Email    string
	FullName string
	Role     string
	Rate     *float64
	Tax      float64
}

type ProfileInput struct {
	FullName string
	Email    string
}

type SettingsOutput struct {
	Rate *float64
	Tax  float64
}

type SettingsInput struct {
	Rate *float64
	Tax  float64
}

type StatsDayOutput struct {
	Date  string
	Code  string
	Hours float64
	Done  bool
	Gross float64
	Net   float64
}

type StatsOutput struct {
	Month         string
	From          string
	To            string
	Rate          float64
	Tax           float64
	HoursTotal    float64
	HoursDone     float64
	HoursLeft     float64
	GrossDone     float64
	NetDone       float64
	GrossAll      float64
	NetAll        float64
	TargetHours   float64
	TargetLeft    float64
	TargetPercent float64
	Daily         []StatsDayOutput
}
