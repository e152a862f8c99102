package mailer

// Task types consumed by the mail worker.
const (
	TaskTypeVerificationEmail = "email:verification"
	TaskTypeInviteEmail       = "email:invite"
	TaskTypeFinalizedEmail    = "email:finalized"
)

type VerificationEmailPayload struct {
	To   string `json:"to"`
	Code string `json:"code"`
}

type InviteEmailPayload struct {
	To         string `json:"to"`
	EventTitle string `json:"event_title"`
	InviteLink string `json:"invite_link"`
}

type FinalizedEmailPayload struct {
	To         string `json:"to"`
	EventTitle string `json:"event_title"`
	Date       string `json:"date"`
	TimeRange  string `json:"time_range"`
}
