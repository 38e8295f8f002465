package domain

// PaymentState is the lifecycle state of a payment orchestration session.
type PaymentState string

const (
	PaymentIdle    PaymentState = "idle"
	PaymentPolling PaymentState = "polling"
	PaymentReady   PaymentState = "ready"
)

type PaymentSnapshot struct {
	ID               string       `json:"id"`
	State            PaymentState `json:"state"`
	Polling          bool         `json:"polling"`
	SubscriptionLink string       `json:"subscription_link,omitempty"`
	PaymentLink      string       `json:"payment_link,omitempty"`
}
