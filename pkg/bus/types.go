package bus

// EventKind names the classified webhook event an InboundEvent came from.
type EventKind string

const (
	KindMessage  EventKind = "message"
	KindPostback EventKind = "postback"
	KindOptIn    EventKind = "optin"
	KindReferral EventKind = "referral"
)

// InboundEvent is a classified webhook event flattened for application
// consumption.
type InboundEvent struct {
	Kind        EventKind `json:"kind"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Text        string    `json:"text,omitempty"`
	Payload     string    `json:"payload,omitempty"`
	Ref         string    `json:"ref,omitempty"`
	// Media lists inbound attachment URLs in arrival order.
	Media []string `json:"media,omitempty"`
}

// OutboundSend is a queued reply.
type OutboundSend struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}
