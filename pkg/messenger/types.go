package messenger

// Wire shapes for the Messenger platform. Callback types use pointer fields
// for the kind-specific payloads so classification is presence-based; a single
// messaging event may carry several payloads at once.

// Callback is the envelope posted to the webhook.
type Callback struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events delivered for one page.
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// Party identifies a sender or recipient by page-scoped ID.
type Party struct {
	ID string `json:"id"`
}

// MessagingEvent is one inbound notification unit.
type MessagingEvent struct {
	Sender         Party            `json:"sender"`
	Recipient      Party            `json:"recipient"`
	Timestamp      int64            `json:"timestamp,omitempty"`
	OptIn          *OptIn           `json:"optin,omitempty"`
	Delivery       *Delivery        `json:"delivery,omitempty"`
	Postback       *Postback        `json:"postback,omitempty"`
	Referral       *Referral        `json:"referral,omitempty"`
	AccountLinking *AccountLinking  `json:"account_linking,omitempty"`
	Message        *CallbackMessage `json:"message,omitempty"`
}

type OptIn struct {
	Ref string `json:"ref"`
}

type Delivery struct {
	MessageIDs []string `json:"mids"`
	Watermark  int64    `json:"watermark"`
	Seq        int64    `json:"seq,omitempty"`
}

type Postback struct {
	Payload  string    `json:"payload"`
	Referral *Referral `json:"referral,omitempty"`
}

type Referral struct {
	Ref    string `json:"ref"`
	Source string `json:"source,omitempty"`
	Type   string `json:"type,omitempty"`
}

type AccountLinking struct {
	Status            string `json:"status"`
	AuthorizationCode string `json:"authorization_code,omitempty"`
}

// CallbackMessage is the message payload of an inbound messaging event.
type CallbackMessage struct {
	MID         string               `json:"mid,omitempty"`
	Seq         int64                `json:"seq,omitempty"`
	Text        string               `json:"text,omitempty"`
	IsEcho      bool                 `json:"is_echo,omitempty"`
	AppID       int64                `json:"app_id,omitempty"`
	Metadata    string               `json:"metadata,omitempty"`
	QuickReply  *QuickReplyRef       `json:"quick_reply,omitempty"`
	Attachments []CallbackAttachment `json:"attachments,omitempty"`
}

// QuickReplyRef is the payload echoed back when a user taps a quick reply.
type QuickReplyRef struct {
	Payload string `json:"payload"`
}

type CallbackAttachment struct {
	Type    string             `json:"type,omitempty"`
	Payload *AttachmentPayload `json:"payload,omitempty"`
}

type AttachmentPayload struct {
	URL         string       `json:"url,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// AttachmentLocation is where an inbound attachment points: a URL for media,
// coordinates for location shares.
type AttachmentLocation struct {
	URL         string       `json:"url,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// SendEnvelope is the literal body of the send endpoint.
type SendEnvelope struct {
	Recipient        Party            `json:"recipient"`
	Message          *OutboundMessage `json:"message,omitempty"`
	SenderAction     ActionType       `json:"sender_action,omitempty"`
	NotificationType NotificationType `json:"notification_type,omitempty"`
	MessagingType    MessagingType    `json:"messaging_type,omitempty"`
}

// OutboundMessage is either text or an attachment, optionally with quick
// replies.
type OutboundMessage struct {
	Text         string              `json:"text,omitempty"`
	Attachment   *OutboundAttachment `json:"attachment,omitempty"`
	QuickReplies []QuickReply        `json:"quick_replies,omitempty"`
}

// OutboundAttachment wraps a media reference or a template payload.
type OutboundAttachment struct {
	Type    AttachmentType `json:"type"`
	Payload any            `json:"payload"`
}

// MediaPayload references an image/audio/video/file by URL or attachment ID.
type MediaPayload struct {
	URL          string `json:"url,omitempty"`
	IsReusable   bool   `json:"is_reusable,omitempty"`
	AttachmentID string `json:"attachment_id,omitempty"`
}

type Button struct {
	Type                ButtonType         `json:"type,omitempty"`
	Title               string             `json:"title,omitempty"`
	URL                 string             `json:"url,omitempty"`
	Payload             string             `json:"payload,omitempty"`
	WebviewHeightRatio  WebviewHeightRatio `json:"webview_height_ratio,omitempty"`
	MessengerExtensions bool               `json:"messenger_extensions,omitempty"`
	FallbackURL         string             `json:"fallback_url,omitempty"`
	WebviewShareButton  string             `json:"webview_share_button,omitempty"`
}

type QuickReply struct {
	ContentType ContentType `json:"content_type"`
	Title       string      `json:"title,omitempty"`
	Payload     string      `json:"payload,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
}

// Element is a card in a generic or list template.
type Element struct {
	Title         string         `json:"title"`
	ItemURL       string         `json:"item_url,omitempty"`
	ImageURL      string         `json:"image_url,omitempty"`
	Subtitle      string         `json:"subtitle,omitempty"`
	Buttons       []Button       `json:"buttons,omitempty"`
	DefaultAction *DefaultAction `json:"default_action,omitempty"`
}

// DefaultAction is the tap action of a list element; its type is always
// web_url on the wire.
type DefaultAction struct {
	Type                ButtonType         `json:"type"`
	URL                 string             `json:"url"`
	WebviewHeightRatio  WebviewHeightRatio `json:"webview_height_ratio,omitempty"`
	MessengerExtensions bool               `json:"messenger_extensions,omitempty"`
	FallbackURL         string             `json:"fallback_url,omitempty"`
}

type ButtonTemplate struct {
	TemplateType TemplateType `json:"template_type"`
	Text         string       `json:"text"`
	Buttons      []Button     `json:"buttons"`
}

type GenericTemplate struct {
	TemplateType     TemplateType     `json:"template_type"`
	Elements         []Element        `json:"elements"`
	ImageAspectRatio ImageAspectRatio `json:"image_aspect_ratio,omitempty"`
}

type ListTemplate struct {
	TemplateType    TemplateType    `json:"template_type"`
	Elements        []Element       `json:"elements"`
	Buttons         []Button        `json:"buttons,omitempty"`
	TopElementStyle TopElementStyle `json:"top_element_style,omitempty"`
}

// ReceiptTemplate passes the caller's commerce fields through unchanged; only
// the template_type discriminator is stamped by the builder.
type ReceiptTemplate struct {
	TemplateType  TemplateType     `json:"template_type,omitempty"`
	RecipientName string           `json:"recipient_name"`
	OrderNumber   string           `json:"order_number"`
	Currency      string           `json:"currency"`
	PaymentMethod string           `json:"payment_method"`
	OrderURL      string           `json:"order_url,omitempty"`
	Timestamp     string           `json:"timestamp,omitempty"`
	Elements      []ReceiptElement `json:"elements,omitempty"`
	Address       *Address         `json:"address,omitempty"`
	Summary       PaymentSummary   `json:"summary"`
	Adjustments   []Adjustment     `json:"adjustments,omitempty"`
}

type ReceiptElement struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
}

type Address struct {
	Street1    string `json:"street_1"`
	Street2    string `json:"street_2"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

type PaymentSummary struct {
	Subtotal     float64 `json:"subtotal,omitempty"`
	ShippingCost float64 `json:"shipping_cost,omitempty"`
	TotalTax     float64 `json:"total_tax,omitempty"`
	TotalCost    float64 `json:"total_cost"`
}

type Adjustment struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// GreetingText is one localized greeting entry.
type GreetingText struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

// GetStarted configures the get-started button payload.
type GetStarted struct {
	Payload string `json:"payload"`
}

// MenuItem is a persistent menu entry; nested items use type "nested".
type MenuItem struct {
	Title              string             `json:"title,omitempty"`
	Type               string             `json:"type,omitempty"`
	URL                string             `json:"url,omitempty"`
	Payload            string             `json:"payload,omitempty"`
	WebviewHeightRatio WebviewHeightRatio `json:"webview_height_ratio,omitempty"`
	CallToActions      []MenuItem         `json:"call_to_actions,omitempty"`
}

// PersistentMenu is one localized persistent menu.
type PersistentMenu struct {
	Locale                string     `json:"locale"`
	ComposerInputDisabled bool       `json:"composer_input_disabled"`
	CallToActions         []MenuItem `json:"call_to_actions,omitempty"`
}

// TargetAudience restricts which countries can discover the page bot.
type TargetAudience struct {
	AudienceType string     `json:"audience_type"`
	Countries    *Countries `json:"countries,omitempty"`
}

type Countries struct {
	Whitelist []string `json:"whitelist,omitempty"`
	Blacklist []string `json:"blacklist,omitempty"`
}

// profileSettings maps each profile setting kind to its single top-level key;
// exactly one field is populated per request.
type profileSettings struct {
	GetStarted         *GetStarted      `json:"get_started,omitempty"`
	Greeting           []GreetingText   `json:"greeting,omitempty"`
	PersistentMenu     []PersistentMenu `json:"persistent_menu,omitempty"`
	WhitelistedDomains []string         `json:"whitelisted_domains,omitempty"`
	TargetAudience     *TargetAudience  `json:"target_audience,omitempty"`
	AccountLinkingURL  string           `json:"account_linking_url,omitempty"`
}
