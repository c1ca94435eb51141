// Package messenger is an SDK for the Messenger platform: it classifies
// webhook callbacks into typed events and builds the wire bodies for the
// send and profile-settings endpoints.
package messenger

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pagewire/pagewire/pkg/config"
	"github.com/pagewire/pagewire/pkg/transport"
)

const (
	sendPath    = "me/messages"
	profilePath = "me/messenger_profile"
	uploadPath  = "me/message_attachments"
	psidPath    = "me"
)

// Client talks to the platform on behalf of one page. It embeds a Dispatcher,
// so webhook event registration happens directly on the client. Multiple
// clients (multiple pages) never share handler registries.
type Client struct {
	*Dispatcher

	accessToken      string
	verifyToken      string
	webhookPath      string
	baseURL          string
	notificationType NotificationType

	doer transport.Doer
	log  zerolog.Logger
}

// Option configures a Client beyond its Config.
type Option func(*Client)

// WithDoer replaces the outbound HTTP client.
func WithDoer(d transport.Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client from cfg. A missing access token is a *ConfigError.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil || cfg.AccessToken == "" {
		return nil, &ConfigError{Field: "access_token", Reason: "must provide an access token"}
	}

	c := &Client{
		Dispatcher:       NewDispatcher(),
		accessToken:      cfg.AccessToken,
		verifyToken:      cfg.VerifyToken,
		webhookPath:      cfg.WebhookPath,
		baseURL:          cfg.BaseURL,
		notificationType: NotificationType(cfg.NotificationType),
		doer:             transport.NewRestyDoer(0),
		log:              zerolog.Nop(),
	}
	if c.webhookPath == "" {
		c.webhookPath = "/"
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultBaseURL
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	if c.notificationType == "" {
		c.notificationType = NotificationRegular
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WebhookPath returns the path the webhook handler should be mounted on.
func (c *Client) WebhookPath() string { return c.webhookPath }

// SendOptions are the high-level call options for one send. Exactly one of
// Text, Attachment, or SenderAction must be set.
type SendOptions struct {
	RecipientID  string
	Text         string
	Attachment   *OutboundAttachment
	QuickReplies []QuickReply
	SenderAction ActionType
	// NotificationType overrides the client default for this send.
	NotificationType NotificationType
	// MessagingType defaults to RESPONSE.
	MessagingType MessagingType
	// Filedata switches the send to a multipart upload: recipient and message
	// travel as JSON form fields and the binary as the filedata part. Requires
	// Attachment.
	Filedata     io.Reader
	FiledataName string
}

// buildSendEnvelope turns call options into the exact send endpoint body. It
// is pure: o is read, never written.
func (c *Client) buildSendEnvelope(o SendOptions) (*SendEnvelope, error) {
	if o.RecipientID == "" {
		return nil, &ConfigError{Field: "recipient_id", Reason: "must provide a recipient"}
	}

	env := &SendEnvelope{
		Recipient:     Party{ID: o.RecipientID},
		MessagingType: o.MessagingType,
	}
	if env.MessagingType == "" {
		env.MessagingType = MessagingTypeResponse
	}

	switch {
	case o.SenderAction != "":
		// Sender actions carry no notification type on the wire.
		env.SenderAction = o.SenderAction
	case o.Text != "" || o.Attachment != nil:
		msg := &OutboundMessage{QuickReplies: o.QuickReplies}
		if o.Attachment != nil {
			att := *o.Attachment
			msg.Attachment = &att
		} else {
			msg.Text = o.Text
		}
		env.Message = msg
		env.NotificationType = o.NotificationType
		if env.NotificationType == "" {
			env.NotificationType = c.notificationType
		}
	default:
		return nil, &ConfigError{Field: "message", Reason: "must provide text, an attachment, or a sender action"}
	}

	return env, nil
}

// Send builds and posts one send envelope.
func (c *Client) Send(ctx context.Context, o SendOptions) (json.RawMessage, error) {
	if o.Filedata != nil && o.Attachment == nil {
		return nil, &ConfigError{Field: "filedata", Reason: "filedata requires an attachment"}
	}

	env, err := c.buildSendEnvelope(o)
	if err != nil {
		return nil, err
	}
	if o.Filedata != nil {
		return c.postFile(ctx, sendPath, env, o.FiledataName, o.Filedata)
	}
	return c.post(ctx, sendPath, env)
}

// SendText sends a plain text message, optionally with quick reply chips.
func (c *Client) SendText(ctx context.Context, recipientID, text string, quickReplies ...QuickReply) (json.RawMessage, error) {
	return c.Send(ctx, SendOptions{
		RecipientID:  recipientID,
		Text:         text,
		QuickReplies: quickReplies,
	})
}

// SendAction sends a typing indicator or read receipt signal.
func (c *Client) SendAction(ctx context.Context, recipientID string, action ActionType) (json.RawMessage, error) {
	return c.Send(ctx, SendOptions{RecipientID: recipientID, SenderAction: action})
}

// SendAttachment sends an attachment message of any type.
func (c *Client) SendAttachment(ctx context.Context, recipientID string, att OutboundAttachment, quickReplies ...QuickReply) (json.RawMessage, error) {
	return c.Send(ctx, SendOptions{
		RecipientID:  recipientID,
		Attachment:   &att,
		QuickReplies: quickReplies,
	})
}

// SendFiledata sends an attachment message with its binary uploaded inline as
// a multipart form instead of referenced by URL.
func (c *Client) SendFiledata(ctx context.Context, recipientID string, att OutboundAttachment, fileName string, filedata io.Reader) (json.RawMessage, error) {
	return c.Send(ctx, SendOptions{
		RecipientID:  recipientID,
		Attachment:   &att,
		Filedata:     filedata,
		FiledataName: fileName,
	})
}

func (c *Client) SendImage(ctx context.Context, recipientID string, media MediaPayload) (json.RawMessage, error) {
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeImage, Payload: media})
}

func (c *Client) SendAudio(ctx context.Context, recipientID string, media MediaPayload) (json.RawMessage, error) {
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeAudio, Payload: media})
}

func (c *Client) SendVideo(ctx context.Context, recipientID string, media MediaPayload) (json.RawMessage, error) {
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeVideo, Payload: media})
}

func (c *Client) SendFile(ctx context.Context, recipientID string, media MediaPayload) (json.RawMessage, error) {
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeFile, Payload: media})
}

// SendButtons sends a button template message.
func (c *Client) SendButtons(ctx context.Context, recipientID, text string, buttons ...Button) (json.RawMessage, error) {
	tpl := NewButtonTemplate(text, buttons...)
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeTemplate, Payload: tpl})
}

// SendGeneric sends a generic (carousel) template message.
func (c *Client) SendGeneric(ctx context.Context, recipientID string, aspectRatio ImageAspectRatio, elements ...Element) (json.RawMessage, error) {
	tpl := NewGenericTemplate(aspectRatio, elements...)
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeTemplate, Payload: tpl})
}

// SendList sends a list template message.
func (c *Client) SendList(ctx context.Context, recipientID string, tpl ListTemplate) (json.RawMessage, error) {
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeTemplate, Payload: tpl})
}

// SendReceipt sends a receipt template message.
func (c *Client) SendReceipt(ctx context.Context, recipientID string, receipt ReceiptTemplate) (json.RawMessage, error) {
	tpl := NewReceipt(receipt)
	return c.SendAttachment(ctx, recipientID, OutboundAttachment{Type: AttachmentTypeTemplate, Payload: tpl})
}

// Upload registers an attachment for reuse. The upload endpoint wants a bare
// message wrapper with no recipient.
func (c *Client) Upload(ctx context.Context, att OutboundAttachment) (json.RawMessage, error) {
	body := struct {
		Message OutboundMessage `json:"message"`
	}{Message: OutboundMessage{Attachment: &att}}
	return c.post(ctx, uploadPath, body)
}

// SetGetStarted configures the get-started button.
func (c *Client) SetGetStarted(ctx context.Context, payload string) (json.RawMessage, error) {
	return c.post(ctx, profilePath, profileSettings{GetStarted: &GetStarted{Payload: payload}})
}

// SetGreeting configures the localized greeting texts.
func (c *Client) SetGreeting(ctx context.Context, greetings ...GreetingText) (json.RawMessage, error) {
	return c.post(ctx, profilePath, profileSettings{Greeting: greetings})
}

// SetPersistentMenu configures the localized persistent menus.
func (c *Client) SetPersistentMenu(ctx context.Context, menus ...PersistentMenu) (json.RawMessage, error) {
	return c.post(ctx, profilePath, profileSettings{PersistentMenu: menus})
}

// SetWhitelistedDomains whitelists domains for webviews and extensions.
func (c *Client) SetWhitelistedDomains(ctx context.Context, domains ...string) (json.RawMessage, error) {
	return c.post(ctx, profilePath, profileSettings{WhitelistedDomains: domains})
}

// SetTargetAudience restricts bot discovery by country.
func (c *Client) SetTargetAudience(ctx context.Context, audience TargetAudience) (json.RawMessage, error) {
	return c.post(ctx, profilePath, profileSettings{TargetAudience: &audience})
}

// SetAccountLinkingURL configures the account linking endpoint.
func (c *Client) SetAccountLinkingURL(ctx context.Context, linkURL string) (json.RawMessage, error) {
	return c.post(ctx, profilePath, profileSettings{AccountLinkingURL: linkURL})
}

// GetUserProfile fetches profile fields for a page-scoped user ID. With no
// fields given it asks for first name, last name, and profile picture.
func (c *Client) GetUserProfile(ctx context.Context, userID string, fields ...UserProfileField) (json.RawMessage, error) {
	if len(fields) == 0 {
		fields = defaultProfileFields
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}

	q := url.Values{}
	q.Set("fields", strings.Join(names, ","))
	return c.get(ctx, userID, q)
}

// GetPSID resolves an account linking token to a page-scoped ID.
func (c *Client) GetPSID(ctx context.Context, accountLinkingToken string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("fields", "recipient")
	q.Set("account_linking_token", accountLinkingToken)
	return c.get(ctx, psidPath, q)
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	q := url.Values{}
	q.Set("access_token", c.accessToken)

	resp, err := c.doer.Post(ctx, u, q, body)
	if err != nil {
		return nil, &TransportError{Op: "POST", URL: u, Err: err}
	}
	return resp, nil
}

// postFile flattens a send envelope into multipart form fields and attaches
// the binary as the filedata part.
func (c *Client) postFile(ctx context.Context, path string, env *SendEnvelope, fileName string, file io.Reader) (json.RawMessage, error) {
	recipient, err := json.Marshal(env.Recipient)
	if err != nil {
		return nil, err
	}
	message, err := json.Marshal(env.Message)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"recipient":      string(recipient),
		"message":        string(message),
		"messaging_type": string(env.MessagingType),
	}
	if env.NotificationType != "" {
		fields["notification_type"] = string(env.NotificationType)
	}

	u := c.baseURL + path
	q := url.Values{}
	q.Set("access_token", c.accessToken)

	resp, err := c.doer.PostMultipart(ctx, u, q, fields, "filedata", fileName, file)
	if err != nil {
		return nil, &TransportError{Op: "POST", URL: u, Err: err}
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if q == nil {
		q = url.Values{}
	}
	q.Set("access_token", c.accessToken)

	resp, err := c.doer.Get(ctx, u, q)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: u, Err: err}
	}
	return resp, nil
}
