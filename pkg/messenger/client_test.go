package messenger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewire/pagewire/pkg/config"
)

type capturedCall struct {
	URL   string
	Query url.Values
	Body  any
}

type capturedMultipart struct {
	URL       string
	Query     url.Values
	Fields    map[string]string
	FileField string
	FileName  string
	Data      []byte
}

// stubDoer records every call and replies with a canned body.
type stubDoer struct {
	calls      []capturedCall
	multiparts []capturedMultipart
	resp       []byte
	err        error
}

func (s *stubDoer) Post(_ context.Context, u string, q url.Values, body any) ([]byte, error) {
	s.calls = append(s.calls, capturedCall{URL: u, Query: q, Body: body})
	return s.resp, s.err
}

func (s *stubDoer) PostMultipart(_ context.Context, u string, q url.Values, fields map[string]string, fileField, fileName string, file io.Reader) ([]byte, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.multiparts = append(s.multiparts, capturedMultipart{
		URL:       u,
		Query:     q,
		Fields:    fields,
		FileField: fileField,
		FileName:  fileName,
		Data:      data,
	})
	return s.resp, s.err
}

func (s *stubDoer) Get(_ context.Context, u string, q url.Values) ([]byte, error) {
	s.calls = append(s.calls, capturedCall{URL: u, Query: q})
	return s.resp, s.err
}

func newTestClient(t *testing.T, mutate func(*config.Config)) (*Client, *stubDoer) {
	t.Helper()
	cfg := &config.Config{
		AccessToken:      "myToken",
		VerifyToken:      "myVerifyToken",
		WebhookPath:      "/webhook",
		NotificationType: "NO_PUSH",
	}
	if mutate != nil {
		mutate(cfg)
	}
	doer := &stubDoer{resp: []byte(`{"recipient_id":"333","message_id":"mid.123"}`)}
	c, err := New(cfg, WithDoer(doer))
	require.NoError(t, err)
	return c, doer
}

func lastBody(t *testing.T, doer *stubDoer) string {
	t.Helper()
	require.NotEmpty(t, doer.calls)
	raw, err := json.Marshal(doer.calls[len(doer.calls)-1].Body)
	require.NoError(t, err)
	return string(raw)
}

func TestNew_RequiresAccessToken(t *testing.T) {
	var cfgErr *ConfigError

	_, err := New(&config.Config{})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "access_token", cfgErr.Field)

	_, err = New(nil)
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(&config.Config{AccessToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "/", c.WebhookPath())
	assert.Equal(t, "https://graph.facebook.com/v2.12/", c.baseURL)
	assert.Equal(t, NotificationRegular, c.notificationType)
}

func TestNew_AppendsTrailingSlashToBaseURL(t *testing.T) {
	c, _ := newTestClient(t, func(cfg *config.Config) {
		cfg.BaseURL = "https://graph.example.test/v3.0"
	})
	assert.Equal(t, "https://graph.example.test/v3.0/", c.baseURL)
}

func TestSendText(t *testing.T) {
	c, doer := newTestClient(t, nil)

	resp, err := c.SendText(context.Background(), "333", "hi")
	require.NoError(t, err)
	assert.JSONEq(t, `{"recipient_id":"333","message_id":"mid.123"}`, string(resp))

	call := doer.calls[0]
	assert.Equal(t, "https://graph.facebook.com/v2.12/me/messages", call.URL)
	assert.Equal(t, "myToken", call.Query.Get("access_token"))
	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {"text": "hi"},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendText_BaseURLOverride(t *testing.T) {
	c, doer := newTestClient(t, func(cfg *config.Config) {
		cfg.BaseURL = "https://graph.example.test/v3.0/"
	})

	_, err := c.SendText(context.Background(), "333", "hi")
	require.NoError(t, err)
	assert.Equal(t, "https://graph.example.test/v3.0/me/messages", doer.calls[0].URL)
}

func TestSendText_QuickReplies(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SendText(context.Background(), "333", "pick one",
		NewQuickReply("Option 1", "option_1", ""),
		NewShareLocation(),
	)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"text": "pick one",
			"quick_replies": [
				{"content_type": "text", "title": "Option 1", "payload": "option_1"},
				{"content_type": "location"}
			]
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendAction_OmitsNotificationType(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SendAction(context.Background(), "333", ActionTypingOn)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"sender_action": "typing_on",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendImage(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SendImage(context.Background(), "333", MediaPayload{URL: "http://example.com/cat.png", IsReusable: true})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"attachment": {
				"type": "image",
				"payload": {"url": "http://example.com/cat.png", "is_reusable": true}
			}
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendFile_ByAttachmentID(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SendFile(context.Background(), "333", MediaPayload{AttachmentID: "1745504518999123"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"attachment": {
				"type": "file",
				"payload": {"attachment_id": "1745504518999123"}
			}
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendButtons_SingleButtonBecomesArray(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SendButtons(context.Background(), "333", "What do you want to do next?",
		NewPostbackButton("Continue", "CONTINUE"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"attachment": {
				"type": "template",
				"payload": {
					"template_type": "button",
					"text": "What do you want to do next?",
					"buttons": [{"type": "postback", "title": "Continue", "payload": "CONTINUE"}]
				}
			}
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendGeneric(t *testing.T) {
	c, doer := newTestClient(t, nil)

	el := NewElement("Title", "http://example.com/item", "http://example.com/img.png", "Subtitle",
		NewWebURLButton(WebURLButtonOptions{
			Title:              "Open",
			URL:                "http://example.com/open",
			HeightRatio:        WebviewCompact,
			SupportsExtensions: true,
			FallbackURL:        "http://example.com/fallback",
			HideShare:          true,
		}),
		NewShareButton(),
	)

	_, err := c.SendGeneric(context.Background(), "333", AspectRatioSquare, el)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"attachment": {
				"type": "template",
				"payload": {
					"template_type": "generic",
					"image_aspect_ratio": "square",
					"elements": [{
						"title": "Title",
						"item_url": "http://example.com/item",
						"image_url": "http://example.com/img.png",
						"subtitle": "Subtitle",
						"buttons": [
							{
								"type": "web_url",
								"title": "Open",
								"url": "http://example.com/open",
								"webview_height_ratio": "compact",
								"messenger_extensions": true,
								"fallback_url": "http://example.com/fallback",
								"webview_share_button": "hide"
							},
							{"type": "element_share"}
						]
					}]
				}
			}
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendList(t *testing.T) {
	c, doer := newTestClient(t, nil)

	tpl := NewListTemplate(TopElementStyleCompact,
		[]Button{NewPostbackButton("View More", "VIEW_MORE")},
		NewListElement(ListElementOptions{
			Title:    "Classic White T-Shirt",
			Subtitle: "100% cotton",
			ImageURL: "http://example.com/white.png",
			Buttons:  []Button{{Title: "Buy", URL: "http://example.com/buy-white"}},
		}),
		NewListElement(ListElementOptions{
			Title:            "Classic Blue T-Shirt",
			DefaultActionURL: "http://example.com/blue",
			Buttons:          []Button{{Title: "Details", Payload: "BLUE_DETAILS"}},
		}),
	)

	_, err := c.SendList(context.Background(), "333", tpl)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"attachment": {
				"type": "template",
				"payload": {
					"template_type": "list",
					"top_element_style": "compact",
					"buttons": [{"type": "postback", "title": "View More", "payload": "VIEW_MORE"}],
					"elements": [
						{
							"title": "Classic White T-Shirt",
							"subtitle": "100% cotton",
							"image_url": "http://example.com/white.png",
							"buttons": [{"type": "web_url", "title": "Buy", "url": "http://example.com/buy-white"}]
						},
						{
							"title": "Classic Blue T-Shirt",
							"default_action": {"type": "web_url", "url": "http://example.com/blue"},
							"buttons": [{"type": "postback", "title": "Details", "payload": "BLUE_DETAILS"}]
						}
					]
				}
			}
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendReceipt(t *testing.T) {
	c, doer := newTestClient(t, nil)

	receipt := ReceiptTemplate{
		RecipientName: "Stephane Crozatier",
		OrderNumber:   "12345678902",
		Currency:      "USD",
		PaymentMethod: "Visa 2345",
		OrderURL:      "http://example.com/order",
		Timestamp:     "1428444852",
		Elements: []ReceiptElement{
			{Title: "Classic White T-Shirt", Subtitle: "100% Soft and Luxurious Cotton", Quantity: 2, Price: 50, Currency: "USD", ImageURL: "http://example.com/white.png"},
			{Title: "Classic Gray T-Shirt", Subtitle: "100% Soft and Luxurious Cotton", Quantity: 1, Price: 25, Currency: "USD", ImageURL: "http://example.com/gray.png"},
		},
		Address: &Address{
			Street1:    "1 Hacker Way",
			City:       "Menlo Park",
			PostalCode: "94025",
			State:      "CA",
			Country:    "US",
		},
		Summary: PaymentSummary{
			Subtotal:     75.00,
			ShippingCost: 4.95,
			TotalTax:     6.19,
			TotalCost:    56.14,
		},
		Adjustments: []Adjustment{
			{Name: "New Customer Discount", Amount: 20},
			{Name: "$10 Off Coupon", Amount: 10},
		},
	}

	_, err := c.SendReceipt(context.Background(), "333", receipt)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {
			"attachment": {
				"type": "template",
				"payload": {
					"template_type": "receipt",
					"recipient_name": "Stephane Crozatier",
					"order_number": "12345678902",
					"currency": "USD",
					"payment_method": "Visa 2345",
					"order_url": "http://example.com/order",
					"timestamp": "1428444852",
					"elements": [
						{"title": "Classic White T-Shirt", "subtitle": "100% Soft and Luxurious Cotton", "quantity": 2, "price": 50, "currency": "USD", "image_url": "http://example.com/white.png"},
						{"title": "Classic Gray T-Shirt", "subtitle": "100% Soft and Luxurious Cotton", "quantity": 1, "price": 25, "currency": "USD", "image_url": "http://example.com/gray.png"}
					],
					"address": {
						"street_1": "1 Hacker Way",
						"street_2": "",
						"city": "Menlo Park",
						"postal_code": "94025",
						"state": "CA",
						"country": "US"
					},
					"summary": {
						"subtotal": 75.00,
						"shipping_cost": 4.95,
						"total_tax": 6.19,
						"total_cost": 56.14
					},
					"adjustments": [
						{"name": "New Customer Discount", "amount": 20},
						{"name": "$10 Off Coupon", "amount": 10}
					]
				}
			}
		},
		"notification_type": "NO_PUSH",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSendFiledata(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SendFiledata(context.Background(), "333",
		OutboundAttachment{Type: AttachmentTypeImage, Payload: MediaPayload{IsReusable: true}},
		"cat.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)

	require.Len(t, doer.multiparts, 1)
	up := doer.multiparts[0]
	assert.Equal(t, "https://graph.facebook.com/v2.12/me/messages", up.URL)
	assert.Equal(t, "myToken", up.Query.Get("access_token"))
	assert.Equal(t, "filedata", up.FileField)
	assert.Equal(t, "cat.png", up.FileName)
	assert.Equal(t, []byte("PNGDATA"), up.Data)

	assert.JSONEq(t, `{"id": "333"}`, up.Fields["recipient"])
	assert.JSONEq(t, `{
		"attachment": {"type": "image", "payload": {"is_reusable": true}}
	}`, up.Fields["message"])
	assert.Equal(t, "RESPONSE", up.Fields["messaging_type"])
	assert.Equal(t, "NO_PUSH", up.Fields["notification_type"])
}

func TestSend_FiledataRequiresAttachment(t *testing.T) {
	c, doer := newTestClient(t, nil)

	var cfgErr *ConfigError
	_, err := c.Send(context.Background(), SendOptions{
		RecipientID: "333",
		Text:        "hi",
		Filedata:    strings.NewReader("PNGDATA"),
	})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "filedata", cfgErr.Field)
	assert.Empty(t, doer.multiparts)
}

func TestUpload_BareMessageWrapper(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.Upload(context.Background(), OutboundAttachment{
		Type:    AttachmentTypeImage,
		Payload: MediaPayload{URL: "http://example.com/cat.png", IsReusable: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://graph.facebook.com/v2.12/me/message_attachments", doer.calls[0].URL)
	assert.JSONEq(t, `{
		"message": {
			"attachment": {
				"type": "image",
				"payload": {"url": "http://example.com/cat.png", "is_reusable": true}
			}
		}
	}`, lastBody(t, doer))
}

func TestSend_MissingRecipient(t *testing.T) {
	c, _ := newTestClient(t, nil)

	var cfgErr *ConfigError
	_, err := c.Send(context.Background(), SendOptions{Text: "hi"})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "recipient_id", cfgErr.Field)
}

func TestSend_MissingContent(t *testing.T) {
	c, _ := newTestClient(t, nil)

	var cfgErr *ConfigError
	_, err := c.Send(context.Background(), SendOptions{RecipientID: "333"})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "message", cfgErr.Field)
}

func TestSend_PerCallNotificationOverride(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.Send(context.Background(), SendOptions{
		RecipientID:      "333",
		Text:             "urgent",
		NotificationType: NotificationRegular,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recipient": {"id": "333"},
		"message": {"text": "urgent"},
		"notification_type": "REGULAR",
		"messaging_type": "RESPONSE"
	}`, lastBody(t, doer))
}

func TestSend_TransportError(t *testing.T) {
	c, doer := newTestClient(t, nil)
	doer.resp = nil
	doer.err = errors.New("connection refused")

	var transportErr *TransportError
	_, err := c.SendText(context.Background(), "333", "hi")
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "POST", transportErr.Op)
	assert.Contains(t, transportErr.URL, "me/messages")
}

func TestSetGetStarted(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SetGetStarted(context.Background(), "GET_STARTED_CLICKED")
	require.NoError(t, err)

	assert.Equal(t, "https://graph.facebook.com/v2.12/me/messenger_profile", doer.calls[0].URL)
	assert.JSONEq(t, `{"get_started": {"payload": "GET_STARTED_CLICKED"}}`, lastBody(t, doer))
}

func TestSetGreeting(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SetGreeting(context.Background(), GreetingText{Locale: "default", Text: "Welcome to My Company!"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"greeting": [{"locale": "default", "text": "Welcome to My Company!"}]}`, lastBody(t, doer))
}

func TestSetPersistentMenu(t *testing.T) {
	c, doer := newTestClient(t, nil)

	menu := PersistentMenu{
		Locale: "default",
		CallToActions: []MenuItem{
			{Title: "Help", Type: "postback", Payload: "HELP"},
			{Title: "Website", Type: "web_url", URL: "http://example.com", WebviewHeightRatio: WebviewFull},
		},
	}

	_, err := c.SetPersistentMenu(context.Background(), menu)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"persistent_menu": [{
			"locale": "default",
			"composer_input_disabled": false,
			"call_to_actions": [
				{"title": "Help", "type": "postback", "payload": "HELP"},
				{"title": "Website", "type": "web_url", "url": "http://example.com", "webview_height_ratio": "full"}
			]
		}]
	}`, lastBody(t, doer))
}

func TestSetWhitelistedDomains(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SetWhitelistedDomains(context.Background(), "https://example.com", "https://other.example.com")
	require.NoError(t, err)

	assert.JSONEq(t, `{"whitelisted_domains": ["https://example.com", "https://other.example.com"]}`, lastBody(t, doer))
}

func TestSetTargetAudience(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SetTargetAudience(context.Background(), TargetAudience{
		AudienceType: "custom",
		Countries:    &Countries{Whitelist: []string{"US", "CA"}},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"target_audience": {
			"audience_type": "custom",
			"countries": {"whitelist": ["US", "CA"]}
		}
	}`, lastBody(t, doer))
}

func TestSetAccountLinkingURL(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.SetAccountLinkingURL(context.Background(), "https://example.com/link")
	require.NoError(t, err)

	assert.JSONEq(t, `{"account_linking_url": "https://example.com/link"}`, lastBody(t, doer))
}

func TestGetUserProfile_DefaultFields(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.GetUserProfile(context.Background(), "333")
	require.NoError(t, err)

	call := doer.calls[0]
	assert.Equal(t, "https://graph.facebook.com/v2.12/333", call.URL)
	assert.Equal(t, "first_name,last_name,profile_pic", call.Query.Get("fields"))
	assert.Equal(t, "myToken", call.Query.Get("access_token"))
}

func TestGetUserProfile_ExplicitFields(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.GetUserProfile(context.Background(), "333", ProfileFieldLocale, ProfileFieldTimezone)
	require.NoError(t, err)

	assert.Equal(t, "locale,timezone", doer.calls[0].Query.Get("fields"))
}

func TestGetPSID(t *testing.T) {
	c, doer := newTestClient(t, nil)

	_, err := c.GetPSID(context.Background(), "SHORT_LIVED_TOKEN")
	require.NoError(t, err)

	call := doer.calls[0]
	assert.Equal(t, "https://graph.facebook.com/v2.12/me", call.URL)
	assert.Equal(t, "recipient", call.Query.Get("fields"))
	assert.Equal(t, "SHORT_LIVED_TOKEN", call.Query.Get("account_linking_token"))
}
