package messenger

// Button, quick reply, and element constructors. All constructors are pure:
// they return fresh values and never touch caller-owned data.

// NewPostbackButton returns a button that posts back the given payload.
func NewPostbackButton(title, payload string) Button {
	return Button{Type: ButtonTypePostback, Title: title, Payload: payload}
}

// WebURLButtonOptions configures a web_url button.
type WebURLButtonOptions struct {
	Title string
	URL   string
	// HeightRatio sizes the opened webview; empty means platform default.
	HeightRatio WebviewHeightRatio
	// SupportsExtensions enables messenger extensions inside the webview.
	SupportsExtensions bool
	// FallbackURL is opened on clients without extension support.
	FallbackURL string
	// HideShare removes the webview's share button.
	HideShare bool
}

// NewWebURLButton returns a button opening the given URL.
func NewWebURLButton(o WebURLButtonOptions) Button {
	b := Button{
		Type:                ButtonTypeWebURL,
		Title:               o.Title,
		URL:                 o.URL,
		WebviewHeightRatio:  o.HeightRatio,
		MessengerExtensions: o.SupportsExtensions,
		FallbackURL:         o.FallbackURL,
	}
	if o.HideShare {
		b.WebviewShareButton = "hide"
	}
	return b
}

// NewAccountLinkButton returns a button starting the account linking flow.
func NewAccountLinkButton(url string) Button {
	return Button{Type: ButtonTypeAccountLink, URL: url}
}

// NewShareButton returns an element share button.
func NewShareButton() Button {
	return Button{Type: ButtonTypeShare}
}

// NewCallButton returns a button dialing the given phone number.
func NewCallButton(title, phoneNumber string) Button {
	return Button{Type: ButtonTypeCall, Title: title, Payload: phoneNumber}
}

// NewQuickReply returns a text quick reply chip. imageURL may be empty.
func NewQuickReply(title, payload, imageURL string) QuickReply {
	return QuickReply{
		ContentType: ContentTypeText,
		Title:       title,
		Payload:     payload,
		ImageURL:    imageURL,
	}
}

// NewShareLocation returns a location quick reply chip.
func NewShareLocation() QuickReply {
	return QuickReply{ContentType: ContentTypeLocation}
}
