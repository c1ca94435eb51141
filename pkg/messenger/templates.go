package messenger

// Template builders. The wire format always wants arrays for buttons and
// elements; the variadic signatures normalize a single value and a slice the
// same way, so normalization is idempotent by construction.

// NewButtonTemplate returns a button template payload.
func NewButtonTemplate(text string, buttons ...Button) ButtonTemplate {
	return ButtonTemplate{
		TemplateType: TemplateTypeButton,
		Text:         text,
		Buttons:      append([]Button(nil), buttons...),
	}
}

// NewGenericTemplate returns a generic (carousel) template payload. An empty
// aspect ratio defaults to horizontal.
func NewGenericTemplate(aspectRatio ImageAspectRatio, elements ...Element) GenericTemplate {
	if aspectRatio == "" {
		aspectRatio = AspectRatioHorizontal
	}
	return GenericTemplate{
		TemplateType:     TemplateTypeGeneric,
		Elements:         append([]Element(nil), elements...),
		ImageAspectRatio: aspectRatio,
	}
}

// NewListTemplate returns a list template payload. An empty style defaults to
// large. Buttons may be nil for a list without a global button row.
func NewListTemplate(style TopElementStyle, buttons []Button, elements ...Element) ListTemplate {
	if style == "" {
		style = TopElementStyleLarge
	}
	return ListTemplate{
		TemplateType:    TemplateTypeList,
		Elements:        append([]Element(nil), elements...),
		Buttons:         append([]Button(nil), buttons...),
		TopElementStyle: style,
	}
}

// NewReceipt stamps the receipt discriminator onto a copy of the caller's
// payload. Commerce field completeness is the caller's responsibility.
func NewReceipt(receipt ReceiptTemplate) ReceiptTemplate {
	receipt.TemplateType = TemplateTypeReceipt
	return receipt
}

// NewElement returns a generic template card.
func NewElement(title, itemURL, imageURL, subtitle string, buttons ...Button) Element {
	return Element{
		Title:    title,
		ItemURL:  itemURL,
		ImageURL: imageURL,
		Subtitle: subtitle,
		Buttons:  append([]Button(nil), buttons...),
	}
}

// ListElementOptions configures one list template element.
type ListElementOptions struct {
	Title    string
	ImageURL string
	Subtitle string
	// Buttons may be partially specified: a button with a URL but no type
	// becomes a web_url button, one with a payload becomes a postback button,
	// and an already-typed button passes through unchanged.
	Buttons []Button
	// DefaultActionURL, when set, attaches a default tap action; its type is
	// always web_url.
	DefaultActionURL string
}

// NewListElement returns a list template element, resolving untyped buttons
// by shape.
func NewListElement(o ListElementOptions) Element {
	el := Element{
		Title:    o.Title,
		ImageURL: o.ImageURL,
		Subtitle: o.Subtitle,
	}
	for _, b := range o.Buttons {
		el.Buttons = append(el.Buttons, resolveButton(b))
	}
	if o.DefaultActionURL != "" {
		el.DefaultAction = &DefaultAction{Type: ButtonTypeWebURL, URL: o.DefaultActionURL}
	}
	return el
}

// resolveButton types an untyped button by its shape: url means web_url,
// payload means postback. Typed buttons are returned as-is.
func resolveButton(b Button) Button {
	if b.Type != "" {
		return b
	}
	switch {
	case b.URL != "":
		return NewWebURLButton(WebURLButtonOptions{Title: b.Title, URL: b.URL})
	case b.Payload != "":
		return NewPostbackButton(b.Title, b.Payload)
	default:
		return b
	}
}
