package messenger

// Dispatcher classifies parsed callback envelopes into typed events and
// delivers them to registered handlers. It owns its handler registry directly
// (ordered slices per event kind); handlers fire in registration order.
//
// Register all handlers before the webhook starts serving. Dispatch itself
// holds no locks: handler slices are read-only once serving begins.
type Dispatcher struct {
	callback    []func(*Callback)
	optin       []func(*OptInEvent)
	delivery    []func(*DeliveryEvent)
	postback    []func(*PostbackEvent)
	referral    []func(*ReferralEvent)
	accountLink []func(*AccountLinkEvent)
	message     []func(*MessageEvent)
	echo        []func(*EchoEvent)
	errs        []func(*ErrorEvent)
}

// EventMeta is common to every classified event.
type EventMeta struct {
	SenderID    string
	RecipientID string
	Timestamp   int64
	// Raw is the full messaging event the classification fired on.
	Raw *MessagingEvent
}

// OptInEvent fires when a messaging event carries an optin ref.
type OptInEvent struct {
	EventMeta
	Ref string
}

// DeliveryEvent fires when delivered message IDs are reported.
type DeliveryEvent struct {
	EventMeta
	MessageIDs []string
	Watermark  int64
}

// PostbackEvent fires for a button postback, or for a quick reply tapped on a
// non-echo message. Ref carries the postback-embedded referral ref, if any.
type PostbackEvent struct {
	EventMeta
	Payload string
	Ref     string
}

// ReferralEvent fires for a referral carried at the top level of a messaging
// event (distinct from a postback-embedded referral).
type ReferralEvent struct {
	EventMeta
	Ref    string
	Source string
	Type   string
}

// AccountLinkEvent carries the account_linking object unmodified.
type AccountLinkEvent struct {
	EventMeta
	Linking AccountLinking
}

// MessageEvent fires for a user message: either text (with no quick reply
// attached) or attachments. When attachments are present they shadow the
// text; Attachments groups locations by declared attachment type, preserving
// order within each type.
type MessageEvent struct {
	EventMeta
	Text        string
	Attachments map[string][]AttachmentLocation
}

// EchoEvent fires for a copy of a message the page itself sent.
type EchoEvent struct {
	EventMeta
	Message *CallbackMessage
}

// ErrorEvent surfaces a dispatch failure after the webhook ack has been sent.
type ErrorEvent struct {
	// DeliveryID correlates the failure with the webhook POST it came from.
	DeliveryID string
	Err        error
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnCallback registers a coarse observer that receives every parsed envelope
// before per-event classification runs.
func (d *Dispatcher) OnCallback(h func(*Callback)) { d.callback = append(d.callback, h) }

func (d *Dispatcher) OnOptIn(h func(*OptInEvent))             { d.optin = append(d.optin, h) }
func (d *Dispatcher) OnDelivery(h func(*DeliveryEvent))       { d.delivery = append(d.delivery, h) }
func (d *Dispatcher) OnPostback(h func(*PostbackEvent))       { d.postback = append(d.postback, h) }
func (d *Dispatcher) OnReferral(h func(*ReferralEvent))       { d.referral = append(d.referral, h) }
func (d *Dispatcher) OnAccountLink(h func(*AccountLinkEvent)) { d.accountLink = append(d.accountLink, h) }
func (d *Dispatcher) OnMessage(h func(*MessageEvent))         { d.message = append(d.message, h) }
func (d *Dispatcher) OnEcho(h func(*EchoEvent))               { d.echo = append(d.echo, h) }
func (d *Dispatcher) OnError(h func(*ErrorEvent))             { d.errs = append(d.errs, h) }

// HandleCallback walks the envelope in order: entries in array order,
// messaging events in array order, and within one messaging event the checks
// run optin, delivery, postback, referral, account linking, message, echo.
// The checks are independent; more than one may fire per messaging event.
//
// A structurally unusable envelope (no entry array, or an entry without a
// messaging array) returns a *DispatchError; the caller is expected to surface
// it through EmitError, not as an HTTP failure. Events classified before the
// bad entry have already been delivered.
func (d *Dispatcher) HandleCallback(cb *Callback) error {
	if cb == nil {
		return &DispatchError{Reason: "nil callback"}
	}

	for _, h := range d.callback {
		h(cb)
	}

	if cb.Entry == nil {
		return &DispatchError{Reason: "callback has no entry array"}
	}

	for i := range cb.Entry {
		if cb.Entry[i].Messaging == nil {
			return &DispatchError{Reason: "entry has no messaging array"}
		}
		for j := range cb.Entry[i].Messaging {
			d.classify(&cb.Entry[i].Messaging[j])
		}
	}
	return nil
}

// EmitError delivers a dispatch failure to the registered error handlers.
func (d *Dispatcher) EmitError(deliveryID string, err error) {
	ev := &ErrorEvent{DeliveryID: deliveryID, Err: err}
	for _, h := range d.errs {
		h(ev)
	}
}

func (d *Dispatcher) classify(ev *MessagingEvent) {
	meta := EventMeta{
		SenderID:    ev.Sender.ID,
		RecipientID: ev.Recipient.ID,
		Timestamp:   ev.Timestamp,
		Raw:         ev,
	}
	isEcho := ev.Message != nil && ev.Message.IsEcho

	if ev.OptIn != nil && ev.OptIn.Ref != "" {
		e := &OptInEvent{EventMeta: meta, Ref: ev.OptIn.Ref}
		for _, h := range d.optin {
			h(e)
		}
	}

	if ev.Delivery != nil && len(ev.Delivery.MessageIDs) > 0 {
		e := &DeliveryEvent{
			EventMeta:  meta,
			MessageIDs: ev.Delivery.MessageIDs,
			Watermark:  ev.Delivery.Watermark,
		}
		for _, h := range d.delivery {
			h(e)
		}
	}

	// A true postback wins over a quick reply; a quick reply only counts as a
	// postback on non-echo messages.
	var payload, ref string
	switch {
	case ev.Postback != nil && ev.Postback.Payload != "":
		payload = ev.Postback.Payload
		if ev.Postback.Referral != nil {
			ref = ev.Postback.Referral.Ref
		}
	case !isEcho && ev.Message != nil && ev.Message.QuickReply != nil && ev.Message.QuickReply.Payload != "":
		payload = ev.Message.QuickReply.Payload
	}
	if payload != "" {
		e := &PostbackEvent{EventMeta: meta, Payload: payload, Ref: ref}
		for _, h := range d.postback {
			h(e)
		}
	}

	if ev.Referral != nil && ev.Referral.Ref != "" {
		e := &ReferralEvent{
			EventMeta: meta,
			Ref:       ev.Referral.Ref,
			Source:    ev.Referral.Source,
			Type:      ev.Referral.Type,
		}
		for _, h := range d.referral {
			h(e)
		}
	}

	if ev.AccountLinking != nil {
		e := &AccountLinkEvent{EventMeta: meta, Linking: *ev.AccountLinking}
		for _, h := range d.accountLink {
			h(e)
		}
	}

	if ev.Message != nil && !isEcho {
		e := &MessageEvent{EventMeta: meta}
		fired := false
		if ev.Message.Text != "" && ev.Message.QuickReply == nil {
			e.Text = ev.Message.Text
			fired = true
		}
		if len(ev.Message.Attachments) > 0 {
			// Attachments shadow text: the emitted value carries attachments
			// only, matching the platform's historical behavior.
			e = &MessageEvent{
				EventMeta:   meta,
				Attachments: groupAttachments(ev.Message.Attachments),
			}
			fired = true
		}
		if fired {
			for _, h := range d.message {
				h(e)
			}
		}
	}

	if isEcho {
		e := &EchoEvent{EventMeta: meta, Message: ev.Message}
		for _, h := range d.echo {
			h(e)
		}
	}
}

// groupAttachments maps declared attachment type to an ordered list of
// locations. Attachments without a payload are skipped.
func groupAttachments(atts []CallbackAttachment) map[string][]AttachmentLocation {
	grouped := make(map[string][]AttachmentLocation)
	for _, att := range atts {
		if att.Payload == nil {
			continue
		}
		loc := AttachmentLocation{URL: att.Payload.URL}
		if loc.URL == "" {
			loc.Coordinates = att.Payload.Coordinates
		}
		grouped[att.Type] = append(grouped[att.Type], loc)
	}
	return grouped
}
