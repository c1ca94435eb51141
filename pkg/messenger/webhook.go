package messenger

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
)

const verificationErrorBody = "Error, wrong validation token"

// Webhook returns the HTTP handler for the platform callbacks. GET answers
// the one-time subscription handshake; POST acknowledges with 200 before any
// classification runs, so a malformed envelope can never turn into a
// transport failure. Mount it on WebhookPath.
func (c *Client) Webhook() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			c.verify(w, r)
		case http.MethodPost:
			c.receive(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// verify answers the subscription handshake. hub.mode must equal "subscribe"
// exactly (case-sensitive) and the verify token must match.
func (c *Client) verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == c.verifyToken {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, q.Get("hub.challenge"))
		return
	}

	c.log.Warn().Str("mode", q.Get("hub.mode")).Msg("webhook verification rejected")
	w.WriteHeader(http.StatusForbidden)
	io.WriteString(w, verificationErrorBody)
}

// receive acknowledges the callback, then parses and dispatches it. The two
// steps are strictly sequential: the 200 goes out first and the outcome of
// classification never affects it.
func (c *Client) receive(w http.ResponseWriter, r *http.Request) {
	deliveryID := uuid.NewString()

	body, err := io.ReadAll(r.Body)

	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	if err != nil {
		c.dispatchFailed(deliveryID, &DispatchError{Reason: "reading callback body", Err: err})
		return
	}

	var cb Callback
	if err := json.Unmarshal(body, &cb); err != nil {
		c.dispatchFailed(deliveryID, &DispatchError{Reason: "parsing callback body", Err: err})
		return
	}

	if err := c.HandleCallback(&cb); err != nil {
		c.dispatchFailed(deliveryID, err)
		return
	}

	c.log.Debug().Str("delivery_id", deliveryID).Int("entries", len(cb.Entry)).Msg("callback dispatched")
}

func (c *Client) dispatchFailed(deliveryID string, err error) {
	c.log.Error().Str("delivery_id", deliveryID).Err(err).Msg("callback dispatch failed")
	c.EmitError(deliveryID, err)
}
