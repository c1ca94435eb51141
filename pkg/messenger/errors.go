package messenger

import "fmt"

// ConfigError reports a required field missing at construction or build time.
// It fails fast: callers get it synchronously, never through the event
// channel.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("messenger: config error: %s: %s", e.Field, e.Reason)
}

// DispatchError reports a callback envelope that cannot be interpreted. The
// webhook layer converts it into an error event after the transport ack has
// already gone out; it never becomes an HTTP failure.
type DispatchError struct {
	Reason string
	Err    error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("messenger: dispatch: %s: %v", e.Reason, e.Err)
	}
	return "messenger: dispatch: " + e.Reason
}

func (e *DispatchError) Unwrap() error { return e.Err }

// TransportError wraps a failure reported by the HTTP client on an outbound
// call. It is returned to the caller, never panicked.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("messenger: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
