// Package transport is the HTTP client boundary of the SDK. The core depends
// only on the Doer interface; RestyDoer is the stock implementation.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Doer performs outbound HTTP calls on behalf of the SDK. Implementations
// return the response body on success and an error otherwise; no retries are
// expected at this layer.
type Doer interface {
	Post(ctx context.Context, url string, query url.Values, body any) ([]byte, error)
	// PostMultipart sends fields plus one file part as a multipart form.
	PostMultipart(ctx context.Context, url string, query url.Values, fields map[string]string, fileField, fileName string, file io.Reader) ([]byte, error)
	Get(ctx context.Context, url string, query url.Values) ([]byte, error)
}

// StatusError reports a non-2xx platform response.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: unexpected status %d: %s", e.StatusCode, e.Body)
}

const defaultTimeout = 30 * time.Second

// RestyDoer is the default Doer, backed by a resty client.
type RestyDoer struct {
	rc *resty.Client
}

// NewRestyDoer returns a Doer with the given timeout; zero means the default.
func NewRestyDoer(timeout time.Duration) *RestyDoer {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &RestyDoer{rc: resty.New().SetTimeout(timeout)}
}

func (d *RestyDoer) Post(ctx context.Context, u string, query url.Values, body any) ([]byte, error) {
	resp, err := d.rc.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(u)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	return resp.Body(), nil
}

func (d *RestyDoer) PostMultipart(ctx context.Context, u string, query url.Values, fields map[string]string, fileField, fileName string, file io.Reader) ([]byte, error) {
	resp, err := d.rc.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetMultipartFormData(fields).
		SetFileReader(fileField, fileName, file).
		Post(u)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	return resp.Body(), nil
}

func (d *RestyDoer) Get(ctx context.Context, u string, query url.Values) ([]byte, error) {
	resp, err := d.rc.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(u)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	return resp.Body(), nil
}
