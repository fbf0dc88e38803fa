package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// Request describes one JSON call relative to the client's base URL.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     url.Values
	Body      any
}

// NewRequest builds an *http.Request for r.
func (c *Client) NewRequest(ctx context.Context, r Request) (*http.Request, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}
	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.NewServiceError(c.service, r.Operation, errors.KindTransport, "encode request body", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, errors.NewServiceError(c.service, r.Operation, errors.KindTransport, "build request", err)
	}
	return req, nil
}

// Call performs r and returns the raw response body and status code.
// Non-2xx statuses are not treated as errors here.
func (c *Client) Call(ctx context.Context, r Request) ([]byte, int, error) {
	req, err := c.NewRequest(ctx, r)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.Do(ctx, req, r.Operation)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.NewServiceError(c.service, r.Operation, errors.KindTransport, "read response body", err)
	}
	return body, resp.StatusCode, nil
}

// JSON performs r and decodes a 2xx response into target, which may be
// nil. Other statuses become errors classified by KindForStatus.
func (c *Client) JSON(ctx context.Context, r Request, target any) error {
	body, status, err := c.Call(ctx, r)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return c.StatusError(r.Operation, status, body)
	}
	return c.Decode(r.Operation, body, target)
}

// Decode unmarshals a response body, reporting failures as transport errors.
func (c *Client) Decode(operation string, body []byte, target any) error {
	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.NewServiceError(c.service, operation, errors.KindTransport, "decode response", err)
	}
	return nil
}

// StatusError builds the error for a non-2xx response.
func (c *Client) StatusError(operation string, status int, body []byte) error {
	se := errors.NewServiceError(c.service, operation, KindForStatus(status), truncate(string(body), 512), nil)
	se.StatusCode = status
	return se
}

// KindForStatus maps an HTTP status to an error kind.
func KindForStatus(status int) errors.Kind {
	switch status {
	case http.StatusNotFound:
		return errors.KindNotFound
	case http.StatusConflict:
		return errors.KindNameConflict
	case http.StatusBadRequest:
		return errors.KindInvalidParameter
	default:
		return errors.KindTransport
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
