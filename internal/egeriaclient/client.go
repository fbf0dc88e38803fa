// Package egeriaclient implements egeria.Exchange over the Egeria
// asset-manager REST API. Change events are not polled: the HTTP control
// surface receives them and hands them to Deliver.
package egeriaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/agentstation/glossync/internal/transport"
	"github.com/agentstation/glossync/pkg/constants"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

const service = "egeria"

// Config holds connection settings.
type Config struct {
	URL    string
	Server string
	UserID string

	// MaxPageSize is the server's page size limit; 0 uses constants.MaxPageSize.
	MaxPageSize int
}

// Client talks to one Egeria OMAG server.
type Client struct {
	transport   *transport.Client
	maxPageSize int

	mu        sync.RWMutex
	listeners []egeria.EventListener
}

var _ egeria.Exchange = (*Client)(nil)

// New creates a Client. Server and UserID are required.
func New(cfg Config, opts ...transport.Option) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.NewValidationError("egeria.url", cfg.URL, "is required")
	}
	if cfg.Server == "" {
		return nil, errors.NewValidationError("egeria.server", cfg.Server, "is required")
	}
	if cfg.UserID == "" {
		return nil, errors.NewValidationError("egeria.user_id", cfg.UserID, "is required")
	}
	base := fmt.Sprintf("%s/servers/%s/open-metadata/access-services/asset-manager/users/%s",
		strings.TrimRight(cfg.URL, "/"), url.PathEscape(cfg.Server), url.PathEscape(cfg.UserID))
	maxPage := cfg.MaxPageSize
	if maxPage <= 0 {
		maxPage = constants.MaxPageSize
	}
	return &Client{
		transport:   transport.New(service, base, nil, opts...),
		maxPageSize: maxPage,
	}, nil
}

// MaxPageSize implements egeria.Exchange.
func (c *Client) MaxPageSize() int { return c.maxPageSize }

// RegisterListener implements egeria.EventSource.
func (c *Client) RegisterListener(listener egeria.EventListener) error {
	if listener == nil {
		return errors.ErrNoListener
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
	return nil
}

// Deliver hands event to every registered listener and returns how many
// received it.
func (c *Client) Deliver(ctx context.Context, event egeria.Event) int {
	c.mu.RLock()
	listeners := append([]egeria.EventListener(nil), c.listeners...)
	c.mu.RUnlock()

	logging.FromContext(ctx).Debug().
		Str("event_type", string(event.Type)).
		Str("guid", event.ElementHeader.GUID).
		Int("listeners", len(listeners)).
		Msg("Delivering Egeria event")
	for _, l := range listeners {
		l.ProcessEvent(ctx, event)
	}
	return len(listeners)
}

// response is the common Egeria REST envelope. A failure may arrive with
// HTTP 200 and the real status in relatedHTTPCode.
type response[T any] struct {
	RelatedHTTPCode       int    `json:"relatedHTTPCode"`
	ExceptionClassName    string `json:"exceptionClassName,omitempty"`
	ExceptionErrorMessage string `json:"exceptionErrorMessage,omitempty"`
	GUID                  string `json:"guid,omitempty"`
	Element               *T     `json:"element,omitempty"`
	ElementList           []*T   `json:"elementList,omitempty"`
}

// call performs r and unwraps the envelope.
func call[T any](ctx context.Context, c *Client, r transport.Request) (*response[T], error) {
	body, status, err := c.transport.Call(ctx, r)
	if err != nil {
		return nil, err
	}
	var out response[T]
	decodeErr := c.transport.Decode(r.Operation, body, &out)

	code := out.RelatedHTTPCode
	if code == 0 {
		code = status
	}
	if code < 200 || code > 299 || out.ExceptionClassName != "" {
		message := out.ExceptionErrorMessage
		if message == "" {
			message = strings.TrimSpace(string(body))
		}
		se := errors.NewServiceError(service, r.Operation, kindFor(code, out.ExceptionClassName), message, nil)
		se.StatusCode = code
		return nil, se
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &out, nil
}

// kindFor classifies a failed Egeria call.
func kindFor(status int, exception string) errors.Kind {
	switch {
	case strings.HasSuffix(exception, "InvalidParameterException"):
		return errors.KindInvalidParameter
	case status == http.StatusNotFound:
		return errors.KindNotFound
	default:
		return errors.KindTransport
	}
}

func paging(startFrom, pageSize int) url.Values {
	return url.Values{
		"startFrom": {strconv.Itoa(startFrom)},
		"pageSize":  {strconv.Itoa(pageSize)},
	}
}

func post(op, path string, query url.Values, body any) transport.Request {
	return transport.Request{
		Operation: op,
		Method:    http.MethodPost,
		Path:      path,
		Query:     query,
		Body:      body,
	}
}

// element fetches a single element; a nil element in a successful response
// is reported as NotFound.
func element[T any](ctx context.Context, c *Client, r transport.Request, guid string) (*T, error) {
	resp, err := call[T](ctx, c, r)
	if err != nil {
		return nil, err
	}
	if resp.Element == nil {
		return nil, errors.NewServiceError(service, r.Operation, errors.KindNotFound, "no element "+guid, nil)
	}
	return resp.Element, nil
}

// elements fetches a page of elements.
func elements[T any](ctx context.Context, c *Client, r transport.Request) ([]*T, error) {
	resp, err := call[T](ctx, c, r)
	if err != nil {
		return nil, err
	}
	return resp.ElementList, nil
}

// created returns the GUID of a create response.
func created(ctx context.Context, c *Client, r transport.Request) (string, error) {
	resp, err := call[struct{}](ctx, c, r)
	if err != nil {
		return "", err
	}
	if resp.GUID == "" {
		return "", errors.NewServiceError(service, r.Operation, errors.KindTransport, "response carried no guid", nil)
	}
	return resp.GUID, nil
}

// void performs a call whose response carries no payload.
func void(ctx context.Context, c *Client, r transport.Request) error {
	_, err := call[struct{}](ctx, c, r)
	return err
}

// elementRequest is the body of create and update calls.
type elementRequest struct {
	Properties  any                        `json:"elementProperties"`
	Correlation *egeria.ExternalIdentifier `json:"correlationProperties,omitempty"`
}

// AddExternalIdentifier implements egeria.Correlator.
func (c *Client) AddExternalIdentifier(ctx context.Context, elementGUID string, kind egeria.ElementKind, id egeria.ExternalIdentifier) error {
	return void(ctx, c, post("add external identifier",
		"/elements/"+url.PathEscape(elementGUID)+"/external-identifiers",
		url.Values{"typeName": {kind.String()}}, id))
}
