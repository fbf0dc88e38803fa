package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/errors"
)

func TestAuthenticators(t *testing.T) {
	tests := []struct {
		name   string
		auth   Authenticator
		header string
		want   string
	}{
		{name: "none", auth: &NoAuth{}, header: "Authorization", want: ""},
		{name: "basic", auth: &BasicAuth{Username: "admin", Password: "admin"}, header: "Authorization", want: "Basic YWRtaW46YWRtaW4="},
		{name: "basic without user", auth: &BasicAuth{}, header: "Authorization", want: ""},
		{name: "bearer", auth: &BearerAuth{Token: "t0k"}, header: "Authorization", want: "Bearer t0k"},
		{name: "header", auth: &HeaderAuth{Header: "X-API-Key", Value: "k"}, header: "X-API-Key", want: "k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com/x", nil)
			tt.auth.Apply(req)
			assert.Equal(t, tt.want, req.Header.Get(tt.header))
		})
	}
}

func TestQueryAuth(t *testing.T) {
	u, err := url.Parse("https://example.com/api?limit=10")
	require.NoError(t, err)
	req := &http.Request{URL: u, Header: make(http.Header)}

	(&QueryAuth{Param: "key", Value: "secret"}).Apply(req)

	assert.Equal(t, "secret", req.URL.Query().Get("key"))
	assert.Equal(t, "10", req.URL.Query().Get("limit"))
}

func TestKindForStatus(t *testing.T) {
	tests := map[int]errors.Kind{
		http.StatusNotFound:            errors.KindNotFound,
		http.StatusConflict:            errors.KindNameConflict,
		http.StatusBadRequest:          errors.KindInvalidParameter,
		http.StatusInternalServerError: errors.KindTransport,
		http.StatusUnauthorized:        errors.KindTransport,
	}
	for status, want := range tests {
		assert.Equal(t, want, KindForStatus(status), "status %d", status)
	}
}

func TestJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/echo":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "ASC", r.URL.Query().Get("sort"))
			var in map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_ = json.NewEncoder(w).Encode(map[string]string{"got": in["name"]})
		case "/missing":
			http.Error(w, "no such glossary", http.StatusNotFound)
		case "/garbage":
			_, _ = w.Write([]byte("{not json"))
		}
	}))
	defer srv.Close()

	c := New("atlas", srv.URL+"/", &BasicAuth{Username: "admin", Password: "secret"}, WithTimeout(time.Second))
	assert.Equal(t, srv.URL, c.BaseURL())
	ctx := context.Background()

	var out map[string]string
	err := c.JSON(ctx, Request{
		Operation: "echo",
		Method:    http.MethodPost,
		Path:      "/echo",
		Query:     url.Values{"sort": {"ASC"}},
		Body:      map[string]string{"name": "Finance"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Finance", out["got"])

	err = c.JSON(ctx, Request{Operation: "get glossary", Method: http.MethodGet, Path: "/missing"}, &out)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	var se *errors.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "atlas", se.Service)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Contains(t, se.Message, "no such glossary")

	err = c.JSON(ctx, Request{Operation: "garbage", Method: http.MethodGet, Path: "/garbage"}, &out)
	assert.True(t, errors.IsTransport(err))

	unauth := New("atlas", srv.URL, nil)
	err = unauth.JSON(ctx, Request{Operation: "echo", Method: http.MethodGet, Path: "/echo"}, nil)
	assert.True(t, errors.IsTransport(err))
}

func TestDoReportsUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New("egeria", base, nil)
	err := c.JSON(context.Background(), Request{Operation: "ping", Method: http.MethodGet, Path: "/"}, nil)

	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}
