package egeriaclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
)

const basePath = "/servers/cocoMDS1/open-metadata/access-services/asset-manager/users/garygeeke"

func newClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{URL: srv.URL + "/", Server: "cocoMDS1", UserID: "garygeeke", MaxPageSize: 2})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := New(Config{URL: "http://localhost:9443", UserID: "garygeeke"})
	assert.True(t, errors.IsValidationError(err))

	c, err := New(Config{URL: "http://localhost:9443", Server: "cocoMDS1", UserID: "garygeeke"})
	require.NoError(t, err)
	assert.Equal(t, 1000, c.MaxPageSize())
}

func TestGetGlossaryByGUID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, basePath+"/glossaries/g1/retrieve", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"relatedHTTPCode": 200,
			"element": {
				"elementHeader": {"guid": "g1", "type": {"typeName": "Glossary"}, "origin": {"homeMetadataCollectionName": "Apache Atlas"}},
				"correlationHeaders": [{"externalIdentifier": "a1", "externalIdentifierName": "atlasGUID", "externalScopeName": "Apache Atlas"}],
				"glossaryProperties": {"qualifiedName": "AtlasGlossary.Finance", "displayName": "Finance"}
			}
		}`))
	})

	g, err := c.GetGlossaryByGUID(context.Background(), "g1")

	require.NoError(t, err)
	assert.Equal(t, "g1", g.GUID())
	assert.Equal(t, egeria.KindGlossary, g.Header.Kind())
	assert.Equal(t, "Apache Atlas", g.Header.Origin.HomeCollection)
	assert.Equal(t, "a1", g.Correlations.AtlasGUID())
	assert.Equal(t, "Finance", g.Properties.DisplayName)
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "invalid parameter inside a 200",
			status: http.StatusOK,
			body:   `{"relatedHTTPCode":400,"exceptionClassName":"org.odpi.openmetadata.frameworks.connectors.ffdc.InvalidParameterException","exceptionErrorMessage":"unknown guid"}`,
			check:  errors.IsInvalidParameter,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"relatedHTTPCode":404}`,
			check:  errors.IsNotFound,
		},
		{
			name:   "server error",
			status: http.StatusOK,
			body:   `{"relatedHTTPCode":500,"exceptionClassName":"org.odpi.openmetadata.frameworks.connectors.ffdc.PropertyServerException"}`,
			check:  errors.IsTransport,
		},
		{
			name:   "non-json failure",
			status: http.StatusBadGateway,
			body:   "bad gateway",
			check:  errors.IsTransport,
		},
		{
			name:   "empty element",
			status: http.StatusOK,
			body:   `{"relatedHTTPCode":200}`,
			check:  errors.IsNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.GetTermByGUID(context.Background(), "t1")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected kind: %v", err)
		})
	}
}

func TestCreateTermSendsCorrelation(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/glossaries/g1/terms", r.URL.Path)
		var body struct {
			Properties  egeria.TermProperties      `json:"elementProperties"`
			Correlation *egeria.ExternalIdentifier `json:"correlationProperties"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "AtlasGlossaryTerm.Revenue", body.Properties.QualifiedName)
		if assert.NotNil(t, body.Correlation) {
			assert.Equal(t, "atlasGUID", body.Correlation.IdentifierName)
			assert.Equal(t, "a7", body.Correlation.Identifier)
		}
		_, _ = w.Write([]byte(`{"relatedHTTPCode":200,"guid":"t9"}`))
	})
	id := egeria.AtlasCorrelation("a7", "Apache Atlas")

	guid, err := c.CreateTerm(context.Background(), "g1", egeria.TermProperties{QualifiedName: "AtlasGlossaryTerm.Revenue"}, &id)

	require.NoError(t, err)
	assert.Equal(t, "t9", guid)
}

func TestGetCategoryParentWithoutParent(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/glossaries/categories/c1/parent/retrieve", r.URL.Path)
		_, _ = w.Write([]byte(`{"relatedHTTPCode":200}`))
	})

	parent, err := c.GetCategoryParent(context.Background(), "c1")

	require.NoError(t, err)
	assert.Nil(t, parent)
}

func TestGetGlossaryByNamePagesForExactMatch(t *testing.T) {
	var starts []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/glossaries/by-name", r.URL.Path)
		start := r.URL.Query().Get("startFrom")
		starts = append(starts, start)
		switch start {
		case "0":
			_, _ = w.Write([]byte(`{"relatedHTTPCode":200,"elementList":[
				{"elementHeader":{"guid":"g1"},"glossaryProperties":{"qualifiedName":"Finance.Old"}},
				{"elementHeader":{"guid":"g2"},"glossaryProperties":{"qualifiedName":"Finance.Archive"}}]}`))
		default:
			_, _ = w.Write([]byte(`{"relatedHTTPCode":200,"elementList":[
				{"elementHeader":{"guid":"g3"},"glossaryProperties":{"qualifiedName":"Finance"}}]}`))
		}
	})

	g, err := c.GetGlossaryByName(context.Background(), "Finance")

	require.NoError(t, err)
	assert.Equal(t, "g3", g.GUID())
	assert.Equal(t, []string{"0", "2"}, starts)
}

func TestGetGlossaryByNameNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"relatedHTTPCode":200,"elementList":[]}`))
	})

	_, err := c.GetGlossaryByName(context.Background(), "Finance")

	assert.True(t, errors.IsNotFound(err))
}

func TestAddExternalIdentifier(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/elements/c1/external-identifiers", r.URL.Path)
		assert.Equal(t, "GlossaryCategory", r.URL.Query().Get("typeName"))
		_, _ = w.Write([]byte(`{"relatedHTTPCode":200}`))
	})

	err := c.AddExternalIdentifier(context.Background(), "c1", egeria.KindCategory, egeria.AtlasCorrelation("a1", "Apache Atlas"))

	assert.NoError(t, err)
}

func TestDeliverFansOut(t *testing.T) {
	c, err := New(Config{URL: "http://localhost:9443", Server: "cocoMDS1", UserID: "garygeeke"})
	require.NoError(t, err)
	assert.ErrorIs(t, c.RegisterListener(nil), errors.ErrNoListener)

	var got []string
	for _, name := range []string{"first", "second"} {
		name := name
		require.NoError(t, c.RegisterListener(egeria.EventListenerFunc(func(_ context.Context, e egeria.Event) {
			got = append(got, name+":"+e.ElementHeader.GUID)
		})))
	}

	n := c.Deliver(context.Background(), egeria.Event{Type: egeria.EventNewElement, ElementHeader: egeria.ElementHeader{GUID: "t1"}})

	assert.Equal(t, 2, n)
	assert.Equal(t, "first:t1,second:t1", strings.Join(got, ","))
}
