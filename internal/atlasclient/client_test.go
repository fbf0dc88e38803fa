package atlasclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/errors"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "admin" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL, Username: "admin", Password: "admin"})
}

func TestListGlossaries(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/atlas/v2/glossary", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "ASC", r.URL.Query().Get("sort"))
		_, _ = w.Write([]byte(`[{"guid":"g1","name":"Finance","additionalAttributes":{"egeriaGUID":"e1","egeriaOwned":"true"}}]`))
	})

	glossaries, err := c.ListGlossaries(context.Background(), 20, 10)

	require.NoError(t, err)
	require.Len(t, glossaries, 1)
	assert.Equal(t, "Finance", glossaries[0].Name)
	assert.Equal(t, atlas.OwnedByEgeria("e1"), glossaries[0].Marker())
}

func TestCreateAndSaveTerm(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/atlas/v2/glossary/term":
			assert.Equal(t, "Revenue", in["name"])
			assert.Equal(t, map[string]any{"glossaryGuid": "g1"}, in["anchor"])
			in["guid"] = "t1"
		case r.Method == http.MethodPut && r.URL.Path == "/api/atlas/v2/glossary/term/t1":
			attrs, _ := in["additionalAttributes"].(map[string]any)
			assert.Equal(t, false, attrs["egeriaOwned"])
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(in)
	})
	ctx := context.Background()

	term := &atlas.Term{Name: "Revenue", Anchor: atlas.GlossaryHeader{GlossaryGUID: "g1"}}
	guid, err := c.CreateTerm(ctx, term)
	require.NoError(t, err)
	assert.Equal(t, "t1", guid)

	term.GUID = guid
	term.SetMarker(atlas.OwnedByAtlas("e9"))
	saved, err := c.SaveTerm(ctx, term)
	require.NoError(t, err)
	assert.Equal(t, atlas.OwnedByAtlas("e9"), saved.Marker())
}

func TestStatusKinds(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/atlas/v2/glossary/missing":
			http.Error(w, `{"errorCode":"ATLAS-404-00-009"}`, http.StatusNotFound)
		case "/api/atlas/v2/glossary/category":
			http.Error(w, `{"errorCode":"ATLAS-409-00-009"}`, http.StatusConflict)
		case "/api/atlas/v2/glossary/term/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	})
	ctx := context.Background()

	_, err := c.GetGlossary(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	_, err = c.CreateCategory(ctx, &atlas.Category{Name: "Accounts"})
	assert.True(t, errors.IsNameConflict(err))

	err = c.DeleteTerm(ctx, "broken")
	assert.True(t, errors.IsTransport(err))
	var se *errors.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "atlas", se.Service)
	assert.Equal(t, "delete term", se.Operation)
}
