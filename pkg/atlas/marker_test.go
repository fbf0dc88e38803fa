package atlas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerDecoding(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]any
		want  Marker
	}{
		{"no attributes", nil, Marker{}},
		{"bool true", map[string]any{"egeriaGUID": "e-1", "egeriaOwned": true}, OwnedByEgeria("e-1")},
		{"bool false", map[string]any{"egeriaGUID": "e-1", "egeriaOwned": false}, OwnedByAtlas("e-1")},
		{"string true", map[string]any{"egeriaGUID": "e-1", "egeriaOwned": "true"}, OwnedByEgeria("e-1")},
		{"string false", map[string]any{"egeriaGUID": "e-1", "egeriaOwned": "False"}, OwnedByAtlas("e-1")},
		{"flag without guid", map[string]any{"egeriaOwned": false}, Marker{Owner: OwnerAtlas}},
		{"garbage flag", map[string]any{"egeriaGUID": "e-1", "egeriaOwned": "maybe"}, Marker{EgeriaGUID: "e-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attributed{AdditionalAttributes: tt.attrs}
			assert.Equal(t, tt.want, a.Marker())
		})
	}
}

func TestSetMarkerPreservesOtherAttributes(t *testing.T) {
	a := Attributed{AdditionalAttributes: map[string]any{"steward": "finance"}}

	a.SetMarker(OwnedByEgeria("e-1"))
	assert.Equal(t, map[string]any{"steward": "finance", "egeriaGUID": "e-1", "egeriaOwned": true}, a.AdditionalAttributes)

	a.SetMarker(Marker{})
	assert.Equal(t, map[string]any{"steward": "finance"}, a.AdditionalAttributes)
}

func TestSetMarkerZeroOnEmpty(t *testing.T) {
	var a Attributed
	a.SetMarker(Marker{})
	assert.Nil(t, a.AdditionalAttributes)

	a.SetMarker(OwnedByAtlas("e-2"))
	a.SetMarker(Marker{})
	assert.Nil(t, a.AdditionalAttributes)
}

func TestMarkerWireKeys(t *testing.T) {
	term := &Term{GUID: "t-1", Name: "Risk", Anchor: GlossaryHeader{GlossaryGUID: "g-1"}}
	term.SetMarker(OwnedByEgeria("e-9"))

	data, err := json.Marshal(term)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	attrs, ok := raw["additionalAttributes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "e-9", attrs["egeriaGUID"])
	assert.Equal(t, true, attrs["egeriaOwned"])

	var back Term
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, OwnedByEgeria("e-9"), back.Marker())
}

func TestCloneIsDeep(t *testing.T) {
	c := &Category{GUID: "c-1", ParentCategory: &RelatedCategoryHeader{CategoryGUID: "p-1"}}
	c.SetMarker(OwnedByAtlas("e-1"))

	cp := c.Clone()
	cp.ParentCategory.CategoryGUID = "p-2"
	cp.SetMarker(Marker{})

	assert.Equal(t, "p-1", c.ParentGUID())
	assert.Equal(t, OwnedByAtlas("e-1"), c.Marker())
}
