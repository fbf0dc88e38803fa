package atlas

import (
	"strings"

	"github.com/agentstation/glossync/pkg/constants"
)

// Owner identifies which side a marker declares authoritative.
type Owner int

const (
	// OwnerUnset means the egeriaOwned flag is absent.
	OwnerUnset Owner = iota
	// OwnerAtlas means egeriaOwned is false: Atlas holds the original.
	OwnerAtlas
	// OwnerEgeria means egeriaOwned is true: Egeria holds the original.
	OwnerEgeria
)

// String returns the owner name.
func (o Owner) String() string {
	switch o {
	case OwnerAtlas:
		return "atlas"
	case OwnerEgeria:
		return "egeria"
	default:
		return "unset"
	}
}

// Marker is the ownership marker carried by every synchronized Atlas element.
// On the wire it lives in additionalAttributes under the egeriaGUID and
// egeriaOwned keys.
type Marker struct {
	Owner      Owner
	EgeriaGUID string
}

// OwnedByEgeria returns the marker of an Atlas copy of an Egeria original.
func OwnedByEgeria(egeriaGUID string) Marker {
	return Marker{Owner: OwnerEgeria, EgeriaGUID: egeriaGUID}
}

// OwnedByAtlas returns the marker of an Atlas original copied into Egeria.
func OwnedByAtlas(egeriaGUID string) Marker {
	return Marker{Owner: OwnerAtlas, EgeriaGUID: egeriaGUID}
}

// IsZero reports whether the marker carries neither flag nor GUID.
func (m Marker) IsZero() bool {
	return m.Owner == OwnerUnset && m.EgeriaGUID == ""
}

// Attributed is embedded by every Atlas glossary element. It holds the free
// form additionalAttributes map; the ownership marker is read and written
// through Marker and SetMarker so that unrelated attributes survive untouched.
type Attributed struct {
	AdditionalAttributes map[string]any `json:"additionalAttributes,omitempty"`
}

// Marker decodes the ownership marker. egeriaOwned may arrive as a JSON
// boolean or as the strings "true" and "false".
func (a *Attributed) Marker() Marker {
	var m Marker
	if a == nil || a.AdditionalAttributes == nil {
		return m
	}
	if guid, ok := a.AdditionalAttributes[constants.EgeriaGUIDAttribute].(string); ok {
		m.EgeriaGUID = strings.TrimSpace(guid)
	}
	switch v := a.AdditionalAttributes[constants.EgeriaOwnedAttribute].(type) {
	case bool:
		m.Owner = ownerOf(v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			m.Owner = OwnerEgeria
		case "false":
			m.Owner = OwnerAtlas
		}
	}
	return m
}

// SetMarker writes m into the additional attributes. A zero marker removes
// both keys.
func (a *Attributed) SetMarker(m Marker) {
	if a.AdditionalAttributes == nil {
		if m.IsZero() {
			return
		}
		a.AdditionalAttributes = make(map[string]any, 2)
	}
	if m.EgeriaGUID == "" {
		delete(a.AdditionalAttributes, constants.EgeriaGUIDAttribute)
	} else {
		a.AdditionalAttributes[constants.EgeriaGUIDAttribute] = m.EgeriaGUID
	}
	switch m.Owner {
	case OwnerEgeria:
		a.AdditionalAttributes[constants.EgeriaOwnedAttribute] = true
	case OwnerAtlas:
		a.AdditionalAttributes[constants.EgeriaOwnedAttribute] = false
	default:
		delete(a.AdditionalAttributes, constants.EgeriaOwnedAttribute)
	}
	if len(a.AdditionalAttributes) == 0 {
		a.AdditionalAttributes = nil
	}
}

func ownerOf(egeriaOwned bool) Owner {
	if egeriaOwned {
		return OwnerEgeria
	}
	return OwnerAtlas
}

func cloneAttributes(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
