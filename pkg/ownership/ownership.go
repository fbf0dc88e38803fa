// Package ownership decides which side of a synchronized glossary element is
// authoritative. The decision uses only markers available locally: the origin
// of an Egeria element header and the ownership marker on an Atlas element.
package ownership

import (
	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
)

// State classifies an Atlas element by its ownership marker.
type State int

const (
	// StateNew means no Egeria counterpart is recorded: the element is an
	// Atlas original that was never synchronized.
	StateNew State = iota
	// StateOpenMetadataOwned means the Atlas element is a copy of an Egeria original.
	StateOpenMetadataOwned
	// StateThirdPartyOwned means the Atlas element is the original of an Egeria copy.
	StateThirdPartyOwned
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOpenMetadataOwned:
		return "open_metadata_owned"
	case StateThirdPartyOwned:
		return "third_party_owned"
	default:
		return "new"
	}
}

// Resolver applies the ownership rules for one managed metadata collection.
type Resolver struct {
	collection string
}

// New creates a resolver for the connector's managed collection.
func New(collection string) *Resolver {
	return &Resolver{collection: collection}
}

// Collection returns the managed collection name.
func (r *Resolver) Collection() string {
	return r.collection
}

// IsThirdPartyOwned reports whether an Egeria element is a mirror of an Atlas
// original, i.e. its home collection is the connector's managed collection.
func (r *Resolver) IsThirdPartyOwned(header egeria.ElementHeader) bool {
	return r.collection != "" && header.Origin.HomeCollection == r.collection
}

// IsOpenMetadataOwned reports whether an Atlas element is a copy of an Egeria
// original: the owned flag must be true and the Egeria GUID present.
func (r *Resolver) IsOpenMetadataOwned(m atlas.Marker) bool {
	return m.Owner == atlas.OwnerEgeria && m.EgeriaGUID != ""
}

// Classify returns the ownership state of an Atlas element. A marker without
// an Egeria GUID is new regardless of its flag.
func (r *Resolver) Classify(m atlas.Marker) State {
	switch {
	case m.EgeriaGUID == "":
		return StateNew
	case r.IsOpenMetadataOwned(m):
		return StateOpenMetadataOwned
	default:
		return StateThirdPartyOwned
	}
}

// Inconsistent reports a marker that carries an ownership flag but no Egeria
// GUID. Such elements are treated as new; callers should log a warning.
func (r *Resolver) Inconsistent(m atlas.Marker) bool {
	return m.Owner != atlas.OwnerUnset && m.EgeriaGUID == ""
}
