// Package egeria defines the open-metadata side of glossary synchronization:
// the glossary element model, the exchange service contract the connector
// consumes, and the change events it listens to.
package egeria

import "github.com/agentstation/glossync/pkg/constants"

// ElementKind is the open-metadata type name of a glossary element.
type ElementKind string

// Glossary element kinds.
const (
	KindGlossary ElementKind = "Glossary"
	KindCategory ElementKind = "GlossaryCategory"
	KindTerm     ElementKind = "GlossaryTerm"
)

// String returns the type name.
func (k ElementKind) String() string { return string(k) }

// ElementType carries the type information of an element header.
type ElementType struct {
	TypeName ElementKind `json:"typeName"`
}

// ElementOrigin records which metadata collection an element belongs to.
type ElementOrigin struct {
	HomeCollection   string `json:"homeMetadataCollectionName,omitempty"`
	HomeCollectionID string `json:"homeMetadataCollectionId,omitempty"`
}

// ElementHeader identifies an element and its origin.
type ElementHeader struct {
	GUID   string        `json:"guid"`
	Type   ElementType   `json:"type"`
	Origin ElementOrigin `json:"origin"`
}

// Kind returns the element's type name.
func (h ElementHeader) Kind() ElementKind { return h.Type.TypeName }

// ExternalIdentifier is a correlation record linking an open-metadata element
// to an identifier in a third-party system. Scope names the external system;
// an element holds at most one record per scope and identifier name.
type ExternalIdentifier struct {
	Identifier     string `json:"externalIdentifier"`
	IdentifierName string `json:"externalIdentifierName"`
	Scope          string `json:"externalScopeName"`
}

// AtlasCorrelation builds the correlation record for an Atlas GUID.
func AtlasCorrelation(atlasGUID, scope string) ExternalIdentifier {
	return ExternalIdentifier{
		Identifier:     atlasGUID,
		IdentifierName: constants.AtlasGUIDIdentifierName,
		Scope:          scope,
	}
}

// Correlations is the set of correlation records attached to an element.
type Correlations []ExternalIdentifier

// Find returns the identifier recorded under name, or "".
func (c Correlations) Find(name string) string {
	for _, id := range c {
		if id.IdentifierName == name && id.Identifier != "" {
			return id.Identifier
		}
	}
	return ""
}

// AtlasGUID returns the correlated Atlas GUID, or "" if the element was
// never synchronized.
func (c Correlations) AtlasGUID() string {
	return c.Find(constants.AtlasGUIDIdentifierName)
}

// Put adds id, replacing any record with the same scope and identifier name.
func (c Correlations) Put(id ExternalIdentifier) Correlations {
	out := make(Correlations, 0, len(c)+1)
	for _, existing := range c {
		if existing.Scope == id.Scope && existing.IdentifierName == id.IdentifierName {
			continue
		}
		out = append(out, existing)
	}
	return append(out, id)
}

// GlossaryProperties are the mapped properties of a glossary.
type GlossaryProperties struct {
	QualifiedName        string            `json:"qualifiedName"`
	DisplayName          string            `json:"displayName,omitempty"`
	Description          string            `json:"description,omitempty"`
	Language             string            `json:"language,omitempty"`
	Usage                string            `json:"usage,omitempty"`
	AdditionalProperties map[string]string `json:"additionalProperties,omitempty"`
}

// Equal reports whether the mapped fields match. Additional properties are
// not synchronized and are ignored.
func (p GlossaryProperties) Equal(o GlossaryProperties) bool {
	return p.QualifiedName == o.QualifiedName &&
		p.DisplayName == o.DisplayName &&
		p.Description == o.Description &&
		p.Language == o.Language &&
		p.Usage == o.Usage
}

// CategoryProperties are the mapped properties of a glossary category.
type CategoryProperties struct {
	QualifiedName        string            `json:"qualifiedName"`
	DisplayName          string            `json:"displayName,omitempty"`
	Description          string            `json:"description,omitempty"`
	AdditionalProperties map[string]string `json:"additionalProperties,omitempty"`
}

// Equal reports whether the mapped fields match.
func (p CategoryProperties) Equal(o CategoryProperties) bool {
	return p.QualifiedName == o.QualifiedName &&
		p.DisplayName == o.DisplayName &&
		p.Description == o.Description
}

// TermProperties are the mapped properties of a glossary term.
type TermProperties struct {
	QualifiedName        string            `json:"qualifiedName"`
	DisplayName          string            `json:"displayName,omitempty"`
	Summary              string            `json:"summary,omitempty"`
	Description          string            `json:"description,omitempty"`
	Abbreviation         string            `json:"abbreviation,omitempty"`
	Examples             string            `json:"examples,omitempty"`
	Usage                string            `json:"usage,omitempty"`
	AdditionalProperties map[string]string `json:"additionalProperties,omitempty"`
}

// Equal reports whether the mapped fields match.
func (p TermProperties) Equal(o TermProperties) bool {
	return p.QualifiedName == o.QualifiedName &&
		p.DisplayName == o.DisplayName &&
		p.Summary == o.Summary &&
		p.Description == o.Description &&
		p.Abbreviation == o.Abbreviation &&
		p.Examples == o.Examples &&
		p.Usage == o.Usage
}

// GlossaryElement is a glossary as seen through the exchange service.
type GlossaryElement struct {
	Header       ElementHeader      `json:"elementHeader"`
	Correlations Correlations       `json:"correlationHeaders,omitempty"`
	Properties   GlossaryProperties `json:"glossaryProperties"`
}

// GUID returns the element's GUID.
func (g *GlossaryElement) GUID() string { return g.Header.GUID }

// CategoryElement is a glossary category as seen through the exchange service.
type CategoryElement struct {
	Header       ElementHeader      `json:"elementHeader"`
	Correlations Correlations       `json:"correlationHeaders,omitempty"`
	Properties   CategoryProperties `json:"glossaryCategoryProperties"`
}

// GUID returns the element's GUID.
func (c *CategoryElement) GUID() string { return c.Header.GUID }

// TermElement is a glossary term as seen through the exchange service.
type TermElement struct {
	Header       ElementHeader  `json:"elementHeader"`
	Correlations Correlations   `json:"correlationHeaders,omitempty"`
	Properties   TermProperties `json:"glossaryTermProperties"`
}

// GUID returns the element's GUID.
func (t *TermElement) GUID() string { return t.Header.GUID }
