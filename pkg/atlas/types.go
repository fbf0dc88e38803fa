// Package atlas defines the Apache Atlas side of glossary synchronization:
// the REST v2 glossary shapes, the ownership marker stored on them, and the
// client contract the connector consumes.
package atlas

// GlossaryHeader anchors a category or term to its glossary.
type GlossaryHeader struct {
	GlossaryGUID string `json:"glossaryGuid"`
	RelationGUID string `json:"relationGuid,omitempty"`
	DisplayText  string `json:"displayText,omitempty"`
}

// RelatedCategoryHeader references a category from a glossary or another category.
type RelatedCategoryHeader struct {
	CategoryGUID       string `json:"categoryGuid"`
	ParentCategoryGUID string `json:"parentCategoryGuid,omitempty"`
	RelationGUID       string `json:"relationGuid,omitempty"`
	DisplayText        string `json:"displayText,omitempty"`
}

// RelatedTermHeader references a term from a glossary or category.
type RelatedTermHeader struct {
	TermGUID     string `json:"termGuid"`
	RelationGUID string `json:"relationGuid,omitempty"`
	DisplayText  string `json:"displayText,omitempty"`
}

// TermCategorizationHeader links a term to one of its categories.
type TermCategorizationHeader struct {
	CategoryGUID string `json:"categoryGuid"`
	RelationGUID string `json:"relationGuid,omitempty"`
	DisplayText  string `json:"displayText,omitempty"`
}

// Glossary is an AtlasGlossary.
type Glossary struct {
	GUID             string                  `json:"guid,omitempty"`
	QualifiedName    string                  `json:"qualifiedName,omitempty"`
	Name             string                  `json:"name"`
	ShortDescription string                  `json:"shortDescription,omitempty"`
	LongDescription  string                  `json:"longDescription,omitempty"`
	Language         string                  `json:"language,omitempty"`
	Usage            string                  `json:"usage,omitempty"`
	Terms            []RelatedTermHeader     `json:"terms,omitempty"`
	Categories       []RelatedCategoryHeader `json:"categories,omitempty"`
	Attributed
}

// Clone returns a deep copy.
func (g *Glossary) Clone() *Glossary {
	c := *g
	c.Terms = append([]RelatedTermHeader(nil), g.Terms...)
	c.Categories = append([]RelatedCategoryHeader(nil), g.Categories...)
	c.AdditionalAttributes = cloneAttributes(g.AdditionalAttributes)
	return &c
}

// Category is an AtlasGlossaryCategory.
type Category struct {
	GUID               string                  `json:"guid,omitempty"`
	QualifiedName      string                  `json:"qualifiedName,omitempty"`
	Name               string                  `json:"name"`
	ShortDescription   string                  `json:"shortDescription,omitempty"`
	LongDescription    string                  `json:"longDescription,omitempty"`
	Anchor             GlossaryHeader          `json:"anchor"`
	ParentCategory     *RelatedCategoryHeader  `json:"parentCategory,omitempty"`
	ChildrenCategories []RelatedCategoryHeader `json:"childrenCategories,omitempty"`
	Terms              []RelatedTermHeader     `json:"terms,omitempty"`
	Attributed
}

// ParentGUID returns the parent category GUID, or "".
func (c *Category) ParentGUID() string {
	if c.ParentCategory == nil {
		return ""
	}
	return c.ParentCategory.CategoryGUID
}

// Clone returns a deep copy.
func (c *Category) Clone() *Category {
	out := *c
	if c.ParentCategory != nil {
		p := *c.ParentCategory
		out.ParentCategory = &p
	}
	out.ChildrenCategories = append([]RelatedCategoryHeader(nil), c.ChildrenCategories...)
	out.Terms = append([]RelatedTermHeader(nil), c.Terms...)
	out.AdditionalAttributes = cloneAttributes(c.AdditionalAttributes)
	return &out
}

// Term is an AtlasGlossaryTerm.
type Term struct {
	GUID             string                     `json:"guid,omitempty"`
	QualifiedName    string                     `json:"qualifiedName,omitempty"`
	Name             string                     `json:"name"`
	ShortDescription string                     `json:"shortDescription,omitempty"`
	LongDescription  string                     `json:"longDescription,omitempty"`
	Abbreviation     string                     `json:"abbreviation,omitempty"`
	Examples         []string                   `json:"examples,omitempty"`
	Usage            string                     `json:"usage,omitempty"`
	Anchor           GlossaryHeader             `json:"anchor"`
	Categories       []TermCategorizationHeader `json:"categories,omitempty"`
	Attributed
}

// CategoryGUIDs returns the GUIDs of the term's categories.
func (t *Term) CategoryGUIDs() []string {
	out := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		out = append(out, c.CategoryGUID)
	}
	return out
}

// Clone returns a deep copy.
func (t *Term) Clone() *Term {
	out := *t
	out.Examples = append([]string(nil), t.Examples...)
	out.Categories = append([]TermCategorizationHeader(nil), t.Categories...)
	out.AdditionalAttributes = cloneAttributes(t.AdditionalAttributes)
	return &out
}
