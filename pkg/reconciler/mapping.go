package reconciler

import (
	"slices"
	"strings"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
)

// Property mapping between the two sides. Only the fields below are
// synchronized; everything else on either side is left untouched.

func (r *Reconciler) glossaryFromAtlas(base egeria.GlossaryProperties, ag *atlas.Glossary) egeria.GlossaryProperties {
	base.QualifiedName = r.prefixes.Glossary + ag.Name
	base.DisplayName = ag.Name
	base.Description = ag.ShortDescription
	base.Language = ag.Language
	base.Usage = ag.Usage
	return base
}

func (r *Reconciler) categoryFromAtlas(base egeria.CategoryProperties, ac *atlas.Category) egeria.CategoryProperties {
	base.QualifiedName = r.prefixes.Category + atlasQualifiedName(ac.QualifiedName, ac.GUID)
	base.DisplayName = ac.Name
	base.Description = ac.ShortDescription
	return base
}

func (r *Reconciler) termFromAtlas(base egeria.TermProperties, at *atlas.Term) egeria.TermProperties {
	base.QualifiedName = r.prefixes.Term + atlasQualifiedName(at.QualifiedName, at.GUID)
	base.DisplayName = at.Name
	base.Summary = at.ShortDescription
	base.Description = at.LongDescription
	base.Abbreviation = at.Abbreviation
	base.Examples = strings.Join(at.Examples, "\n")
	base.Usage = at.Usage
	return base
}

func glossaryToAtlas(dst *atlas.Glossary, p egeria.GlossaryProperties) {
	dst.ShortDescription = p.Description
	dst.Language = p.Language
	dst.Usage = p.Usage
}

func categoryToAtlas(dst *atlas.Category, p egeria.CategoryProperties) {
	dst.ShortDescription = p.Description
}

func termToAtlas(dst *atlas.Term, p egeria.TermProperties) {
	dst.ShortDescription = p.Summary
	dst.LongDescription = p.Description
	dst.Abbreviation = p.Abbreviation
	dst.Examples = splitExamples(p.Examples)
	dst.Usage = p.Usage
}

func glossaryChanged(a, b *atlas.Glossary) bool {
	return a.Name != b.Name ||
		a.ShortDescription != b.ShortDescription ||
		a.Language != b.Language ||
		a.Usage != b.Usage ||
		a.Marker() != b.Marker()
}

func categoryChanged(a, b *atlas.Category) bool {
	return a.Name != b.Name ||
		a.ShortDescription != b.ShortDescription ||
		a.Marker() != b.Marker()
}

func termChanged(a, b *atlas.Term) bool {
	return a.Name != b.Name ||
		a.ShortDescription != b.ShortDescription ||
		a.LongDescription != b.LongDescription ||
		a.Abbreviation != b.Abbreviation ||
		!slices.Equal(a.Examples, b.Examples) ||
		a.Usage != b.Usage ||
		a.Marker() != b.Marker()
}

func splitExamples(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func atlasQualifiedName(qualifiedName, guid string) string {
	if qualifiedName != "" {
		return qualifiedName
	}
	return guid
}

// displayName is the name an Egeria element should have in Atlas, which
// requires a non-empty name.
func displayName(display, qualified string) string {
	if display != "" {
		return display
	}
	return qualified
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
