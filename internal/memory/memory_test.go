package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
)

func TestAtlasNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	a := NewAtlas()

	g, err := a.CreateGlossary(ctx, &atlas.Glossary{Name: "Finance"})
	require.NoError(t, err)
	_, err = a.CreateGlossary(ctx, &atlas.Glossary{Name: "Finance"})
	assert.True(t, errors.IsNameConflict(err))

	other, err := a.CreateGlossary(ctx, &atlas.Glossary{Name: "Operations"})
	require.NoError(t, err)

	_, err = a.CreateTerm(ctx, &atlas.Term{Name: "Revenue", Anchor: atlas.GlossaryHeader{GlossaryGUID: g}})
	require.NoError(t, err)
	_, err = a.CreateTerm(ctx, &atlas.Term{Name: "Revenue", Anchor: atlas.GlossaryHeader{GlossaryGUID: g}})
	assert.True(t, errors.IsNameConflict(err))
	_, err = a.CreateTerm(ctx, &atlas.Term{Name: "Revenue", Anchor: atlas.GlossaryHeader{GlossaryGUID: other}})
	assert.NoError(t, err, "term names are unique per glossary")

	_, err = a.CreateTerm(ctx, &atlas.Term{Name: "", Anchor: atlas.GlossaryHeader{GlossaryGUID: g}})
	assert.True(t, errors.IsInvalidParameter(err))
	_, err = a.GetGlossary(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestAtlasDerivesRelationships(t *testing.T) {
	ctx := context.Background()
	a := NewAtlas()

	g, err := a.CreateGlossary(ctx, &atlas.Glossary{Name: "Finance"})
	require.NoError(t, err)
	parent, err := a.CreateCategory(ctx, &atlas.Category{Name: "Accounts", Anchor: atlas.GlossaryHeader{GlossaryGUID: g}})
	require.NoError(t, err)
	child, err := a.CreateCategory(ctx, &atlas.Category{
		Name:           "Receivables",
		Anchor:         atlas.GlossaryHeader{GlossaryGUID: g},
		ParentCategory: &atlas.RelatedCategoryHeader{CategoryGUID: parent},
	})
	require.NoError(t, err)
	term, err := a.CreateTerm(ctx, &atlas.Term{
		Name:       "Revenue",
		Anchor:     atlas.GlossaryHeader{GlossaryGUID: g},
		Categories: []atlas.TermCategorizationHeader{{CategoryGUID: parent}},
	})
	require.NoError(t, err)

	glossary, err := a.GetGlossary(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, "Finance", glossary.QualifiedName)
	assert.Len(t, glossary.Categories, 2)
	assert.Len(t, glossary.Terms, 1)

	c, err := a.GetCategory(ctx, parent)
	require.NoError(t, err)
	assert.Equal(t, "Accounts@Finance", c.QualifiedName)
	require.Len(t, c.ChildrenCategories, 1)
	assert.Equal(t, child, c.ChildrenCategories[0].CategoryGUID)
	require.Len(t, c.Terms, 1)
	assert.Equal(t, term, c.Terms[0].TermGUID)

	require.NoError(t, a.DeleteCategory(ctx, parent))
	c, err = a.GetCategory(ctx, child)
	require.NoError(t, err)
	assert.Empty(t, c.ParentGUID())
	tm, err := a.GetTerm(ctx, term)
	require.NoError(t, err)
	assert.Empty(t, tm.Categories)

	require.NoError(t, a.DeleteGlossary(ctx, g))
	_, err = a.GetTerm(ctx, term)
	assert.True(t, errors.IsNotFound(err))
	assert.Zero(t, a.GlossaryCount())
}

func TestAtlasSaveKeepsAnchorAndQualifiedName(t *testing.T) {
	ctx := context.Background()
	a := NewAtlas()
	g, err := a.CreateGlossary(ctx, &atlas.Glossary{Name: "Finance"})
	require.NoError(t, err)
	guid, err := a.CreateTerm(ctx, &atlas.Term{Name: "Revenue", Anchor: atlas.GlossaryHeader{GlossaryGUID: g}})
	require.NoError(t, err)

	saved, err := a.SaveTerm(ctx, &atlas.Term{GUID: guid, Name: "Income", Anchor: atlas.GlossaryHeader{GlossaryGUID: "elsewhere"}})
	require.NoError(t, err)
	assert.Equal(t, g, saved.Anchor.GlossaryGUID)
	assert.Equal(t, "Revenue@Finance", saved.QualifiedName)
	assert.Equal(t, []string{"Income"}, a.TermNames(g))
}

func TestAtlasFailuresAndConflicts(t *testing.T) {
	ctx := context.Background()
	a := NewAtlas()
	boom := errors.New("boom")

	a.Fail("ListGlossaries", boom)
	_, err := a.ListGlossaries(ctx, 0, 10)
	assert.ErrorIs(t, err, boom)
	a.Fail("ListGlossaries", nil)
	_, err = a.ListGlossaries(ctx, 0, 10)
	assert.NoError(t, err)

	a.ForceConflicts(1)
	_, err = a.CreateGlossary(ctx, &atlas.Glossary{Name: "Finance"})
	assert.True(t, errors.IsNameConflict(err))
	_, err = a.CreateGlossary(ctx, &atlas.Glossary{Name: "Finance"})
	assert.NoError(t, err)
	assert.Equal(t, 1, a.Writes())
}

func TestEgeriaOriginFollowsCorrelationScope(t *testing.T) {
	ctx := context.Background()
	e := NewEgeria("cocoMDS1", 0)

	local, err := e.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: "Glossary::Local"}, nil)
	require.NoError(t, err)
	corr := egeria.AtlasCorrelation("atlas-1", "Apache Atlas")
	remote, err := e.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: "AtlasGlossary.Remote"}, &corr)
	require.NoError(t, err)

	g, err := e.GetGlossaryByGUID(ctx, local)
	require.NoError(t, err)
	assert.Equal(t, "cocoMDS1", g.Header.Origin.HomeCollection)
	assert.Empty(t, g.Correlations)

	g, err = e.GetGlossaryByGUID(ctx, remote)
	require.NoError(t, err)
	assert.Equal(t, "Apache Atlas", g.Header.Origin.HomeCollection)
	assert.Equal(t, "atlas-1", g.Correlations.AtlasGUID())
	assert.Equal(t, egeria.KindGlossary, g.Header.Kind())

	_, err = e.GetGlossaryByName(ctx, "Glossary::Missing")
	assert.True(t, errors.IsNotFound(err))
	_, err = e.GetGlossaryByGUID(ctx, "missing")
	assert.True(t, errors.IsInvalidParameter(err))
	assert.True(t, errors.IsGone(err))
}

func TestEgeriaRelationships(t *testing.T) {
	ctx := context.Background()
	e := NewEgeria("cocoMDS1", 0)
	g, err := e.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: "Glossary::Finance"}, nil)
	require.NoError(t, err)
	parent, err := e.CreateCategory(ctx, g, egeria.CategoryProperties{QualifiedName: "c1"}, nil)
	require.NoError(t, err)
	child, err := e.CreateCategory(ctx, g, egeria.CategoryProperties{QualifiedName: "c2"}, nil)
	require.NoError(t, err)
	term, err := e.CreateTerm(ctx, g, egeria.TermProperties{QualifiedName: "t1"}, nil)
	require.NoError(t, err)

	p, err := e.GetCategoryParent(ctx, child)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, e.SetupCategoryParent(ctx, parent, child))
	p, err = e.GetCategoryParent(ctx, child)
	require.NoError(t, err)
	assert.Equal(t, parent, p.GUID())
	assert.True(t, errors.IsInvalidParameter(e.ClearCategoryParent(ctx, child, parent)))
	require.NoError(t, e.ClearCategoryParent(ctx, parent, child))

	require.NoError(t, e.SetupTermCategory(ctx, parent, term))
	writes := e.Writes()
	require.NoError(t, e.SetupTermCategory(ctx, parent, term))
	assert.Equal(t, writes, e.Writes(), "categorizing twice is a no-op")

	cats, err := e.GetCategoriesForTerm(ctx, term, 0, 10)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, parent, cats[0].GUID())

	owner, err := e.GetGlossaryForTerm(ctx, term)
	require.NoError(t, err)
	assert.Equal(t, g, owner.GUID())

	require.NoError(t, e.DeleteCategory(parent))
	cats, err = e.GetCategoriesForTerm(ctx, term, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.True(t, errors.IsInvalidParameter(e.ClearTermCategory(ctx, parent, term)))
}

func TestEgeriaPaging(t *testing.T) {
	ctx := context.Background()
	e := NewEgeria("cocoMDS1", 2)
	for _, qn := range []string{"a", "b", "c"} {
		_, err := e.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: qn}, nil)
		require.NoError(t, err)
	}

	page, err := e.ListGlossaries(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	page, err = e.ListGlossaries(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	page, err = e.ListGlossaries(ctx, 3, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = e.ListGlossaries(ctx, 0, 3)
	assert.True(t, errors.IsInvalidParameter(err), "page size above the service maximum is rejected")
}

func TestEgeriaFlushDeliversEvents(t *testing.T) {
	ctx := context.Background()
	e := NewEgeria("cocoMDS1", 0)

	var seen []egeria.Event
	require.NoError(t, e.RegisterListener(egeria.EventListenerFunc(func(_ context.Context, event egeria.Event) {
		seen = append(seen, event)
	})))
	assert.Equal(t, 1, e.Listeners())
	assert.ErrorIs(t, e.RegisterListener(nil), errors.ErrNoListener)

	g, err := e.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: "Glossary::Finance"}, nil)
	require.NoError(t, err)
	require.NoError(t, e.AddExternalIdentifier(ctx, g, egeria.KindGlossary, egeria.AtlasCorrelation("a1", "Apache Atlas")))
	assert.Equal(t, 2, e.Pending())

	assert.Equal(t, 2, e.Flush(ctx))
	require.Len(t, seen, 2)
	assert.Equal(t, egeria.EventNewElement, seen[0].Type)
	assert.Equal(t, egeria.EventUpdatedElement, seen[1].Type)
	assert.Equal(t, g, seen[1].ElementHeader.GUID)
	assert.Zero(t, e.Pending())

	require.NoError(t, e.DeleteGlossary(g))
	e.Discard()
	assert.Zero(t, e.Flush(ctx))
}

func TestEgeriaClearCorrelations(t *testing.T) {
	ctx := context.Background()
	e := NewEgeria("cocoMDS1", 0)
	corr := egeria.AtlasCorrelation("a1", "Apache Atlas")
	g, err := e.CreateGlossary(ctx, egeria.GlossaryProperties{QualifiedName: "q"}, &corr)
	require.NoError(t, err)

	e.ClearCorrelations(g)

	got, err := e.GetGlossaryByGUID(ctx, g)
	require.NoError(t, err)
	assert.Empty(t, got.Correlations.AtlasGUID())
	assert.Equal(t, "Apache Atlas", got.Header.Origin.HomeCollection)
}
