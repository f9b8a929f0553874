package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(items []Template) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterEmptySearchAllReturnsCatalogInOrder(t *testing.T) {
	t.Parallel()

	c := Default()
	got := Filter(c.All(), "", CategoryAll)
	require.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(got))
}

func TestFilterRTIMatchesAcrossCategories(t *testing.T) {
	t.Parallel()

	c := Default()
	got := c.Search("rti", CategoryAll)
	require.Equal(t, []string{"5"}, ids(got))
	require.Equal(t, "RTI Application Template", got[0].Title)
}

func TestFilterCategoryOnly(t *testing.T) {
	t.Parallel()

	c := Default()
	got := c.Search("", CategoryEmployment)
	require.Len(t, got, 1)
	for _, tpl := range got {
		require.Equal(t, CategoryEmployment, tpl.Category)
	}

	registry := c.Search("", CategoryRegistry)
	require.Equal(t, []string{"1", "6"}, ids(registry))
}

func TestFilterNoMatchIsEmptyNotNil(t *testing.T) {
	t.Parallel()

	got := Default().Search("zzz-no-match", CategoryAll)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterIsCaseInsensitiveAndMatchesTags(t *testing.T) {
	t.Parallel()

	c := Default()
	require.Equal(t, []string{"1", "6"}, ids(c.Search("PROPERTY", CategoryAll)))
	require.Equal(t, []string{"3"}, ids(c.Search("labor law", CategoryAll)))
	// "Protection Act" is only a tag and a description phrase of the consumer template.
	require.Equal(t, []string{"2"}, ids(c.Search("protection act", CategoryAll)))
}

func TestFilterSearchWhitespaceIsSignificant(t *testing.T) {
	t.Parallel()

	c := Default()
	require.Equal(t, []string{"3"}, ids(c.Search("act ", CategoryAll)))
	require.Equal(t, []string{"2", "3", "6"}, ids(c.Search("act", CategoryAll)))
	require.Empty(t, c.Search("   ", CategoryAll))
	require.Equal(t, []string{"1"}, ids(c.Search(" property", CategoryAll)))
}

func TestCategoryOrAll(t *testing.T) {
	t.Parallel()

	require.Equal(t, CategoryRegistry, CategoryOrAll(" Registry "))
	require.Equal(t, CategoryAll, CategoryOrAll("foo"))
	require.Equal(t, CategoryAll, CategoryOrAll(""))
}

func TestFilterCombinesCategoryAndSearch(t *testing.T) {
	t.Parallel()

	c := Default()
	require.Equal(t, []string{"6"}, ids(c.Search("rent", CategoryRegistry)))
	require.Empty(t, c.Search("rent", CategoryBusiness))
}

func TestFilterEmptyCategoryMeansAll(t *testing.T) {
	t.Parallel()

	require.Len(t, Default().Search("", ""), 6)
	require.Empty(t, Default().Search("", "unknown"))
}

func TestCountsIgnoreSearchTerm(t *testing.T) {
	t.Parallel()

	c := Default()
	before := c.Counts()
	_ = c.Search("rti", CategoryComplaint)
	after := c.Counts()
	require.Equal(t, before, after)

	want := map[Category]int{
		CategoryAll:        6,
		CategoryRegistry:   2,
		CategoryComplaint:  2,
		CategoryEmployment: 1,
		CategoryBusiness:   1,
	}
	for _, cc := range after {
		require.Equal(t, want[cc.ID], cc.Count, "count for %s", cc.ID)
	}
	require.Equal(t, "Registry & Property", after[1].Label)
}

func TestCatalogIsNotMutatedThroughResults(t *testing.T) {
	t.Parallel()

	c := Default()
	got := c.Search("", CategoryAll)
	got[0].Title = "changed"
	got[0].Tags[0] = "changed"

	again, err := c.ByID("1")
	require.NoError(t, err)
	require.Equal(t, "Property Registration Application", again.Title)
	require.Equal(t, "Property", again.Tags[0])
}

func TestByIDNotFound(t *testing.T) {
	t.Parallel()

	_, err := Default().ByID("42")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = Default().ByID(" ")
	require.ErrorIs(t, err, ErrNotFound)
}
