package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMenuToggleAndLinkClose(t *testing.T) {
	t.Parallel()

	var m Menu
	require.False(t, m.Open)
	m.Toggle()
	require.True(t, m.Open)
	m.Toggle()
	require.False(t, m.Open)

	m.Toggle()
	m.Close()
	require.False(t, m.Open, "link click closes the open menu")
	m.Close()
	require.False(t, m.Open, "closing a closed menu keeps it closed")
}

func TestBuildMarksActiveItem(t *testing.T) {
	t.Parallel()

	items := Build("/templates")
	require.Len(t, items, len(Main))
	for _, it := range items {
		require.Equal(t, it.Href == "/templates", it.Active, it.Href)
		require.Equal(t, CloseURL(it.Href), it.CloseURL)
	}

	items = Build("/templates/5")
	require.True(t, items[1].Active, "prefix boundary counts as active")

	for _, it := range Build("/templatesx") {
		require.False(t, it.Active)
	}
}

func TestSafeTarget(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                             "/",
		"/chat":                        "/chat",
		"/templates?category=registry": "/templates?category=registry",
		"/help/../dashboard":           "/dashboard",
		"https://evil.example/chat":    "/",
		"//evil.example/chat":          "/",
		"/admin":                       "/",
		"chat":                         "/",
	}
	for in, want := range cases {
		require.Equal(t, want, SafeTarget(in), "input %q", in)
	}
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	crumbs := Breadcrumbs("/")
	require.Len(t, crumbs, 1)
	require.True(t, crumbs[0].Active)

	crumbs = Breadcrumbs("/templates/rent-agreement")
	require.Len(t, crumbs, 3)
	require.Equal(t, "nav.templates", crumbs[1].LabelKey)
	require.False(t, crumbs[1].Active)
	require.Equal(t, "Rent agreement", crumbs[2].Label)
	require.True(t, crumbs[2].Active)
}
