// Package testutil holds goquery helpers shared by handler and view tests.
package testutil

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

// ParseHTML parses body as an HTML document.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err, "parse html")
	return doc
}

// RenderComponent renders c with a background context and parses the markup.
func RenderComponent(t testing.TB, c templ.Component) *goquery.Document {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &out), "render component")
	return ParseHTML(t, out.Bytes())
}

// Text returns the whitespace-collapsed text of the nodes matching sel.
func Text(doc *goquery.Document, sel string) string {
	return strings.Join(strings.Fields(doc.Find(sel).Text()), " ")
}
