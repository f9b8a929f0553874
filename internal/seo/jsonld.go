package seo

import "encoding/json"

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Thing carries the fields shared by every top-level schema.org node.
type Thing struct {
	Context string `json:"@context"`
	Type    string `json:"@type"`
}

func thing(kind string) Thing { return Thing{Context: schemaContext, Type: kind} }

// OrganizationSchema describes the publisher.
type OrganizationSchema struct {
	Thing
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Logo string `json:"logo,omitempty"`
}

// Organization builds the publisher node. Empty url or logo are omitted.
func Organization(name, url, logoURL string) OrganizationSchema {
	return OrganizationSchema{Thing: thing("Organization"), Name: name, URL: url, Logo: logoURL}
}

// SearchAction is the sitelinks search box target.
type SearchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

// WebSiteSchema describes the site with an optional search action.
type WebSiteSchema struct {
	Thing
	Name            string        `json:"name"`
	URL             string        `json:"url,omitempty"`
	PotentialAction *SearchAction `json:"potentialAction,omitempty"`
}

// WebSite builds the site node. searchURL is the search address without the term; the
// template search box appends `{search_term_string}` to it.
func WebSite(name, url, searchURL string) WebSiteSchema {
	site := WebSiteSchema{Thing: thing("WebSite"), Name: name, URL: url}
	if searchURL != "" {
		site.PotentialAction = &SearchAction{
			Type:       "SearchAction",
			Target:     searchURL + "{search_term_string}",
			QueryInput: "required name=search_term_string",
		}
	}
	return site
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbListSchema mirrors the visible breadcrumb trail.
type BreadcrumbListSchema struct {
	Thing
	Items []listItem `json:"itemListElement"`
}

// BreadcrumbList numbers items from 1 in order.
func BreadcrumbList(items []BreadcrumbItem) BreadcrumbListSchema {
	list := BreadcrumbListSchema{Thing: thing("BreadcrumbList"), Items: make([]listItem, 0, len(items))}
	for i, it := range items {
		list.Items = append(list.Items, listItem{Type: "ListItem", Position: i + 1, Name: it.Name, Item: it.Item})
	}
	return list
}

// QA is one question and its plain-text answer.
type QA struct {
	Question string
	Answer   string
}

type question struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	Answer answer `json:"acceptedAnswer"`
}

type answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// FAQPageSchema lists the help accordion for rich results.
type FAQPageSchema struct {
	Thing
	Questions []question `json:"mainEntity"`
}

// FAQPage builds the FAQ node for the help accordion.
func FAQPage(items []QA) FAQPageSchema {
	page := FAQPageSchema{Thing: thing("FAQPage"), Questions: make([]question, 0, len(items))}
	for _, it := range items {
		page.Questions = append(page.Questions, question{
			Type:   "Question",
			Name:   it.Question,
			Answer: answer{Type: "Answer", Text: it.Answer},
		})
	}
	return page
}
