package htmlwash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwagner84/htmlwash"
)

func TestDefaultPolicy(t *testing.T) {
	p := htmlwash.DefaultPolicy()
	require.NotNil(t, p)

	assert.True(t, p.AllowedTag("div"))
	assert.True(t, p.AllowedTag("table"))
	assert.False(t, p.AllowedTag("script"))
	assert.False(t, p.AllowedTag("iframe"))
	assert.False(t, p.AllowedTag("body"), "the container is walked, never emitted")

	assert.True(t, p.ContentTag("form"))
	assert.True(t, p.ContentTag("google-sheets-html-origin"))
	assert.False(t, p.ContentTag("div"))

	assert.True(t, p.AllowedAttribute("href"))
	assert.True(t, p.AllowedAttribute("style"))
	assert.False(t, p.AllowedAttribute("onclick"))

	assert.True(t, p.AllowedCSSProperty("color"))
	assert.True(t, p.AllowedCSSProperty("background-color"))
	assert.False(t, p.AllowedCSSProperty("position"))

	assert.True(t, p.URIAttribute("href"))
	assert.True(t, p.URIAttribute("action"))
	assert.False(t, p.URIAttribute("src"))
}

func TestNewPolicy_CategoryReplacement(t *testing.T) {
	p := htmlwash.NewPolicy(htmlwash.Options{
		AllowedTags: []string{"b"},
	})

	assert.True(t, p.AllowedTag("b"))
	assert.False(t, p.AllowedTag("div"), "replacement is wholesale, not a merge")

	// Untouched categories keep their defaults.
	assert.True(t, p.AllowedAttribute("href"))
	assert.True(t, p.AllowedCSSProperty("color"))
	assert.True(t, p.AllowedScheme("https://example.com"))
}

func TestNewPolicy_CategoriesIndependent(t *testing.T) {
	p := htmlwash.NewPolicy(htmlwash.Options{
		AllowedAttributes: []string{"id"},
	})

	assert.True(t, p.AllowedAttribute("id"))
	assert.False(t, p.AllowedAttribute("href"))

	assert.True(t, p.AllowedTag("div"))
	assert.True(t, p.AllowedCSSProperty("color"))
	assert.True(t, p.AllowedScheme("https://example.com"))
}

func TestNewPolicy_EmptyListDisablesCategory(t *testing.T) {
	p := htmlwash.NewPolicy(htmlwash.Options{
		AllowedSchemes: []string{},
	})

	assert.False(t, p.AllowedScheme("https://example.com"))
	assert.False(t, p.AllowedScheme("http://example.com"))
	assert.True(t, p.AllowedTag("div"))
}

func TestNewPolicy_NameFolding(t *testing.T) {
	p := htmlwash.NewPolicy(htmlwash.Options{
		AllowedTags:      []string{"DIV", "Span"},
		AllowedCSSStyles: []string{"Color"},
	})

	assert.True(t, p.AllowedTag("div"))
	assert.True(t, p.AllowedTag("SPAN"))
	assert.True(t, p.AllowedCSSProperty("color"))
}

func TestAllowedScheme_LiteralPrefix(t *testing.T) {
	p := htmlwash.DefaultPolicy()

	assert.True(t, p.AllowedScheme("https://example.com"))
	assert.True(t, p.AllowedScheme("mailto:a@b.c"))
	assert.False(t, p.AllowedScheme("javascript:alert(1)"))
	assert.False(t, p.AllowedScheme("HTTPS://example.com"),
		"matching is case-sensitive and literal")
	assert.False(t, p.AllowedScheme(" https://example.com"),
		"no trimming is applied")

	caps := htmlwash.NewPolicy(htmlwash.Options{
		AllowedSchemes: []string{"https:", "HTTPS:"},
	})
	assert.True(t, caps.AllowedScheme("HTTPS://example.com"))
}
