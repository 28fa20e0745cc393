package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/todo/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips script injection", input: `<p>Hello</p><script>alert('xss')</script>`, expected: "Hello"},
		{name: "strips all HTML tags", input: `<p>Hello <strong>world</strong></p>`, expected: "Hello world"},
		{name: "strips event handlers", input: `<img src="x" onerror="alert('xss')">`, expected: ""},
		{name: "strips javascript URLs", input: `<a href="javascript:alert('xss')">click</a>`, expected: "click"},
		{name: "decodes entities", input: `fish &amp; chips`, expected: "fish & chips"},
		{name: "handles plain text", input: "normal text without HTML", expected: "normal text without HTML"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "collapses whitespace", input: "  Buy \t\n milk  ", expected: "Buy milk"},
		{name: "strips tags", input: "<b>Buy</b>  milk", expected: "Buy milk"},
		{name: "drops control characters", input: "Buy\x07 milk\x1b", expected: "Buy milk"},
		{name: "normalizes to NFC", input: "Cafe\u0301", expected: "Caf\u00e9"},
		{name: "only whitespace", input: " \t ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Text(tt.input))
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "alice@example.com", sanitizer.Email("  Alice@Example.COM "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "héll", sanitizer.Truncate("héllo", 4))
	assert.Equal(t, "héllo", sanitizer.Truncate("héllo", 10))
	assert.Equal(t, "", sanitizer.Truncate("héllo", 0))
}
