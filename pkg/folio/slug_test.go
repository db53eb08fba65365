package folio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/folio/pkg/folio"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "mixed punctuation and digits",
			title:    "My Certs! 2024",
			expected: "my-certs-2024",
		},
		{
			name:     "simple title",
			title:    "Projects",
			expected: "projects",
		},
		{
			name:     "consecutive separators collapse",
			title:    "Work -- History",
			expected: "work-history",
		},
		{
			name:     "leading and trailing separators dropped",
			title:    "  !Testimonials!  ",
			expected: "testimonials",
		},
		{
			name:     "uppercase folded",
			title:    "STAR Memos",
			expected: "star-memos",
		},
		{
			name:     "only separators",
			title:    "!!!",
			expected: "",
		},
		{
			name:     "empty title",
			title:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, folio.GenerateSlug(tt.title))
		})
	}
}

func TestNewEntryID(t *testing.T) {
	id := folio.NewEntryID()
	require.True(t, strings.HasPrefix(id, "entry_"), "entry id %q must carry the entry_ prefix", id)

	// IDs must be unique across calls
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		next := folio.NewEntryID()
		assert.False(t, seen[next], "duplicate entry id %q", next)
		seen[next] = true
	}
}
