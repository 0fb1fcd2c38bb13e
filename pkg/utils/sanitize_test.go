package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSQLWildcards(t *testing.T) {
	assert.Equal(t, "100\\% sure", EscapeSQLWildcards("100% sure"))
	assert.Equal(t, "under\\_score", EscapeSQLWildcards("under_score"))
	assert.Equal(t, "back\\\\slash", EscapeSQLWildcards("back\\slash"))
}

func TestSanitizeSearchQuery(t *testing.T) {
	assert.Equal(t, "%graph%", SanitizeSearchQuery("  graph  "))
	assert.Equal(t, "%a\\%b%", SanitizeSearchQuery("a%b"))

	long := strings.Repeat("x", 300)
	sanitized := SanitizeSearchQuery(long)
	assert.LessOrEqual(t, len(sanitized), 102)
}
