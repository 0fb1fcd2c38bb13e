package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shriya7756/campusconnect-backend/pkg/errors"
	"github.com/shriya7756/campusconnect-backend/pkg/utils"
	"gorm.io/gorm"
)

// FlexTags accepts either a JSON array of strings or a single
// comma-separated string, matching both shapes the web client sends.
type FlexTags []string

func (t *FlexTags) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = cleanTags(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = cleanTags(strings.Split(s, ","))
	return nil
}

func cleanTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// respondError records err on the context and stops the chain; the
// error middleware maps it to the response.
func respondError(c *gin.Context, err *errors.AppError) {
	c.Error(err)
	c.Abort()
}

// applySearch narrows query to rows whose title, description or tags
// contain the term, case-insensitively. Postgres gets ILIKE over the
// real text[] column; other dialects (sqlite in tests) see the array's
// flattened literal, which LIKE searches just as well.
func applySearch(query *gorm.DB, raw string) *gorm.DB {
	term := utils.SanitizeSearchQuery(raw)
	if query.Dialector.Name() == "postgres" {
		return query.Where(
			"title ILIKE ? OR description ILIKE ? OR array_to_string(tags, ',') ILIKE ?",
			term, term, term,
		)
	}
	return query.Where(
		"LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\\' OR LOWER(tags) LIKE LOWER(?) ESCAPE '\\'",
		term, term, term,
	)
}

// viewerIdentity returns the best-effort deduplication key for view
// counting: the authenticated user id when present, otherwise the
// client-supplied X-User-Id header. Anonymous callers without the header
// are not counted.
func viewerIdentity(c *gin.Context) string {
	if id := c.GetString("userId"); id != "" {
		return id
	}
	return strings.TrimSpace(c.GetHeader("X-User-Id"))
}
