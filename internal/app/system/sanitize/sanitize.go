// Package sanitize strips HTML from free-text input before it is stored.
// Descriptions, addresses, and report reasons are rendered back to clients
// verbatim, so markup is removed on the way in.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
