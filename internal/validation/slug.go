package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var groupSlugRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,100}$`)

// reservedRootSegments are path segments claimed by fixed routes. Both group
// slugs and usernames must avoid them because /{username}/ is a catch-all.
var reservedRootSegments = map[string]struct{}{
	"auth":      {},
	"follow":    {},
	"group":     {},
	"health":    {},
	"media":     {},
	"metrics":   {},
	"new":       {},
	"new_group": {},
}

// ValidateGroupSlug validates group slug format and reserved names.
func ValidateGroupSlug(slug string) error {
	if !groupSlugRegex.MatchString(slug) {
		return fmt.Errorf("slug must be 1-100 characters and contain only letters, numbers, hyphens, and underscores")
	}

	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		return fmt.Errorf("slug cannot start or end with a hyphen")
	}

	if _, exists := reservedRootSegments[slug]; exists {
		return fmt.Errorf("slug is reserved")
	}

	return nil
}
