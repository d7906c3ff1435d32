package news

import "github.com/goliatone/go-slug"

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// NormalizeSlug applies the default slug normalization rules.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}

// slugFromTitle derives a record slug from its title. Titles that normalize
// to nothing (emoji-only, for example) leave the slug empty rather than
// failing the save.
func slugFromTitle(title string) string {
	normalized, err := NormalizeSlug(title)
	if err != nil {
		return ""
	}
	return normalized
}
