package common

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// MaxSlugLength bounds workspace slugs so they stay usable as URL path segments.
const MaxSlugLength = 48

var (
	ErrEmptySlug   = errors.New("slug cannot be empty")
	ErrInvalidSlug = errors.New("slug may contain only lowercase letters, digits and hyphens")
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

// ValidateSlug checks a slug supplied verbatim by a user.
func ValidateSlug(slug string) error {
	if slug == "" {
		return ErrEmptySlug
	}
	if len(slug) > MaxSlugLength || !validSlug.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// SlugWithSuffix returns "<slug>-<n>", trimming the base so the result fits MaxSlugLength.
func SlugWithSuffix(slug string, n int) string {
	suffix := "-" + strconv.Itoa(n)
	if len(slug)+len(suffix) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength-len(suffix)], "-")
	}
	return slug + suffix
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}
