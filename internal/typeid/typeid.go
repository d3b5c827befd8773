package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixElement = "el"
	PrefixScene   = "scene"
)

// New generates a typeid string with the given prefix.
func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

// NewElementID generates a scene element id.
func NewElementID() string { return New(PrefixElement) }
// NewSceneID generates a scene id.
func NewSceneID() string   { return New(PrefixScene) }

// Validate checks that id parses as a typeid with expectedPrefix.
func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
