// Package typeid mints the prefixed, sortable ids used for layers, boards
// and sessions.
package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixLayer   = "layer"
	PrefixBoard   = "board"
	PrefixSession = "sess"
)

var (
	ErrMalformed   = errors.New("malformed id")
	ErrWrongPrefix = errors.New("wrong id prefix")
)

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewLayerID() string   { return New(PrefixLayer) }
func NewBoardID() string   { return New(PrefixBoard) }
func NewSessionID() string { return New(PrefixSession) }

// Validate checks that id parses and carries prefix.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrMalformed, id, err)
	}
	if got := parsed.Prefix(); got != prefix {
		return fmt.Errorf("%w: %q has %q, want %q", ErrWrongPrefix, id, got, prefix)
	}
	return nil
}
