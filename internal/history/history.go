// Package history runs reversible commands and keeps the most recent one
// around so it can be undone.
package history

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNotPersisted is wrapped by commands whose change took effect in
	// memory but could not be saved. The executor treats such an Apply as
	// done and such a Revert as undone, and still returns the error.
	ErrNotPersisted = errors.New("change not persisted")
)

// Command is a reversible unit of mutation. Revert must undo exactly what
// the preceding Apply did.
type Command interface {
	Apply(ctx context.Context) error
	Revert(ctx context.Context) error
}

// Named is implemented by commands that want a label in logs and replies.
type Named interface {
	Name() string
}

// Executor applies commands and remembers the last successful one.
type Executor struct {
	last Command
}

func NewExecutor() *Executor {
	return &Executor{}
}

// PerformAction applies cmd. Once applied cmd becomes the undo target,
// replacing any earlier one.
func (e *Executor) PerformAction(ctx context.Context, cmd Command) error {
	if err := cmd.Apply(ctx); err != nil {
		if errors.Is(err, ErrNotPersisted) {
			e.last = cmd
		}
		return fmt.Errorf("apply %s: %w", name(cmd), err)
	}
	e.last = cmd
	return nil
}

// Undo reverts the most recent command. There is no redo.
func (e *Executor) Undo(ctx context.Context) error {
	if e.last == nil {
		return ErrNothingToUndo
	}
	cmd := e.last
	if err := cmd.Revert(ctx); err != nil {
		if errors.Is(err, ErrNotPersisted) {
			e.last = nil
		}
		return fmt.Errorf("revert %s: %w", name(cmd), err)
	}
	e.last = nil
	return nil
}

// CanUndo reports whether Undo has anything to revert.
func (e *Executor) CanUndo() bool {
	return e.last != nil
}

// Forget drops the undo target, e.g. when the document it refers to is
// replaced.
func (e *Executor) Forget() {
	e.last = nil
}

func name(cmd Command) string {
	if n, ok := cmd.(Named); ok {
		return n.Name()
	}
	return "command"
}
