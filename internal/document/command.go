package document

import (
	"errors"
	"fmt"

	"medi-elevation/internal/edit"
	"medi-elevation/internal/types"
)

var ErrNotExecuted = errors.New("command has not been executed")

// Command is one reversible change to a document.
type Command interface {
	Description() string
	Execute(doc Document) error
	Undo(doc Document) error
}

// ChangePropertyCommand sets a single property and remembers what it replaced.
type ChangePropertyCommand struct {
	ID    types.PointID
	Key   string
	Value string

	previous    any
	hadPrevious bool
	executed    bool
}

func NewChangePropertyCommand(id types.PointID, key, value string) *ChangePropertyCommand {
	return &ChangePropertyCommand{ID: id, Key: key, Value: value}
}

func (c *ChangePropertyCommand) Description() string {
	return fmt.Sprintf("Set %s=%s on %s", c.Key, c.Value, c.ID)
}

func (c *ChangePropertyCommand) Execute(doc Document) error {
	previous, ok, err := snapshot(doc, c.ID, c.Key)
	if err != nil {
		return err
	}
	if err := doc.SetProperty(c.ID, c.Key, c.Value); err != nil {
		return err
	}
	c.previous, c.hadPrevious, c.executed = previous, ok, true
	return nil
}

func (c *ChangePropertyCommand) Undo(doc Document) error {
	if !c.executed {
		return ErrNotExecuted
	}

	var err error
	if c.hadPrevious {
		err = restore(doc, c.ID, c.Key, c.previous)
	} else {
		err = doc.RemoveProperty(c.ID, c.Key)
	}
	if err != nil {
		return err
	}
	c.executed = false
	return nil
}

// snapshot reads a property in its stored form, so restore can write it back
// with the same type.
func snapshot(doc Document, id types.PointID, key string) (any, bool, error) {
	if raw, ok := doc.(RawPropertyDocument); ok {
		return raw.RawProperty(id, key)
	}
	value, ok, err := doc.Property(id, key)
	return value, ok, err
}

func restore(doc Document, id types.PointID, key string, value any) error {
	if raw, ok := doc.(RawPropertyDocument); ok {
		return raw.SetRawProperty(id, key, value)
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("restore %s on %s: stored value is %T, not string", key, id, value)
	}
	return doc.SetProperty(id, key, s)
}

// SequenceCommand runs its children as one unit. If a child fails, the
// children already executed are undone in reverse order and the document is
// left as it was.
type SequenceCommand struct {
	description string
	commands    []Command
}

func NewSequenceCommand(description string, commands ...Command) *SequenceCommand {
	return &SequenceCommand{description: description, commands: commands}
}

func (s *SequenceCommand) Description() string {
	return s.description
}

func (s *SequenceCommand) Len() int {
	return len(s.commands)
}

func (s *SequenceCommand) Execute(doc Document) error {
	for i, cmd := range s.commands {
		if err := cmd.Execute(doc); err != nil {
			rollbackErr := undoReverse(doc, s.commands[:i])
			return errors.Join(fmt.Errorf("%s: step %d (%s): %w", s.description, i, cmd.Description(), err), rollbackErr)
		}
	}
	return nil
}

func (s *SequenceCommand) Undo(doc Document) error {
	return undoReverse(doc, s.commands)
}

func undoReverse(doc Document, commands []Command) error {
	var errs []error
	for i := len(commands) - 1; i >= 0; i-- {
		if err := commands[i].Undo(doc); err != nil {
			errs = append(errs, fmt.Errorf("undo %s: %w", commands[i].Description(), err))
		}
	}
	return errors.Join(errs...)
}

// NewBatchCommand turns an edit batch into a single command, so one undo
// reverts every edit in it.
func NewBatchCommand(batch *edit.EditBatch) *SequenceCommand {
	commands := make([]Command, 0, batch.Len())
	for _, e := range batch.Edits {
		commands = append(commands, NewChangePropertyCommand(e.PointID, e.Key, e.Value))
	}
	return NewSequenceCommand(batch.Description, commands...)
}
