package document

import "errors"

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History keeps the undo and redo stacks for one document.
type History struct {
	undo []Command
	redo []Command
}

func NewHistory() *History {
	return &History{}
}

// Execute runs cmd and pushes it on the undo stack. Executing a new command
// discards everything that could have been redone.
func (h *History) Execute(doc Document, cmd Command) error {
	if err := cmd.Execute(doc); err != nil {
		return err
	}
	h.undo = append(h.undo, cmd)
	h.redo = nil
	return nil
}

func (h *History) Undo(doc Document) (Command, error) {
	if len(h.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Undo(doc); err != nil {
		return nil, err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd, nil
}

func (h *History) Redo(doc Document) (Command, error) {
	if len(h.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	cmd := h.redo[len(h.redo)-1]
	if err := cmd.Execute(doc); err != nil {
		return nil, err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd, nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
