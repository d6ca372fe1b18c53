package easel

// Command is an opaque pair of do/undo closures, typically closing over two
// scene snapshots (before/after a mutation).
type Command struct {
	Execute func() error
	Undo    func() error
}

// History is a linear undo/redo stack over Commands with a capped capacity.
// The cursor points at the most recently applied command, or -1 when
// everything has been undone.
type History struct {
	commands []*Command
	cursor   int
	limit    int
}

// NewHistory creates a history holding at most limit commands.
// A limit of zero or less means unbounded.
func NewHistory(limit int) *History {
	return &History{cursor: -1, limit: limit}
}

// Execute runs cmd immediately, discards any previously-undone suffix, and
// appends cmd. When the history is at capacity the oldest entry is evicted;
// in that case the cursor is deliberately left where it is — the list length
// is unchanged, so it keeps pointing at the newest entry.
func (h *History) Execute(cmd *Command) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	h.commands = h.commands[:h.cursor+1]
	h.commands = append(h.commands, cmd)
	if h.limit > 0 && len(h.commands) > h.limit {
		copy(h.commands, h.commands[1:])
		h.commands[len(h.commands)-1] = nil
		h.commands = h.commands[:len(h.commands)-1]
	} else {
		h.cursor++
	}
	return nil
}

// Undo reverts the command at the cursor. No-op when there is nothing to
// undo. A failing undo closure's error propagates to the caller and leaves
// the cursor in place; there is no safe fallback snapshot.
func (h *History) Undo() error {
	if h.cursor < 0 {
		return nil
	}
	if err := h.commands[h.cursor].Undo(); err != nil {
		return err
	}
	h.cursor--
	return nil
}

// Redo re-applies the command after the cursor. No-op when the cursor is at
// the end. Errors propagate as in Undo.
func (h *History) Redo() error {
	if h.cursor >= len(h.commands)-1 {
		return nil
	}
	if err := h.commands[h.cursor+1].Execute(); err != nil {
		return err
	}
	h.cursor++
	return nil
}

// CanUndo reports whether an Undo would do anything.
func (h *History) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo reports whether a Redo would do anything.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.commands)-1
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	return len(h.commands)
}

// Clear drops all recorded commands.
func (h *History) Clear() {
	h.commands = h.commands[:0]
	h.cursor = -1
}
