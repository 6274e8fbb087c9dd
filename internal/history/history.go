// Package history keeps bounded undo and redo stacks of board snapshots.
package history

import (
	"github.com/julianstephens/weekboard/internal/constants"
	"github.com/julianstephens/weekboard/internal/models"
)

// Manager arbitrates linear undo/redo over independent snapshots. It is not
// safe for concurrent use.
type Manager struct {
	capacity int
	undo     []models.BoardState
	redo     []models.BoardState
}

// New returns a Manager holding at most capacity undo entries. A non-positive
// capacity falls back to the default.
func New(capacity int) *Manager {
	if capacity <= 0 {
		capacity = constants.DefaultHistoryCapacity
	}
	return &Manager{capacity: capacity}
}

// Capacity returns the undo stack limit.
func (m *Manager) Capacity() int { return m.capacity }

// Checkpoint records the pre-mutation snapshot and drops all redo entries.
// When the undo stack is full the oldest entry is evicted.
func (m *Manager) Checkpoint(snapshot models.BoardState) {
	m.push(snapshot)
	m.redo = nil
}

// Undo returns the most recent checkpoint and parks current on the redo stack.
// ok is false when there is nothing to undo.
func (m *Manager) Undo(current models.BoardState) (models.BoardState, bool) {
	prev, ok := pop(&m.undo)
	if !ok {
		return models.BoardState{}, false
	}
	m.redo = append(m.redo, current.Clone())
	return prev, true
}

// Redo is the inverse of Undo.
func (m *Manager) Redo(current models.BoardState) (models.BoardState, bool) {
	next, ok := pop(&m.redo)
	if !ok {
		return models.BoardState{}, false
	}
	m.push(current)
	return next, true
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

func (m *Manager) UndoDepth() int { return len(m.undo) }

func (m *Manager) RedoDepth() int { return len(m.redo) }

// Clear forgets all history, e.g. after loading a different board.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) push(snapshot models.BoardState) {
	m.undo = append(m.undo, snapshot.Clone())
	if over := len(m.undo) - m.capacity; over > 0 {
		clear(m.undo[:over])
		m.undo = append(m.undo[:0], m.undo[over:]...)
	}
}

func pop(stack *[]models.BoardState) (models.BoardState, bool) {
	s := *stack
	if len(s) == 0 {
		return models.BoardState{}, false
	}
	top := s[len(s)-1]
	s[len(s)-1] = models.BoardState{}
	*stack = s[:len(s)-1]
	return top, true
}
