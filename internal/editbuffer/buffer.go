package editbuffer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gstbridge/gstr-ledger/internal/domain/entity"
)

// Buffer states. Transitions: Idle -> Editing on the first change,
// Editing -> Saving -> Idle around a commit.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSaving
)

var (
	// ErrUnknownRowKey is returned when a value is set for a key that is
	// not part of the current row collection.
	ErrUnknownRowKey = errors.New("editbuffer: unknown row key")

	// ErrCommitInFlight is returned when a commit is issued while one is
	// already outstanding for the same document.
	ErrCommitInFlight = errors.New("editbuffer: commit already in flight")
)

// Committer applies a changeset to the authoritative stored document and
// returns the new authoritative state in full.
type Committer interface {
	Commit(ctx context.Context, importID string, changes []entity.LedgerNameChange) (*entity.ProcessedDocument, error)
}

// Buffer tracks per-row ledger-name edits against a last-saved snapshot
// and produces minimal changesets. It is single-threaded by contract:
// the caller serializes all operations.
type Buffer struct {
	importID  string
	committer Committer

	inputs     map[string]string
	saved      map[string]string
	indexByKey map[string]int
	rowIDByKey map[string]string
	order      []string

	dirty map[string]struct{}
	state State
}

// New creates a buffer bound to one document and committer. Initialize
// must be called before any edit.
func New(importID string, committer Committer) *Buffer {
	return &Buffer{
		importID:  importID,
		committer: committer,
	}
}

// Initialize (re)seeds the buffer from the current row collection. It
// must be called whenever the identity of the collection changes: a new
// document loaded, or the set replaced after a save round-trip. Stale
// keys after a replacement are a correctness bug, not a cosmetic one.
func (b *Buffer) Initialize(rows []entity.CanonicalLedgerRow) {
	b.inputs = make(map[string]string, len(rows))
	b.saved = make(map[string]string, len(rows))
	b.indexByKey = make(map[string]int, len(rows))
	b.rowIDByKey = make(map[string]string, len(rows))
	b.order = make([]string, 0, len(rows))
	b.dirty = make(map[string]struct{})
	b.state = StateIdle

	for i := range rows {
		key := RowKey(&rows[i], i)
		b.inputs[key] = rows[i].LedgerName
		b.saved[key] = rows[i].LedgerName
		b.indexByKey[key] = i
		b.rowIDByKey[key] = rows[i].ID
		b.order = append(b.order, key)
	}
}

// State returns the buffer's current lifecycle state.
func (b *Buffer) State() State {
	return b.state
}

// Value returns the current input for a key.
func (b *Buffer) Value(key string) (string, bool) {
	v, ok := b.inputs[key]
	return v, ok
}

// SetValue records an edit for one row. Edits to the same row overwrite
// in place; a key becomes dirty only while its input differs from the
// saved snapshot, so an edit-then-revert leaves the changeset empty.
func (b *Buffer) SetValue(key, value string) error {
	if _, ok := b.inputs[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRowKey, key)
	}

	b.inputs[key] = value
	if normalize(value) == normalize(b.saved[key]) {
		delete(b.dirty, key)
	} else {
		b.dirty[key] = struct{}{}
	}

	if b.state == StateIdle && len(b.dirty) > 0 {
		b.state = StateEditing
	}
	return nil
}

// DirtyCount reports how many rows currently differ from the snapshot.
func (b *Buffer) DirtyCount() int {
	return len(b.dirty)
}

// Changeset returns one entry per dirty row, in row order. Empty or
// whitespace-only input is carried as nil to distinguish "cleared" from
// "never set".
func (b *Buffer) Changeset() []entity.LedgerNameChange {
	keys := make([]string, 0, len(b.dirty))
	for key := range b.dirty {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return b.indexByKey[keys[i]] < b.indexByKey[keys[j]]
	})

	changes := make([]entity.LedgerNameChange, 0, len(keys))
	for _, key := range keys {
		rowID := b.rowIDByKey[key]
		if rowID == "" {
			// Fall back to the declared serial number as the identifier
			// for rows that were never persisted with one.
			rowID = strings.TrimPrefix(key, "seq:")
			if rowID == key && strings.HasPrefix(key, "idx:") {
				rowID = ""
			}
		}
		change := entity.LedgerNameChange{
			RowID:    rowID,
			RowIndex: b.indexByKey[key],
		}
		if trimmed := strings.TrimSpace(b.inputs[key]); trimmed != "" {
			change.LedgerName = &trimmed
		}
		changes = append(changes, change)
	}
	return changes
}

// Commit sends the current changeset to the committer. An empty
// changeset is a no-op success and never reaches the committer. On
// success the buffer re-seeds itself from the server's returned row
// collection; on failure every piece of local state is left untouched so
// the operator can retry.
func (b *Buffer) Commit(ctx context.Context) error {
	if b.state == StateSaving {
		return ErrCommitInFlight
	}

	changes := b.Changeset()
	if len(changes) == 0 {
		return nil
	}

	b.state = StateSaving
	doc, err := b.committer.Commit(ctx, b.importID, changes)
	if err != nil {
		b.state = StateEditing
		return err
	}

	b.Initialize(doc.Rows())
	return nil
}

// normalize folds absent and whitespace-only values to the empty string
// so an input persists as dirty only when its saved form would change.
func normalize(s string) string {
	return strings.TrimSpace(s)
}
