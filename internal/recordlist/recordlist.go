// Package recordlist owns the authoritative record list and the transient
// edit snapshot. Every transition returns the resulting State; callers
// re-render from it.
package recordlist

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Makepad-fr/records/internal/logging"
	"github.com/Makepad-fr/records/internal/model"
)

// Persister is the boundary the list crosses to survive a reload.
type Persister interface {
	Load(ctx context.Context) []model.Record
	Save(ctx context.Context, records []model.Record) error
}

// Mode is the session-level view state.
type Mode int

const (
	Normal Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "normal"
}

// State is a copy of what the presentation layer renders.
type State struct {
	Mode     Mode
	Records  []model.Record     // authoritative list
	Snapshot []model.EditRecord // only set in Editing mode
}

// Rows returns the rows to display: the snapshot while editing, otherwise
// the authoritative list with no row in edit state.
func (s State) Rows() []model.EditRecord {
	if s.Mode == Editing {
		return s.Snapshot
	}
	out := make([]model.EditRecord, len(s.Records))
	for i, r := range s.Records {
		out[i] = model.EditRecord{Record: r}
	}
	return out
}

// EditingID returns the id of the record being edited, or "".
func (s State) EditingID() string {
	for _, r := range s.Snapshot {
		if r.IsEditing {
			return r.ID
		}
	}
	return ""
}

type Option func(*List)

// WithIDFunc replaces the UUID generator.
func WithIDFunc(fn func() string) Option {
	return func(l *List) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(l *List) {
		if log != nil {
			l.log = log
		}
	}
}

// List is the record-list state model. It is not safe for concurrent use.
type List struct {
	store    Persister
	records  []model.Record
	snapshot []model.EditRecord
	mode     Mode

	newID func() string
	log   *zap.Logger
}

// New loads the authoritative list from store.
func New(ctx context.Context, store Persister, opts ...Option) *List {
	l := &List{
		store: store,
		newID: uuid.NewString,
		log:   logging.Named("recordlist"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	l.records = store.Load(ctx)
	if l.records == nil {
		l.records = []model.Record{}
	}
	return l
}

// Records returns a copy of the authoritative list.
func (l *List) Records() []model.Record { return model.Clone(l.records) }

// Snapshot returns a copy of the edit snapshot (nil outside Editing).
func (l *List) Snapshot() []model.EditRecord {
	if l.snapshot == nil {
		return nil
	}
	out := make([]model.EditRecord, len(l.snapshot))
	copy(out, l.snapshot)
	return out
}

func (l *List) State() State {
	return State{Mode: l.mode, Records: l.Records(), Snapshot: l.Snapshot()}
}

// Stats counts completed and pending records.
func (l *List) Stats() (done, pending int) {
	for _, r := range l.records {
		if r.IsComplete {
			done++
		} else {
			pending++
		}
	}
	return
}

// commit replaces the authoritative list and persists it. The in-memory
// list stays authoritative even if the write fails.
func (l *List) commit(ctx context.Context, next []model.Record, op string) (State, error) {
	l.records = next
	if err := l.store.Save(ctx, model.Clone(next)); err != nil {
		l.log.Error("persist failed", zap.String("op", op), zap.Error(err))
		return l.State(), err
	}
	l.log.Debug(op, zap.Int("count", len(next)))
	return l.State(), nil
}

// Add appends a new incomplete record. Empty text is ignored, as is any add
// while editing because the add form is hidden then.
func (l *List) Add(ctx context.Context, text string) (State, error) {
	if text == "" || l.mode == Editing {
		return l.State(), nil
	}
	next := append(model.Clone(l.records), model.Record{ID: l.newID(), Text: text})
	return l.commit(ctx, next, "add")
}

// Delete removes the record with id. Completed records are protected, and
// the record currently being edited cannot be deleted.
func (l *List) Delete(ctx context.Context, id string) (State, error) {
	i := model.IndexOf(l.records, id)
	if i < 0 || l.records[i].IsComplete {
		return l.State(), nil
	}
	if l.mode == Editing {
		if l.State().EditingID() == id {
			return l.State(), nil
		}
		l.snapshot = removeEdit(l.snapshot, id)
	}
	next := make([]model.Record, 0, len(l.records)-1)
	next = append(next, l.records[:i]...)
	next = append(next, l.records[i+1:]...)
	return l.commit(ctx, next, "delete")
}

func removeEdit(rows []model.EditRecord, id string) []model.EditRecord {
	out := make([]model.EditRecord, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// BeginEdit enters Editing mode for id with a snapshot of the full list.
// Completed and unknown records are ignored; so is a second BeginEdit.
func (l *List) BeginEdit(id string) State {
	if l.mode == Editing {
		return l.State()
	}
	i := model.IndexOf(l.records, id)
	if i < 0 || l.records[i].IsComplete {
		return l.State()
	}
	snap := make([]model.EditRecord, len(l.records))
	for j, r := range l.records {
		snap[j] = model.EditRecord{Record: r, IsEditing: r.ID == id}
	}
	l.snapshot = snap
	l.mode = Editing
	l.log.Debug("begin edit", zap.String("id", id))
	return l.State()
}

// UpdateEditText replaces the snapshot text of id. Nothing is persisted.
func (l *List) UpdateEditText(id, text string) State {
	if l.mode != Editing {
		return l.State()
	}
	for i := range l.snapshot {
		if l.snapshot[i].ID == id {
			l.snapshot[i].Text = text
			break
		}
	}
	return l.State()
}

// SaveEdit commits the snapshot text of id into the authoritative list,
// persists and leaves Editing mode. An empty edited text is dropped: the
// record keeps its previous text.
func (l *List) SaveEdit(ctx context.Context, id string) (State, error) {
	if l.mode != Editing {
		return l.State(), nil
	}
	var text string
	found := false
	for _, r := range l.snapshot {
		if r.ID == id {
			text, found = r.Text, true
			break
		}
	}
	l.exitEdit()

	i := model.IndexOf(l.records, id)
	if !found || i < 0 || text == "" {
		return l.State(), nil
	}
	next := model.Clone(l.records)
	next[i].Text = text
	return l.commit(ctx, next, "save edit")
}

// SaveEditText is UpdateEditText followed by SaveEdit.
func (l *List) SaveEditText(ctx context.Context, id, text string) (State, error) {
	l.UpdateEditText(id, text)
	return l.SaveEdit(ctx, id)
}

// CancelEdit discards the snapshot without persisting.
func (l *List) CancelEdit() State {
	if l.mode == Editing {
		l.log.Debug("cancel edit")
	}
	l.exitEdit()
	return l.State()
}

func (l *List) exitEdit() {
	l.snapshot = nil
	l.mode = Normal
}

// ToggleComplete flips the completion flag of id and persists. While editing,
// the snapshot row is flipped too; the record under edit stays as it is so a
// save never lands on a completed record.
func (l *List) ToggleComplete(ctx context.Context, id string) (State, error) {
	i := model.IndexOf(l.records, id)
	if i < 0 {
		return l.State(), nil
	}
	if l.mode == Editing && l.State().EditingID() == id {
		return l.State(), nil
	}
	next := model.Clone(l.records)
	next[i].IsComplete = !next[i].IsComplete
	for j := range l.snapshot {
		if l.snapshot[j].ID == id {
			l.snapshot[j].IsComplete = next[i].IsComplete
		}
	}
	return l.commit(ctx, next, "toggle")
}
