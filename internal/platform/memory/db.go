package memory

import (
	"context"
	"sync"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/store"
)

// Snapshot is the full state of a DB. It is also the on-disk layout of the file backend.
type Snapshot struct {
	Employees     []*domain.Employee               `json:"employees"`
	Managers      []*domain.Manager                `json:"managers"`
	Tasks         []*domain.Task                   `json:"tasks"`
	Notifications []*domain.Notification           `json:"notifications"`
	History       map[string][]domain.HistoryEntry `json:"employeeTaskHistory"`
	Projects      []*domain.Project                `json:"projects"`
	Counters      map[string]int64                 `json:"counters"`
}

// PersistFunc receives the state after every mutation. A returned error is
// reported to the caller of the mutating operation.
type PersistFunc func(ctx context.Context, snap Snapshot) error

// Option configures a DB.
type Option func(*DB)

// WithPersist registers fn to be called, under the DB lock, after each mutation.
func WithPersist(fn PersistFunc) Option {
	return func(db *DB) {
		db.persist = fn
	}
}

// DB holds every collection of one in-memory record store.
type DB struct {
	mu sync.RWMutex

	employees     []*domain.Employee
	managers      []*domain.Manager
	tasks         []*domain.Task
	notifications []*domain.Notification
	history       map[string][]domain.HistoryEntry
	projects      []*domain.Project
	counters      map[string]int64

	persist   PersistFunc
	committed Snapshot
}

// New creates an empty DB.
func New(opts ...Option) *DB {
	return FromSnapshot(Snapshot{}, opts...)
}

// FromSnapshot creates a DB holding a copy of snap.
func FromSnapshot(snap Snapshot, opts ...Option) *DB {
	db := &DB{}
	for _, opt := range opts {
		opt(db)
	}
	db.restoreLocked(snap)
	if db.persist != nil {
		db.committed = db.snapshotLocked()
	}
	return db
}

// restoreLocked replaces every collection with a copy of snap. Counters
// outside the known set are ignored.
func (db *DB) restoreLocked(snap Snapshot) {
	db.employees = nil
	db.managers = nil
	db.tasks = nil
	db.notifications = nil
	db.projects = nil
	db.history = make(map[string][]domain.HistoryEntry, len(snap.History))
	db.counters = newCounters()

	for _, e := range snap.Employees {
		db.employees = append(db.employees, e.Clone())
	}
	for _, m := range snap.Managers {
		db.managers = append(db.managers, m.Clone())
	}
	for _, t := range snap.Tasks {
		db.tasks = append(db.tasks, t.Clone())
	}
	for _, n := range snap.Notifications {
		db.notifications = append(db.notifications, n.Clone())
	}
	for id, entries := range snap.History {
		db.history[id] = cloneEntries(entries)
	}
	for _, p := range snap.Projects {
		db.projects = append(db.projects, p.Clone())
	}
	for name, value := range snap.Counters {
		if _, ok := db.counters[name]; ok {
			db.counters[name] = value
		}
	}
}

func newCounters() map[string]int64 {
	return map[string]int64{
		store.TaskCounter:         0,
		store.NotificationCounter: 0,
		store.ProjectCounter:      0,
	}
}

// Snapshot returns a deep copy of the current state.
func (db *DB) Snapshot() Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.snapshotLocked()
}

func (db *DB) snapshotLocked() Snapshot {
	snap := Snapshot{
		Employees:     make([]*domain.Employee, 0, len(db.employees)),
		Managers:      make([]*domain.Manager, 0, len(db.managers)),
		Tasks:         make([]*domain.Task, 0, len(db.tasks)),
		Notifications: make([]*domain.Notification, 0, len(db.notifications)),
		History:       make(map[string][]domain.HistoryEntry, len(db.history)),
		Projects:      make([]*domain.Project, 0, len(db.projects)),
		Counters:      make(map[string]int64, len(db.counters)),
	}
	for _, e := range db.employees {
		snap.Employees = append(snap.Employees, e.Clone())
	}
	for _, m := range db.managers {
		snap.Managers = append(snap.Managers, m.Clone())
	}
	for _, t := range db.tasks {
		snap.Tasks = append(snap.Tasks, t.Clone())
	}
	for _, n := range db.notifications {
		snap.Notifications = append(snap.Notifications, n.Clone())
	}
	for id, entries := range db.history {
		snap.History[id] = cloneEntries(entries)
	}
	for _, p := range db.projects {
		snap.Projects = append(snap.Projects, p.Clone())
	}
	for name, value := range db.counters {
		snap.Counters[name] = value
	}
	return snap
}

// commitLocked runs the persist hook. When it fails, the mutation the caller
// just applied is rolled back to the last persisted state, counters included.
// Callers hold the write lock.
func (db *DB) commitLocked(ctx context.Context, entity, operation string) error {
	if db.persist == nil {
		return nil
	}
	snap := db.snapshotLocked()
	if err := db.persist(ctx, snap); err != nil {
		db.restoreLocked(db.committed)
		return store.NewStoreError(entity, operation, "failed to persist state", err)
	}
	db.committed = snap
	return nil
}

// nextLocked advances a counter. Callers hold the write lock.
func (db *DB) nextLocked(counter string) (int64, error) {
	value, ok := db.counters[counter]
	if !ok {
		return 0, store.ErrUnknownCounter
	}
	value++
	db.counters[counter] = value
	return value, nil
}

// NextID implements store.Sequencer.
func (db *DB) NextID(ctx context.Context, counter string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	id, err := db.nextLocked(counter)
	if err != nil {
		return 0, err
	}
	if err := db.commitLocked(ctx, "counter", "next"); err != nil {
		return 0, err
	}
	return id, nil
}

// Stores exposes the DB through the record store contract.
func (db *DB) Stores() store.Stores {
	return store.Stores{
		Employees:     &EmployeeStore{db: db},
		Managers:      &ManagerStore{db: db},
		Tasks:         &TaskStore{db: db},
		Notifications: &NotificationStore{db: db},
		History:       &HistoryStore{db: db},
		Projects:      &ProjectStore{db: db},
		Sequencer:     db,
	}
}

func cloneEntries(entries []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}
