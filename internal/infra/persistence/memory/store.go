// Package memory provides an in-memory implementation of the core persistence
// store used for tests and ephemeral environments.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"herdcore/pkg/domain"

	"github.com/google/uuid"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain
// persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Animal aliases domain.Animal for in-memory persistence operations.
	Animal = domain.Animal
	// HistoryEvent aliases domain.HistoryEvent.
	HistoryEvent = domain.HistoryEvent
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
	// PersistentStore aliases domain.PersistentStore abstraction.
	PersistentStore = domain.PersistentStore
)

type memoryState struct {
	animals map[string]Animal
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Animals map[string]Animal `json:"animals"`
}

func newMemoryState() memoryState {
	return memoryState{animals: make(map[string]Animal)}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{Animals: make(map[string]Animal, len(state.animals))}
	for k, v := range state.animals {
		s.Animals[k] = cloneAnimal(v)
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for k, v := range s.Animals {
		state.animals[k] = cloneAnimal(v)
	}
	return state
}

// migrateSnapshot repairs snapshots written by older builds: missing maps,
// blank IDs keyed by map position, and dangling lineage references.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	if snapshot.Animals == nil {
		snapshot.Animals = map[string]Animal{}
	}
	animalExists := func(id string) bool {
		_, ok := snapshot.Animals[id]
		return ok
	}
	for id, animal := range snapshot.Animals {
		if animal.ID == "" {
			animal.ID = id
		}
		if animal.MotherID != nil && !animalExists(*animal.MotherID) {
			animal.MotherID = nil
		}
		if filtered, changed := filterIDs(animal.CalvesIDs, animalExists); changed {
			animal.CalvesIDs = filtered
		}
		snapshot.Animals[id] = animal
	}
	return snapshot
}

func (s memoryState) clone() memoryState {
	cloned := newMemoryState()
	for k, v := range s.animals {
		cloned.animals[k] = cloneAnimal(v)
	}
	return cloned
}

func cloneAnimal(a Animal) Animal {
	cp := a
	cp.InseminationDate = clonePtr(a.InseminationDate)
	cp.SemenName = clonePtr(a.SemenName)
	cp.ExpectedCalvingDate = clonePtr(a.ExpectedCalvingDate)
	cp.CalvingDate = clonePtr(a.CalvingDate)
	cp.MotherID = clonePtr(a.MotherID)
	cp.Image = clonePtr(a.Image)
	if len(a.CalvesIDs) != 0 {
		cp.CalvesIDs = append([]string(nil), a.CalvesIDs...)
	}
	if len(a.Images) != 0 {
		cp.Images = append([]string(nil), a.Images...)
	}
	if len(a.History) != 0 {
		cp.History = make([]HistoryEvent, len(a.History))
		for i, ev := range a.History {
			cp.History[i] = cloneEvent(ev)
		}
	}
	return cp
}

func cloneEvent(ev HistoryEvent) HistoryEvent {
	cp := ev
	cp.Remarks = clonePtr(ev.Remarks)
	cp.Medications = clonePtr(ev.Medications)
	cp.Semen = clonePtr(ev.Semen)
	cp.Result = clonePtr(ev.Result)
	cp.CalfID = clonePtr(ev.CalfID)
	cp.RecordedBy = clonePtr(ev.RecordedBy)
	return cp
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func filterIDs(values []string, keep func(string) bool) ([]string, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	changed := false
	for _, v := range values {
		if _, ok := seen[v]; ok {
			changed = true
			continue
		}
		seen[v] = struct{}{}
		if !keep(v) {
			changed = true
			continue
		}
		out = append(out, v)
	}
	if !changed && len(out) == len(values) {
		return values, false
	}
	return out, true
}

// Store provides an in-memory transactional store for the herd domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	return uuid.NewString()
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(migrateSnapshot(snapshot))
}

// RulesEngine exposes the currently configured engine for integration points.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// SetNowFunc overrides the time provider for deterministic tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.nowFn = fn
	}
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListAnimals returns all animals within the transaction snapshot.
func (v transactionView) ListAnimals() []Animal {
	out := make([]Animal, 0, len(v.state.animals))
	for _, a := range v.state.animals {
		out = append(out, cloneAnimal(a))
	}
	return out
}

// FindAnimal retrieves an animal by ID from the snapshot.
func (v transactionView) FindAnimal(id string) (Animal, bool) {
	a, ok := v.state.animals[id]
	if !ok {
		return Animal{}, false
	}
	return cloneAnimal(a), true
}

// FindAnimalByTag retrieves an animal by tag number from the snapshot. Tag
// comparison ignores surrounding whitespace.
func (v transactionView) FindAnimalByTag(tag string) (Animal, bool) {
	return findByTag(v.state, tag)
}

func findByTag(state *memoryState, tag string) (Animal, bool) {
	want := strings.TrimSpace(tag)
	for _, a := range state.animals {
		if strings.TrimSpace(a.TagNumber) == want {
			return cloneAnimal(a), true
		}
	}
	return Animal{}, false
}

// RunInTransaction executes fn within a transactional copy of the store state.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

// GetAnimal returns an animal by ID from committed state.
func (s *Store) GetAnimal(id string) (Animal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.animals[id]
	if !ok {
		return Animal{}, false
	}
	return cloneAnimal(a), true
}

// ListAnimals returns all animals from committed state.
func (s *Store) ListAnimals() []Animal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Animal, 0, len(s.state.animals))
	for _, a := range s.state.animals {
		out = append(out, cloneAnimal(a))
	}
	return out
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

// FindAnimal exposes animal lookup within the transaction scope.
func (tx *transaction) FindAnimal(id string) (Animal, bool) {
	a, ok := tx.state.animals[id]
	if !ok {
		return Animal{}, false
	}
	return cloneAnimal(a), true
}

// FindAnimalByTag exposes tag lookup within the transaction scope.
func (tx *transaction) FindAnimalByTag(tag string) (Animal, bool) {
	return findByTag(&tx.state, tag)
}

// CreateAnimal stores a new animal within the transaction. A caller-supplied
// LastUpdated wins over the store clock so services with an injected clock
// stamp creations consistently with their ledger entries.
func (tx *transaction) CreateAnimal(a Animal) (Animal, error) {
	if a.ID == "" {
		a.ID = tx.store.newID()
	}
	if _, exists := tx.state.animals[a.ID]; exists {
		return Animal{}, fmt.Errorf("animal %q already exists", a.ID)
	}
	if a.LastUpdated.IsZero() {
		a.LastUpdated = tx.now
	}
	tx.state.animals[a.ID] = cloneAnimal(a)
	tx.recordChange(Change{Entity: domain.EntityAnimal, Action: domain.ActionCreate, After: cloneAnimal(a)})
	return cloneAnimal(a), nil
}

// UpdateAnimal mutates an animal using the provided mutator function. The
// mutator owns LastUpdated; lifecycle operations that anchor durations on it
// set it explicitly.
func (tx *transaction) UpdateAnimal(id string, mutator func(*Animal) error) (Animal, error) {
	current, ok := tx.state.animals[id]
	if !ok {
		return Animal{}, fmt.Errorf("animal %q not found", id)
	}
	before := cloneAnimal(current)
	if err := mutator(&current); err != nil {
		return Animal{}, err
	}
	current.ID = id
	tx.state.animals[id] = cloneAnimal(current)
	tx.recordChange(Change{Entity: domain.EntityAnimal, Action: domain.ActionUpdate, Before: before, After: cloneAnimal(current)})
	return cloneAnimal(current), nil
}

// DeleteAnimal removes an animal from the transaction state and detaches any
// lineage references pointing at it.
func (tx *transaction) DeleteAnimal(id string) error {
	current, ok := tx.state.animals[id]
	if !ok {
		return fmt.Errorf("animal %q not found", id)
	}
	delete(tx.state.animals, id)
	for otherID, other := range tx.state.animals {
		changed := false
		if other.MotherID != nil && *other.MotherID == id {
			other.MotherID = nil
			changed = true
		}
		if filtered, ok := filterIDs(other.CalvesIDs, func(calfID string) bool { return calfID != id }); ok {
			other.CalvesIDs = filtered
			changed = true
		}
		if changed {
			tx.state.animals[otherID] = other
		}
	}
	tx.recordChange(Change{Entity: domain.EntityAnimal, Action: domain.ActionDelete, Before: cloneAnimal(current)})
	return nil
}
