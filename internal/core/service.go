package core

import (
	"context"
	"fmt"
	"time"

	"herdcore/internal/blob"
	"herdcore/internal/infra/persistence/memory"
	"herdcore/pkg/domain"

	"github.com/google/uuid"
)

// Service exposes the transactional herd lifecycle operations. Every write is
// one atomic transaction evaluated against the rules engine; every operation
// is logged, timed, and audited.
type Service struct {
	store   PersistentStore
	engine  *RulesEngine
	nowFn   func() time.Time
	logger  Logger
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
	photos  blob.Store
	newID   func() string
}

// Option customizes service construction.
type Option func(*Service)

// WithClock injects the time source used for ledger timestamps.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.nowFn = func() time.Time { return clock.Now().UTC() }
		}
	}
}

// WithLogger injects the structured logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuditRecorder injects the audit sink.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) { s.audit = recorder }
}

// WithMetricsRecorder injects the metrics sink.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// WithTracer injects the tracer wrapping every operation.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithPhotoStore injects the blob store backing photo attachments.
func WithPhotoStore(store blob.Store) Option {
	return func(s *Service) { s.photos = store }
}

// WithIDGenerator overrides event/entity ID generation for deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		engine: extractRulesEngine(store),
		logger: noopLogger{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.nowFn == nil {
		s.nowFn = selectNowFunc(store, nil)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store with the
// given rules engine. A nil engine installs the default herd rules.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.nowFn()
}

// ErrNotFound is returned when an operation targets a missing animal.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// auditOperations maps operation names to their audit metadata. Operations
// outside this table are not audited.
var auditOperations = map[string]struct {
	Entity EntityType
	Action Action
}{
	"register_animal":        {domain.EntityAnimal, domain.ActionCreate},
	"update_animal":          {domain.EntityAnimal, domain.ActionUpdate},
	"record_insemination":    {domain.EntityAnimal, domain.ActionUpdate},
	"record_pregnancy_check": {domain.EntityAnimal, domain.ActionUpdate},
	"mark_dry":               {domain.EntityAnimal, domain.ActionUpdate},
	"record_calving":         {domain.EntityAnimal, domain.ActionUpdate},
	"mark_sold":              {domain.EntityAnimal, domain.ActionUpdate},
	"shift_farm":             {domain.EntityAnimal, domain.ActionUpdate},
	"record_medication":      {domain.EntityAnimal, domain.ActionUpdate},
	"attach_photo":           {domain.EntityAnimal, domain.ActionUpdate},
	"delete_animal":          {domain.EntityAnimal, domain.ActionDelete},
}

func (s *Service) recordAudit(ctx context.Context, operation, entityID string, status AuditStatus, errMsg string, duration time.Duration) {
	if s.audit == nil {
		return
	}
	meta, ok := auditOperations[operation]
	if !ok {
		return
	}
	s.audit.Record(ctx, AuditEntry{
		Operation: operation,
		Entity:    meta.Entity,
		Action:    meta.Action,
		EntityID:  entityID,
		Status:    status,
		Error:     errMsg,
		Duration:  duration,
		Timestamp: s.nowFn(),
	})
}

func (s *Service) recordAuditSuccess(ctx context.Context, operation, entityID string, duration time.Duration) {
	s.recordAudit(ctx, operation, entityID, AuditStatusSuccess, "", duration)
}

func (s *Service) recordAuditError(ctx context.Context, operation, entityID string, err error, duration time.Duration) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.recordAudit(ctx, operation, entityID, AuditStatusError, msg, duration)
}

// runWrite wraps one transactional operation with tracing, metrics, audit,
// and logging. entityID is resolved after fn so create operations can report
// the generated ID.
func (s *Service) runWrite(ctx context.Context, operation string, entityID func() string, fn func(Transaction) error) (Result, error) {
	start := time.Now()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	res, err := s.store.RunInTransaction(ctx, fn)
	duration := time.Since(start)
	if span != nil {
		span.End(err)
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, err == nil, duration)
	}
	id := ""
	if entityID != nil {
		id = entityID()
	}
	if err != nil {
		s.recordAuditError(ctx, operation, id, err, duration)
		s.logger.Error("operation failed", "operation", operation, "animal_id", id, "error", err)
		return res, err
	}
	s.recordAuditSuccess(ctx, operation, id, duration)
	s.logger.Debug("operation complete", "operation", operation, "animal_id", id, "duration_ms", float64(duration)/float64(time.Millisecond))
	return res, nil
}

// GetAnimal returns an animal by ID.
func (s *Service) GetAnimal(id string) (Animal, bool) {
	return s.store.GetAnimal(id)
}

// FindAnimalByTag returns the animal carrying the given tag number.
func (s *Service) FindAnimalByTag(ctx context.Context, tag string) (Animal, bool, error) {
	var found Animal
	var ok bool
	err := s.store.View(ctx, func(view TransactionView) error {
		found, ok = view.FindAnimalByTag(tag)
		return nil
	})
	if err != nil {
		return Animal{}, false, err
	}
	return found, ok, nil
}

// ListAnimals returns the full herd.
func (s *Service) ListAnimals() []Animal {
	return s.store.ListAnimals()
}

// ListActiveAnimals returns the herd minus sold animals.
func (s *Service) ListActiveAnimals() []Animal {
	all := s.store.ListAnimals()
	out := make([]Animal, 0, len(all))
	for _, a := range all {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out
}
