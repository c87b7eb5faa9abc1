// Package core implements the herd lifecycle service: the reproductive state
// machine, history ledger, due-list scheduler, lineage resolver, and the
// rules enforced at transaction commit.
package core

import "herdcore/pkg/domain"

// Aliases keep service signatures concise while exposing domain types from
// this package.
type (
	// Animal is an alias of domain.Animal.
	Animal = domain.Animal
	// HistoryEvent is an alias of domain.HistoryEvent.
	HistoryEvent = domain.HistoryEvent
	// Category is an alias of domain.Category.
	Category = domain.Category
	// Status is an alias of domain.Status.
	Status = domain.Status
	// Farm is an alias of domain.Farm.
	Farm = domain.Farm
	// EventType is an alias of domain.EventType.
	EventType = domain.EventType
	// EntityType is an alias of domain.EntityType.
	EntityType = domain.EntityType
	// Action is an alias of domain.Action.
	Action = domain.Action
	// Change is an alias of domain.Change.
	Change = domain.Change
	// Result is an alias of domain.Result.
	Result = domain.Result
	// Violation is an alias of domain.Violation.
	Violation = domain.Violation
	// Rule is an alias of domain.Rule.
	Rule = domain.Rule
	// RulesEngine is an alias of domain.RulesEngine.
	RulesEngine = domain.RulesEngine
	// Transaction is an alias of domain.Transaction.
	Transaction = domain.Transaction
	// TransactionView is an alias of domain.TransactionView.
	TransactionView = domain.TransactionView
	// PersistentStore is an alias of domain.PersistentStore.
	PersistentStore = domain.PersistentStore
)

// NewRulesEngine constructs an empty rules engine.
func NewRulesEngine() *RulesEngine { return domain.NewRulesEngine() }

// NewDefaultRulesEngine constructs an engine with the standard herd rules
// registered: tag uniqueness, status/category legality, lineage integrity.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(TagUniquenessRule())
	engine.Register(StatusCategoryRule())
	engine.Register(LineageIntegrityRule())
	return engine
}
