// Package domain defines the herd-management entities, enumerations, and
// rule evaluation primitives used by herdcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityAnimal identifies an individual animal record.
	EntityAnimal EntityType = "animal"
)

// Category classifies an animal and determines which reproductive statuses
// apply to it. Male Calf and Cattle are the male-coded categories.
type Category string

// Herd categories recognised by the lifecycle state machine.
const (
	CategoryMilking    Category = "Milking"
	CategoryCattle     Category = "Cattle"
	CategoryHeifer     Category = "Heifer"
	CategoryMaleCalf   Category = "Male Calf"
	CategoryFemaleCalf Category = "Female Calf"
)

// Status represents an animal's position in the reproductive lifecycle.
type Status string

// Reproductive statuses. The first six form the female set, the last three
// the male/terminal set. Sold is terminal and legal for either gender class.
const (
	StatusOpen         Status = "Open"
	StatusInseminated  Status = "Inseminated"
	StatusPregnant     Status = "Pregnant"
	StatusDry          Status = "Dry"
	StatusNewlyCalved  Status = "Newly Calved"
	StatusChild        Status = "Child"
	StatusBreedingBull Status = "Breeding Bull"
	StatusOther        Status = "Other"
	StatusSold         Status = "Sold"
)

// Farm is the physical/operational grouping of an animal, independently
// mutable from its reproductive status.
type Farm string

// Farm locations.
const (
	FarmMilking Farm = "Milking Farm"
	FarmCattle  Farm = "Cattle Farm"
)

// OtherFarm returns the opposite farm location for a farm-shift action.
func OtherFarm(f Farm) Farm {
	if f == FarmMilking {
		return FarmCattle
	}
	return FarmMilking
}

// EventType classifies a ledger entry. Wire values match the legacy record
// format so historical exports remain parseable.
type EventType string

// Ledger event types.
const (
	EventInsemination   EventType = "INSEMINATION"
	EventPregnancyCheck EventType = "PREGNANCY_CHECK"
	EventCalving        EventType = "CALVING"
	EventMedication     EventType = "MEDICATION"
	EventGeneral        EventType = "GENERAL"
	EventFarmShift      EventType = "FARM_SHIFT"
)

// Pregnancy check results recorded on PREGNANCY_CHECK events.
const (
	CheckResultPositive = "Positive"
	CheckResultNegative = "Negative"
)

// HistoryEvent is one immutable fact in an animal's ledger. Events are never
// edited or removed after they are appended.
type HistoryEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Date        string    `json:"date"`
	Details     string    `json:"details"`
	Remarks     *string   `json:"remarks,omitempty"`
	Medications *string   `json:"medications,omitempty"`
	Semen       *string   `json:"semen,omitempty"`
	Result      *string   `json:"result,omitempty"`
	CalfID      *string   `json:"calf_id,omitempty"`
	RecordedBy  *string   `json:"recorded_by,omitempty"`
}

// Animal is the central herd record. The four breeding date fields are
// pointers so that absence serialises as an explicit JSON null; typed storage
// backends reject empty strings in date columns.
type Animal struct {
	ID                  string         `json:"id"`
	TagNumber           string         `json:"tag_number"`
	Category            Category       `json:"category"`
	Status              Status         `json:"status"`
	Farm                Farm           `json:"farm"`
	InseminationDate    *string        `json:"insemination_date"`
	SemenName           *string        `json:"semen_name"`
	ExpectedCalvingDate *string        `json:"expected_calving_date"`
	CalvingDate         *string        `json:"calving_date"`
	MotherID            *string        `json:"mother_id"`
	CalvesIDs           []string       `json:"calves_ids"`
	Remarks             string         `json:"remarks,omitempty"`
	Medications         string         `json:"medications,omitempty"`
	Image               *string        `json:"image,omitempty"`
	Images              []string       `json:"images,omitempty"`
	LastUpdated         time.Time      `json:"last_updated"`
	History             []HistoryEvent `json:"history"`
}

// IsMaleCategory reports whether the category belongs to the male gender class.
func IsMaleCategory(c Category) bool {
	return c == CategoryMaleCalf || c == CategoryCattle
}

// FemaleStatuses lists the statuses legal for female-coded categories,
// terminal Sold included.
func FemaleStatuses() []Status {
	return []Status{StatusOpen, StatusInseminated, StatusPregnant, StatusDry, StatusNewlyCalved, StatusChild, StatusSold}
}

// MaleStatuses lists the statuses legal for male-coded categories.
func MaleStatuses() []Status {
	return []Status{StatusBreedingBull, StatusOther, StatusSold}
}

// LegalStatuses returns the set of statuses an animal of the given category
// may hold. The lifecycle state machine is the sole authority for this split.
func LegalStatuses(c Category) map[Status]struct{} {
	var list []Status
	if IsMaleCategory(c) {
		list = MaleStatuses()
	} else {
		list = FemaleStatuses()
	}
	set := make(map[Status]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}

// CoerceStatus corrects a status that is illegal for the category's gender
// class: male categories force Other, female categories force Open. A legal
// status passes through unchanged.
func CoerceStatus(c Category, s Status) Status {
	if _, ok := LegalStatuses(c)[s]; ok {
		return s
	}
	if IsMaleCategory(c) {
		return StatusOther
	}
	return StatusOpen
}

// IsActive reports whether the animal counts toward the active herd. Sold
// animals are excluded from all counts and due lists.
func (a Animal) IsActive() bool {
	return a.Status != StatusSold
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
