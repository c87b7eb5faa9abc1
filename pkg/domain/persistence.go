package domain

import "context"

// Transaction exposes the herd mutations a persistence implementation must
// support within an atomic scope.
type Transaction interface {
	Snapshot() TransactionView
	CreateAnimal(Animal) (Animal, error)
	UpdateAnimal(id string, mutator func(*Animal) error) (Animal, error)
	DeleteAnimal(id string) error
	FindAnimal(id string) (Animal, bool)
	FindAnimalByTag(tag string) (Animal, bool)
}

// TransactionView provides read-only access to snapshot data for rules.
type TransactionView interface {
	ListAnimals() []Animal
	FindAnimal(id string) (Animal, bool)
	FindAnimalByTag(tag string) (Animal, bool)
}

// PersistentStore is a minimal abstraction over durable backends. It mirrors
// the subset of store capabilities used directly by higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetAnimal(id string) (Animal, bool)
	ListAnimals() []Animal
}
