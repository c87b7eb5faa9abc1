package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"herdcore/pkg/domain"
)

// testClock is a settable clock so tests can roll the calendar forward
// between operations.
type testClock struct {
	t time.Time
}

func newTestClock(date string) *testClock {
	t, ok := domain.ParseDate(date)
	if !ok {
		panic("bad test date " + date)
	}
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Set(date string) {
	t, ok := domain.ParseDate(date)
	if !ok {
		panic("bad test date " + date)
	}
	c.t = t
}

// seqIDs returns a deterministic ID generator: prefix-1, prefix-2, ...
func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestService(t *testing.T, date string) (*Service, *testClock) {
	t.Helper()
	clock := newTestClock(date)
	svc := NewInMemoryService(nil, WithClock(clock), WithIDGenerator(seqIDs("id")))
	return svc, clock
}

func mustRegister(t *testing.T, svc *Service, a Animal) Animal {
	t.Helper()
	created, _, err := svc.RegisterAnimal(context.Background(), a, "tester")
	if err != nil {
		t.Fatalf("register %s: %v", a.TagNumber, err)
	}
	return created
}
