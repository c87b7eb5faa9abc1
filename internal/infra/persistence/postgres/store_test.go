package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"herdcore/internal/infra/persistence/postgres/testutil"
	"herdcore/pkg/domain"
)

func withStubDB(t *testing.T) *testutil.StubConn {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		if driverName != "pgx" {
			t.Fatalf("driver = %s, want pgx", driverName)
		}
		return db, nil
	})
	t.Cleanup(restore)
	return conn
}

func TestNewStoreEnsuresStateTable(t *testing.T) {
	conn := withStubDB(t)

	if _, err := NewStore("", nil); err != nil {
		t.Fatalf("open store: %v", err)
	}
	foundDDL := false
	for _, q := range conn.Execs {
		if strings.Contains(q, "CREATE TABLE IF NOT EXISTS state") {
			foundDDL = true
		}
	}
	if !foundDDL {
		t.Fatalf("expected state table DDL, got %v", conn.Execs)
	}
}

func TestStorePersistsSnapshotOnCommit(t *testing.T) {
	conn := withStubDB(t)

	store, err := NewStore("postgres://stub/herd", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateAnimal(domain.Animal{ID: "a1", TagNumber: "T-1", Category: domain.CategoryMilking, Status: domain.StatusOpen})
		return err
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows := conn.Tables["state"]
	if len(rows) != 1 {
		t.Fatalf("state rows = %d, want 1", len(rows))
	}
	if rows[0]["bucket"] != "animals" {
		t.Fatalf("bucket = %v", rows[0]["bucket"])
	}
	payload, ok := rows[0]["payload"].([]byte)
	if !ok {
		t.Fatalf("payload type = %T", rows[0]["payload"])
	}
	var animals map[string]domain.Animal
	if err := json.Unmarshal(payload, &animals); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if animals["a1"].TagNumber != "T-1" {
		t.Fatalf("persisted animals = %+v", animals)
	}
}

func TestStoreUpsertReplacesSnapshotRow(t *testing.T) {
	conn := withStubDB(t)

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	for _, id := range []string{"a1", "a2"} {
		if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
			_, err := tx.CreateAnimal(domain.Animal{ID: id, TagNumber: "T-" + id})
			return err
		}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if len(conn.Tables["state"]) != 1 {
		t.Fatalf("state rows = %d, want single upserted row", len(conn.Tables["state"]))
	}
}

func TestNewStoreHydratesFromExistingSnapshot(t *testing.T) {
	conn := withStubDB(t)
	payload, err := json.Marshal(map[string]domain.Animal{
		"a1": {ID: "a1", TagNumber: "T-1", Category: domain.CategoryMilking, Status: domain.StatusOpen},
	})
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	conn.Tables["state"] = []map[string]any{{"bucket": "animals", "payload": payload}}

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	got, ok := store.GetAnimal("a1")
	if !ok || got.TagNumber != "T-1" {
		t.Fatalf("hydrated animal = %+v ok=%v", got, ok)
	}
}

func TestNewStoreFailsWhenUnreachable(t *testing.T) {
	conn := withStubDB(t)
	conn.FailPing = true
	if _, err := NewStore("", nil); err == nil {
		t.Fatal("expected ping failure")
	}
}

func TestPersistErrorSurfaces(t *testing.T) {
	conn := withStubDB(t)
	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	conn.FailBegin = true
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateAnimal(domain.Animal{ID: "a1", TagNumber: "T-1"})
		return err
	})
	if err == nil {
		t.Fatal("expected persist failure")
	}
	if errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error kind: %v", err)
	}
}
