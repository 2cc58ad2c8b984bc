package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

// Runs only against a disposable database given in TEST_DATABASE_URL.
func TestPostgresAssessorRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	r := NewPostgresAssessorDB(db)
	if err := r.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	login := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() { db.Exec("DELETE FROM assessors WHERE login=$1", login) })

	id, err := r.CreateAssessor(ctx, login, login+"@example.com", "hash")
	if err != nil {
		t.Fatal(err)
	}
	gotID, hash, err := r.GetByLogin(ctx, login)
	if err != nil {
		t.Fatal(err)
	}
	if gotID != id || hash != "hash" {
		t.Errorf("got (%d, %q), want (%d, hash)", gotID, hash, id)
	}
	if _, err := r.CreateAssessor(ctx, login, "dup@example.com", "x"); err == nil {
		t.Error("duplicate login should fail")
	}
	if _, _, err := r.GetByLogin(ctx, login+"-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
