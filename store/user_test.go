package store

import (
	"context"
	"testing"

	"github.com/blogms/blogms/models"
)

func TestUserUpsertCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	first, err := users.Upsert(ctx, models.User{
		UserID:   "sub-1",
		Username: "alice",
		Email:    "alice@example.com",
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.ID == "" || first.LastLoginAt == nil {
		t.Fatalf("expected generated id and login stamp, got %+v", first)
	}

	second, err := users.Upsert(ctx, models.User{
		UserID:   "sub-1",
		Username: "alice",
		Email:    "alice@corp.example.com",
		Enabled:  true,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second record: %s vs %s", second.ID, first.ID)
	}
	if second.Email != "alice@corp.example.com" {
		t.Fatalf("profile not refreshed: %+v", second)
	}
	if second.UpdatedAt == nil {
		t.Fatal("expected UpdatedAt on refresh")
	}

	all, err := users.List(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected exactly one user, got %d (%v)", len(all), err)
	}
}

func TestUserDeleteReportsExistence(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	if _, err := users.Create(ctx, models.User{UserID: "sub-1", Username: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	ok, err := users.Delete(ctx, "sub-1")
	if err != nil || !ok {
		t.Fatalf("expected delete to report true, got %v (%v)", ok, err)
	}
	ok, err = users.Delete(ctx, "sub-1")
	if err != nil || ok {
		t.Fatalf("expected second delete to report false, got %v (%v)", ok, err)
	}
}

func TestUserGetMissingIsNil(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	user, err := users.GetByUserID(ctx, "nope")
	if err != nil || user != nil {
		t.Fatalf("expected (nil, nil), got %+v (%v)", user, err)
	}
	user, err = users.GetByUsername(ctx, "nope")
	if err != nil || user != nil {
		t.Fatalf("expected (nil, nil), got %+v (%v)", user, err)
	}
}
