package store

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/blogms/blogms/models"
)

func TestRoleCreateRequiresName(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)

	_, err := roles.Create(context.Background(), models.Role{Name: "   "})
	if !errors.Is(err, gorm.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestRoleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)
	ctx := context.Background()

	created, err := roles.Create(ctx, models.Role{Name: "Editor", Description: "reviews posts"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	byID, err := roles.GetByID(ctx, created.ID)
	if err != nil || byID == nil {
		t.Fatalf("get by id: %v", err)
	}
	byName, err := roles.GetByName(ctx, "Editor")
	if err != nil || byName == nil {
		t.Fatalf("get by name: %v", err)
	}
	if byID.ID != byName.ID || byID.Description != "reviews posts" {
		t.Fatalf("round-trip mismatch: %+v vs %+v", byID, byName)
	}
}

func TestAddUserToRoleIdempotent(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)
	ctx := context.Background()

	role, err := roles.Create(ctx, models.Role{Name: "Author"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := roles.AddUserToRole(ctx, "u1", role.ID); err != nil {
			t.Fatalf("add attempt %d: %v", i, err)
		}
	}
	ids, err := roles.UserIDsInRole(ctx, role.ID)
	if err != nil {
		t.Fatalf("user ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "u1" {
		t.Fatalf("expected exactly [u1], got %v", ids)
	}
}

func TestRoleDeleteRemovesAssociations(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)
	groups := NewGroupStore(db)
	ctx := context.Background()

	role, err := roles.Create(ctx, models.Role{Name: "Editor"})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	group, err := groups.Create(ctx, models.Group{Name: "editors", Path: "/editors"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if err := roles.AddUserToRole(ctx, "u1", role.ID); err != nil {
		t.Fatalf("add user role: %v", err)
	}
	if err := roles.AssignRoleToGroup(ctx, role.ID, group.ID); err != nil {
		t.Fatalf("assign group role: %v", err)
	}

	if err := roles.Delete(ctx, role.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if ids, _ := roles.UserIDsInRole(ctx, role.ID); len(ids) != 0 {
		t.Fatalf("user association survived delete: %v", ids)
	}
	granted, err := roles.ByGroupPath(ctx, "/editors")
	if err != nil || len(granted) != 0 {
		t.Fatalf("group association survived delete: %v (%v)", granted, err)
	}
}

func TestRolesByGroupPath(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleStore(db)
	groups := NewGroupStore(db)
	ctx := context.Background()

	editor, err := roles.Create(ctx, models.Role{Name: "Editor"})
	if err != nil {
		t.Fatalf("create role: %v", err)
	}
	group, err := groups.Create(ctx, models.Group{Name: "editors", Path: "/staff/editors"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	// Assigning twice leaves a single association.
	for i := 0; i < 2; i++ {
		if err := roles.AssignRoleToGroup(ctx, editor.ID, group.ID); err != nil {
			t.Fatalf("assign attempt %d: %v", i, err)
		}
	}

	granted, err := roles.ByGroupPath(ctx, "/staff/editors")
	if err != nil {
		t.Fatalf("by group path: %v", err)
	}
	if len(granted) != 1 || granted[0].Name != "Editor" {
		t.Fatalf("expected [Editor], got %+v", granted)
	}
	none, err := roles.ByGroupPath(ctx, "/staff")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no grants for /staff, got %+v (%v)", none, err)
	}
}
