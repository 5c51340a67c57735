package store

import (
	"context"
	"testing"

	"github.com/blogms/blogms/models"
)

func TestPostCreateDefaultsToDraft(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostStore(db)
	ctx := context.Background()

	post, err := posts.Create(ctx, models.Post{Title: "Hello", Slug: "hello", AuthorID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Status != models.StatusDraft {
		t.Fatalf("expected DRAFT, got %s", post.Status)
	}
	got, err := posts.GetBySlug(ctx, "hello")
	if err != nil || got == nil || got.ID != post.ID {
		t.Fatalf("get by slug: %+v (%v)", got, err)
	}
}

func TestPostDeleteRemovesComments(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)
	ctx := context.Background()

	post, err := posts.Create(ctx, models.Post{Title: "Hello", Slug: "hello", AuthorID: "u1"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := comments.Add(ctx, models.Comment{PostID: post.ID, AuthorID: "u2", Content: "nice"}); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if err := posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	left, err := comments.ListByPost(ctx, post.ID)
	if err != nil || len(left) != 0 {
		t.Fatalf("expected comments gone, got %d (%v)", len(left), err)
	}
}
