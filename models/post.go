package models

import (
	"errors"
	"fmt"
	"time"
)

// PostStatus is the stage of a post in the publishing workflow.
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusSubmitted PostStatus = "SUBMITTED"
	StatusApproved  PostStatus = "APPROVED"
	StatusPublished PostStatus = "PUBLISHED"
)

// ErrInvalidTransition is returned when a workflow method is called on a
// post whose current status does not satisfy the precondition.
var ErrInvalidTransition = errors.New("invalid post status transition")

// Post is a blog entry. AuthorID holds the author's external subject id.
type Post struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	Title     string     `gorm:"column:title" json:"title"`
	Slug      string     `gorm:"column:slug;uniqueIndex" json:"slug"`
	Content   string     `gorm:"column:content" json:"content"`
	AuthorID  string     `gorm:"column:author_id;index" json:"author_id"`
	Status    PostStatus `gorm:"column:status" json:"status"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Post) TableName() string { return "posts" }

// Submit moves a draft into review. Any other starting status is rejected.
func (p *Post) Submit() error {
	return p.transition(StatusDraft, StatusSubmitted)
}

// Approve accepts a submitted post.
func (p *Post) Approve() error {
	return p.transition(StatusSubmitted, StatusApproved)
}

// Publish makes an approved post live.
func (p *Post) Publish() error {
	return p.transition(StatusApproved, StatusPublished)
}

func (p *Post) transition(from, to PostStatus) error {
	if p.Status != from {
		return fmt.Errorf("%w: %s -> %s (current %s)", ErrInvalidTransition, from, to, p.Status)
	}
	p.Status = to
	return nil
}

// Comment is a reader comment on a post.
type Comment struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	PostID    string    `gorm:"column:post_id;index" json:"post_id"`
	AuthorID  string    `gorm:"column:author_id" json:"author_id"`
	Content   string    `gorm:"column:content" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
