package store

import (
	"context"
	"errors"
	"time"

	"github.com/blogms/blogms/models"
	"gorm.io/gorm"
)

// PostStore provides operations for blog posts.
type PostStore struct {
	DB *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore { return &PostStore{DB: db} }

// Create inserts a new post in Draft status.
func (s *PostStore) Create(ctx context.Context, post models.Post) (models.Post, error) {
	if post.ID == "" {
		post.ID = models.NewID()
	}
	if post.Status == "" {
		post.Status = models.StatusDraft
	}
	post.CreatedAt = time.Now().UTC()
	if err := s.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// GetByID returns (nil, nil) when the post does not exist.
func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug returns (nil, nil) when no post carries the slug.
func (s *PostStore) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns all posts, newest first.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	return posts, s.DB.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
}

// Update saves the post and stamps UpdatedAt.
func (s *PostStore) Update(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.UpdatedAt = &now
	return s.DB.WithContext(ctx).Save(post).Error
}

// Delete removes a post and its comments.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

// CommentStore provides operations for post comments.
type CommentStore struct {
	DB *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore { return &CommentStore{DB: db} }

// Add inserts a comment on a post.
func (s *CommentStore) Add(ctx context.Context, comment models.Comment) (models.Comment, error) {
	if comment.ID == "" {
		comment.ID = models.NewID()
	}
	comment.CreatedAt = time.Now().UTC()
	if err := s.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// ListByPost returns a post's comments oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	return comments, s.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").Find(&comments).Error
}

// Delete removes a single comment.
func (s *CommentStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{}).Error
}
