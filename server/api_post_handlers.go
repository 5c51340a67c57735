package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blogms/blogms/identity"
	"github.com/blogms/blogms/models"
	"github.com/blogms/blogms/permission"
)

type postRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// HandleListPosts returns the posts visible to the caller: everything
// for elevated roles, approved and published only for everyone else.
func (s *Server) HandleListPosts(c *gin.Context) {
	p := GetPrincipal(c)
	posts, err := s.posts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	visible := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if permission.IsVisible(post, p) {
			visible = append(visible, post)
		}
	}
	c.JSON(http.StatusOK, gin.H{"posts": visible})
}

// HandleGetPost returns one post when the caller may see it.
func (s *Server) HandleGetPost(c *gin.Context) {
	post, err := s.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	if post == nil || !permission.IsVisible(*post, GetPrincipal(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// HandleCreatePost creates a draft authored by the caller.
func (s *Server) HandleCreatePost(c *gin.Context) {
	p := GetPrincipal(c)
	if !p.HasRole(permission.RoleAdmin) && !p.HasRole(permission.RoleAuthor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "error_description": "authoring requires the Author role"})
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "title is required"})
		return
	}
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Title)
	}
	post, err := s.posts.Create(c.Request.Context(), models.Post{
		Title:    req.Title,
		Slug:     slug,
		Content:  req.Content,
		AuthorID: p.Subject(),
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// HandleUpdatePost edits a post's content fields. Status never changes
// here; the workflow endpoints own transitions.
func (s *Server) HandleUpdatePost(c *gin.Context) {
	post, err := s.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "post not found"})
		return
	}
	if !permission.CanEdit(*post, GetPrincipal(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "error_description": "not allowed to edit this post"})
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "invalid JSON payload"})
		return
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if err := s.posts.Update(c.Request.Context(), post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// HandleDeletePost removes a post and its comments.
func (s *Server) HandleDeletePost(c *gin.Context) {
	post, err := s.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "post not found"})
		return
	}
	if !permission.CanEdit(*post, GetPrincipal(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "error_description": "not allowed to delete this post"})
		return
	}
	if err := s.posts.Delete(c.Request.Context(), post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// transitionPost factors the shared shape of the workflow endpoints: load,
// authorize against the current status, apply the transition, save.
func (s *Server) transitionPost(c *gin.Context,
	allowed func(models.Post, identity.Principal) bool,
	apply func(*models.Post) error,
) {
	post, err := s.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "post not found"})
		return
	}
	if !allowed(*post, GetPrincipal(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "error_description": "transition not allowed"})
		return
	}
	if err := apply(post); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "invalid_state", "error_description": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	if err := s.posts.Update(c.Request.Context(), post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// HandleSubmitPost moves a draft into review.
func (s *Server) HandleSubmitPost(c *gin.Context) {
	s.transitionPost(c, permission.CanSubmit, (*models.Post).Submit)
}

// HandleApprovePost accepts a submitted post.
func (s *Server) HandleApprovePost(c *gin.Context) {
	s.transitionPost(c, permission.CanApprove, (*models.Post).Approve)
}

// HandlePublishPost makes an approved post live.
func (s *Server) HandlePublishPost(c *gin.Context) {
	s.transitionPost(c, permission.CanPublish, (*models.Post).Publish)
}

// HandleListComments returns a post's comments when the post is visible.
func (s *Server) HandleListComments(c *gin.Context) {
	post, err := s.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	if post == nil || !permission.IsVisible(*post, GetPrincipal(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "post not found"})
		return
	}
	comments, err := s.comments.ListByPost(c.Request.Context(), post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type commentRequest struct {
	Content string `json:"content"`
}

// HandleAddComment appends a comment to a visible post.
func (s *Server) HandleAddComment(c *gin.Context) {
	post, err := s.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	p := GetPrincipal(c)
	if post == nil || !permission.IsVisible(*post, p) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "post not found"})
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "content is required"})
		return
	}
	comment, err := s.comments.Add(c.Request.Context(), models.Comment{
		PostID:   post.ID,
		AuthorID: p.Subject(),
		Content:  req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, comment)
}
