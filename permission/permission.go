// Package permission holds the authorization policy: pure predicates
// over a post and the caller's principal. No storage access happens
// here; the principal already carries the effective roles.
package permission

import (
	"github.com/blogms/blogms/identity"
	"github.com/blogms/blogms/models"
)

// Well-known role names.
const (
	RoleAdmin  = "Admin"
	RoleAuthor = "Author"
	RoleEditor = "Editor"
	RoleReader = "Reader"
)

// ElevatedRoles see unpublished content and the full post listing.
var ElevatedRoles = []string{RoleAdmin, RoleAuthor, RoleEditor}

func holdsAny(p identity.Principal, roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

// CanViewAny reports whether the principal may list and read every post
// regardless of status.
func CanViewAny(p identity.Principal) bool {
	return holdsAny(p, ElevatedRoles...)
}

// CanEdit allows admins to edit anything; authors edit only their own
// posts, matched by subject id.
func CanEdit(post models.Post, p identity.Principal) bool {
	if p.HasRole(RoleAdmin) {
		return true
	}
	return p.HasRole(RoleAuthor) && post.AuthorID == p.Subject()
}

// CanSubmit allows submitting a draft the principal could edit.
func CanSubmit(post models.Post, p identity.Principal) bool {
	return post.Status == models.StatusDraft && CanEdit(post, p)
}

// CanApprove allows admins and editors to approve submitted posts.
func CanApprove(post models.Post, p identity.Principal) bool {
	return post.Status == models.StatusSubmitted && holdsAny(p, RoleAdmin, RoleEditor)
}

// CanPublish allows admins and editors to publish approved posts.
func CanPublish(post models.Post, p identity.Principal) bool {
	return post.Status == models.StatusApproved && holdsAny(p, RoleAdmin, RoleEditor)
}

// IsVisible reports whether the post appears for this principal:
// elevated roles see everything, everyone else sees only approved and
// published posts.
func IsVisible(post models.Post, p identity.Principal) bool {
	if CanViewAny(p) {
		return true
	}
	return post.Status == models.StatusPublished || post.Status == models.StatusApproved
}
