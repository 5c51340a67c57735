// Package server wires the HTTP surface: configuration, bearer-token
// authentication with claims enrichment, and the JSON API for identity
// administration and the post workflow.
package server

import (
	"context"

	"github.com/blogms/blogms/identity"
	"github.com/blogms/blogms/store"
)

// Server holds the wired application state shared by the handlers.
type Server struct {
	cfg      *AppConfig
	factory  *identity.Factory
	enricher *identity.Enricher
	settings *store.CachedSettings
	posts    *store.PostStore
	comments *store.CommentStore
}

func NewServer(
	cfg *AppConfig,
	factory *identity.Factory,
	enricher *identity.Enricher,
	settings *store.CachedSettings,
	posts *store.PostStore,
	comments *store.CommentStore,
) *Server {
	return &Server{
		cfg:      cfg,
		factory:  factory,
		enricher: enricher,
		settings: settings,
		posts:    posts,
		comments: comments,
	}
}

// manager resolves the identity backend for the persisted mode.
func (s *Server) manager(ctx context.Context) identity.Manager {
	return s.factory.Current(ctx)
}
