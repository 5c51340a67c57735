package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogms/blogms/identity"
)

// HandleGetIdentityMode reports the persisted identity mode and the
// capability flags of the backend serving it.
func (s *Server) HandleGetIdentityMode(c *gin.Context) {
	ctx := c.Request.Context()
	mode := s.factory.CurrentMode(ctx)
	mgr := s.factory.Current(ctx)
	c.JSON(http.StatusOK, gin.H{
		"mode": mode,
		"capabilities": gin.H{
			"user_creation":  mgr.SupportsUserCreation(),
			"role_creation":  mgr.SupportsDirectRoleCreation(),
			"group_creation": mgr.SupportsDirectGroupCreation(),
		},
	})
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// HandleSetIdentityMode persists a mode switch. The change is global:
// every subsequent request on any instance resolves the new backend once
// its settings cache refreshes.
func (s *Server) HandleSetIdentityMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Mode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "mode is required"})
		return
	}
	mode := identity.Mode(req.Mode)
	if err := s.factory.Initialize(c.Request.Context(), mode); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

// HandleSynchronizeUsers triggers bulk user reconciliation on the active
// backend.
func (s *Server) HandleSynchronizeUsers(c *gin.Context) {
	ok, err := s.manager(c.Request.Context()).SynchronizeUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"synchronized": ok})
}

// HandleListSettings returns all persisted application settings.
func (s *Server) HandleListSettings(c *gin.Context) {
	settings, err := s.settings.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

type settingRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// HandleSetSetting writes a single setting by key.
func (s *Server) HandleSetSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "invalid JSON payload"})
		return
	}
	if err := s.settings.SetWithDescription(c.Request.Context(), c.Param("key"), req.Value, req.Description); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
