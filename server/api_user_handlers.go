package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogms/blogms/dto"
)

// HandleListUsers returns every user the active backend knows about.
func (s *Server) HandleListUsers(c *gin.Context) {
	users, err := s.manager(c.Request.Context()).Users(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// HandleGetUser returns a single user by subject id.
func (s *Server) HandleGetUser(c *gin.Context) {
	user, err := s.manager(c.Request.Context()).UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	dto.User
	Password string `json:"password"`
}

// HandleCreateUser creates a user through the active backend.
func (s *Server) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "invalid JSON payload"})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "username is required"})
		return
	}
	mgr := s.manager(c.Request.Context())
	if !mgr.SupportsUserCreation() {
		c.JSON(http.StatusConflict, gin.H{"error": "unsupported", "error_description": "active identity backend cannot create users"})
		return
	}
	ok, err := mgr.CreateUser(c.Request.Context(), req.User, req.Password)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "error_description": "user was not created"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

// HandleUpdateUser updates a user's profile.
func (s *Server) HandleUpdateUser(c *gin.Context) {
	var req dto.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "invalid JSON payload"})
		return
	}
	ok, err := s.manager(c.Request.Context()).UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// HandleDeleteUser removes a user.
func (s *Server) HandleDeleteUser(c *gin.Context) {
	ok, err := s.manager(c.Request.Context()).DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// HandleResetPassword sets a new password credential for a user.
func (s *Server) HandleResetPassword(c *gin.Context) {
	var req dto.Credential
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "credential value is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).ResetPassword(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// HandleListUserRoles returns the roles directly assigned to a user.
func (s *Server) HandleListUserRoles(c *gin.Context) {
	roles, err := s.manager(c.Request.Context()).UserRoles(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// HandleAssignUserRoles assigns roles to a user.
func (s *Server) HandleAssignUserRoles(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "ids array is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).AssignRolesToUser(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "one or more roles not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": true})
}

// HandleRemoveUserRoles removes roles from a user.
func (s *Server) HandleRemoveUserRoles(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "ids array is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).RemoveRolesFromUser(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "one or more roles not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// HandleListUserGroups returns the ids of the groups a user belongs to.
func (s *Server) HandleListUserGroups(c *gin.Context) {
	groupIDs, err := s.manager(c.Request.Context()).UserGroups(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_ids": groupIDs})
}

// HandleAssignUserGroups adds a user to groups.
func (s *Server) HandleAssignUserGroups(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "ids array is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).AssignUserToGroups(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "one or more groups not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": true})
}

// HandleRemoveUserGroups removes a user from groups.
func (s *Server) HandleRemoveUserGroups(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "ids array is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).RemoveUserFromGroups(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "one or more groups not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
