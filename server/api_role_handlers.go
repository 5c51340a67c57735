package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogms/blogms/dto"
)

// HandleListRoles returns all roles from the active backend.
func (s *Server) HandleListRoles(c *gin.Context) {
	roles, err := s.manager(c.Request.Context()).Roles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// HandleGetRole returns a role by id.
func (s *Server) HandleGetRole(c *gin.Context) {
	role, err := s.manager(c.Request.Context()).RoleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if role == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "role not found"})
		return
	}
	c.JSON(http.StatusOK, role)
}

// HandleCreateRole creates a role. In direct mode the adapter echoes the
// request back without creating anything; the response carries an empty
// id in that case.
func (s *Server) HandleCreateRole(c *gin.Context) {
	var req dto.Role
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "role name is required"})
		return
	}
	created, err := s.manager(c.Request.Context()).CreateRole(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// HandleUpdateRole updates a role's name and description.
func (s *Server) HandleUpdateRole(c *gin.Context) {
	var req dto.Role
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "invalid JSON payload"})
		return
	}
	ok, err := s.manager(c.Request.Context()).UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "role not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// HandleDeleteRole deletes a role and its associations.
func (s *Server) HandleDeleteRole(c *gin.Context) {
	ok, err := s.manager(c.Request.Context()).DeleteRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "role not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// HandleListUsersInRole returns the users holding a role directly.
func (s *Server) HandleListUsersInRole(c *gin.Context) {
	users, err := s.manager(c.Request.Context()).UsersInRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
