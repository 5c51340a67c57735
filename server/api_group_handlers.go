package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogms/blogms/dto"
	"github.com/blogms/blogms/store"
)

// HandleListGroups returns the group hierarchy.
func (s *Server) HandleListGroups(c *gin.Context) {
	groups, err := s.manager(c.Request.Context()).Groups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// HandleGetGroup returns a group by id.
func (s *Server) HandleGetGroup(c *gin.Context) {
	group, err := s.manager(c.Request.Context()).GroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// HandleGetGroupByPath resolves a group by its full path.
func (s *Server) HandleGetGroupByPath(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "path query parameter is required"})
		return
	}
	group, err := s.manager(c.Request.Context()).GroupByPath(c.Request.Context(), path)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// HandleCreateGroup creates a group under the optional parent. A path
// collision is a conflict; in direct mode the adapter echoes the request
// back with an empty id.
func (s *Server) HandleCreateGroup(c *gin.Context) {
	var req dto.Group
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "group name is required"})
		return
	}
	created, err := s.manager(c.Request.Context()).CreateGroup(c.Request.Context(), req)
	if errors.Is(err, store.ErrPathExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "error_description": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// HandleUpdateGroup renames a group.
func (s *Server) HandleUpdateGroup(c *gin.Context) {
	var req dto.Group
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "invalid JSON payload"})
		return
	}
	ok, err := s.manager(c.Request.Context()).UpdateGroup(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// HandleDeleteGroup removes a group and its whole subtree.
func (s *Server) HandleDeleteGroup(c *gin.Context) {
	ok, err := s.manager(c.Request.Context()).DeleteGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// HandleListUsersInGroup returns a group's members.
func (s *Server) HandleListUsersInGroup(c *gin.Context) {
	users, err := s.manager(c.Request.Context()).UsersInGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// HandleListGroupRoles returns the roles granted through a group.
func (s *Server) HandleListGroupRoles(c *gin.Context) {
	roles, err := s.manager(c.Request.Context()).GroupRoles(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// HandleAssignGroupRoles grants roles to a group.
func (s *Server) HandleAssignGroupRoles(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "ids array is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).AssignRolesToGroup(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "group or roles not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assigned": true})
}

// HandleRemoveGroupRoles revokes roles from a group.
func (s *Server) HandleRemoveGroupRoles(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "ids array is required"})
		return
	}
	ok, err := s.manager(c.Request.Context()).RemoveRolesFromGroup(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_error", "error_description": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "error_description": "group or roles not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
