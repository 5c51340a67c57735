package server

import (
	"github.com/gin-gonic/gin"

	"github.com/blogms/blogms/permission"
)

// NewGinEngine builds the router. Public post reads accept anonymous
// callers; everything else requires a bearer token, and the admin group
// additionally requires the Admin role.
func NewGinEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())

	// Public reads: anonymous viewers see approved/published posts only.
	public := r.Group("/api/v1")
	public.Use(s.OptionalTokenMiddleware())
	public.GET("/posts", s.HandleListPosts)
	public.GET("/posts/:id", s.HandleGetPost)
	public.GET("/posts/:id/comments", s.HandleListComments)

	authed := r.Group("/api/v1")
	authed.Use(s.TokenMiddleware())
	authed.POST("/posts", s.HandleCreatePost)
	authed.PUT("/posts/:id", s.HandleUpdatePost)
	authed.DELETE("/posts/:id", s.HandleDeletePost)
	authed.POST("/posts/:id/submit", s.HandleSubmitPost)
	authed.POST("/posts/:id/approve", s.HandleApprovePost)
	authed.POST("/posts/:id/publish", s.HandlePublishPost)
	authed.POST("/posts/:id/comments", s.HandleAddComment)

	admin := r.Group("/api/v1/admin")
	admin.Use(s.TokenMiddleware(), s.RequireRole(permission.RoleAdmin))

	admin.GET("/users", s.HandleListUsers)
	admin.POST("/users", s.HandleCreateUser)
	admin.GET("/users/:id", s.HandleGetUser)
	admin.PUT("/users/:id", s.HandleUpdateUser)
	admin.DELETE("/users/:id", s.HandleDeleteUser)
	admin.PUT("/users/:id/reset-password", s.HandleResetPassword)
	admin.GET("/users/:id/roles", s.HandleListUserRoles)
	admin.POST("/users/:id/roles", s.HandleAssignUserRoles)
	admin.DELETE("/users/:id/roles", s.HandleRemoveUserRoles)
	admin.GET("/users/:id/groups", s.HandleListUserGroups)
	admin.POST("/users/:id/groups", s.HandleAssignUserGroups)
	admin.DELETE("/users/:id/groups", s.HandleRemoveUserGroups)

	admin.GET("/roles", s.HandleListRoles)
	admin.POST("/roles", s.HandleCreateRole)
	admin.GET("/roles/:id", s.HandleGetRole)
	admin.PUT("/roles/:id", s.HandleUpdateRole)
	admin.DELETE("/roles/:id", s.HandleDeleteRole)
	admin.GET("/roles/:id/users", s.HandleListUsersInRole)

	admin.GET("/groups", s.HandleListGroups)
	admin.POST("/groups", s.HandleCreateGroup)
	admin.GET("/groups/by-path", s.HandleGetGroupByPath)
	admin.GET("/groups/:id", s.HandleGetGroup)
	admin.PUT("/groups/:id", s.HandleUpdateGroup)
	admin.DELETE("/groups/:id", s.HandleDeleteGroup)
	admin.GET("/groups/:id/users", s.HandleListUsersInGroup)
	admin.GET("/groups/:id/roles", s.HandleListGroupRoles)
	admin.POST("/groups/:id/roles", s.HandleAssignGroupRoles)
	admin.DELETE("/groups/:id/roles", s.HandleRemoveGroupRoles)

	admin.GET("/identity/mode", s.HandleGetIdentityMode)
	admin.PUT("/identity/mode", s.HandleSetIdentityMode)
	admin.POST("/identity/sync", s.HandleSynchronizeUsers)
	admin.GET("/settings", s.HandleListSettings)
	admin.PUT("/settings/:key", s.HandleSetSetting)

	return r
}
