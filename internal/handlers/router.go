package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ArAversi0/TaskTalk/internal/services"
)

// NewRouter собирает gin-роутер со всеми маршрутами API.
// Все маршруты, кроме регистрации и входа, требуют bearer-токен.
func NewRouter(
	authService *services.AuthService,
	groupService services.GroupService,
	postService services.PostService,
	notificationService services.NotificationService,
	tileService services.TileService,
) *gin.Engine {
	authHandler := NewAuthHandler(authService, groupService)
	groupHandler := NewGroupHandler(groupService)
	postHandler := NewPostHandler(postService)
	notificationHandler := NewNotificationHandler(notificationService)
	tileHandler := NewTileHandler(tileService)

	router := gin.Default()
	router.Use(CORSMiddleware())

	api := router.Group("/api")

	// Публичные маршруты
	api.POST("/users/register/", authHandler.Register)
	api.POST("/users/login/", authHandler.Login)

	// Защищенные маршруты
	protected := api.Group("/")
	protected.Use(AuthMiddleware(authService))
	{
		protected.POST("/users/logout/", authHandler.Logout)
		protected.GET("/users/profile/", authHandler.GetProfile)
		protected.PUT("/users/profile/", authHandler.UpdateProfile)
		protected.GET("/users/:id/profile/", authHandler.PublicProfile)

		protected.GET("/tiles/", tileHandler.List)
		protected.POST("/tiles/", tileHandler.Create)
		protected.GET("/tiles/:id/", tileHandler.Get)
		protected.PUT("/tiles/:id/", tileHandler.Update)
		protected.DELETE("/tiles/:id/", tileHandler.Delete)

		protected.GET("/my-groups/", groupHandler.MyGroups)
		protected.POST("/create-group/", groupHandler.CreateGroup)
		protected.DELETE("/groups/:group_id/", groupHandler.DeleteGroup)
		protected.POST("/groups/:group_id/invite/", groupHandler.Invite)
		protected.POST("/groups/:group_id/exclude/", groupHandler.Exclude)
		protected.POST("/groups/:group_id/leave/", groupHandler.Leave)

		protected.GET("/groups/:group_id/posts/", postHandler.ListPosts)
		protected.POST("/groups/:group_id/posts/", postHandler.CreatePost)
		protected.GET("/groups/:group_id/posts/:post_id/", postHandler.GetPost)
		protected.PATCH("/groups/:group_id/posts/:post_id/", postHandler.UpdatePost)
		protected.PUT("/groups/:group_id/posts/:post_id/", postHandler.UpdatePost)
		protected.DELETE("/groups/:group_id/posts/:post_id/", postHandler.DeletePost)
		protected.POST("/groups/:group_id/posts/:post_id/comments/", postHandler.AddComment)
		protected.DELETE("/groups/:group_id/posts/:post_id/comments/:comment_id/", postHandler.DeleteComment)

		protected.GET("/notifications/", notificationHandler.List)
		protected.POST("/notifications/mark_viewed/", notificationHandler.MarkViewed)
		protected.DELETE("/notifications/:id/delete/", notificationHandler.Delete)
		protected.POST("/invitations/:id/:action/", notificationHandler.InvitationAction)
	}

	return router
}
