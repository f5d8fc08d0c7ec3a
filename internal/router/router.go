package router

import (
	"net/http"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/analytics"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/middleware"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/notification"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/post"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/search"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/user"

	"github.com/gin-gonic/gin"
)

const rateWindow = time.Minute

// Setup registers every route on a new engine.
func Setup(s *svc.ServiceContext) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.LoggerMiddleware())
	if s.TracingEnabled() {
		r.Use(middleware.Tracing(svc.ServiceName))
	}

	authn := middleware.NewAuthenticator(s.Config, s.DB, s.Cache)
	userHandler := user.NewUserHandler(s)
	postHandler := post.NewPostHandler(s)
	searchHandler := search.NewSearchHandler(s)
	notificationHandler := notification.NewNotificationHandler(s)
	analyticsHandler := analytics.NewAnalyticsHandler(s)

	api := r.Group("/api")

	// long-lived, so registered outside the request timeout
	api.GET("/notifications/stream", authn.Required(), notificationHandler.Stream)

	timed := api.Group("", middleware.Timeout(s.Config.RequestTimeout))
	timed.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := timed.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.GET("/me", authn.Required(), userHandler.Me)
		auth.POST("/logout", authn.Required(), userHandler.Logout)
		auth.POST("/change-password", authn.Required(), userHandler.ChangePassword)
	}

	posts := timed.Group("/posts")
	{
		posts.GET("", authn.Optional(), postHandler.GetPosts)
		posts.GET("/user/:userId", authn.Optional(), postHandler.GetUserPosts)
		posts.GET("/following", authn.Required(), postHandler.GetFollowingFeed)
		posts.POST("", authn.Required(),
			middleware.RateLimitMiddleware(s.Cache, "create_post", s.Config.RateLimitPosts, rateWindow),
			postHandler.CreatePost)
		posts.POST("/:postId/like", authn.Required(), postHandler.LikePost)
		posts.POST("/:postId/comment", authn.Required(), postHandler.CommentPost)
		posts.POST("/:postId/share", authn.Required(), postHandler.SharePost)
		posts.DELETE("/:postId", authn.Required(), postHandler.DeletePost)
	}

	users := timed.Group("/users")
	{
		users.GET("/:userId", authn.Optional(), userHandler.GetProfile)
		users.PUT("/profile", authn.Required(), userHandler.UpdateMyProfile)
		users.DELETE("/profile", authn.Required(), userHandler.DeactivateAccount)
		users.POST("/profile/avatar", authn.Required(), userHandler.UploadAvatar)

		users.GET("/connections", authn.Required(), userHandler.ListConnections)
		users.POST("/:userId/connect", authn.Required(), userHandler.RequestConnection)
		users.PUT("/connections/:connectionId/accept", authn.Required(), userHandler.AcceptConnection)

		users.POST("/:userId/follow", authn.Required(), userHandler.FollowUser)
		users.DELETE("/:userId/follow", authn.Required(), userHandler.UnfollowUser)
	}

	searchGroup := timed.Group("/search")
	{
		searchGroup.GET("", authn.Required(),
			middleware.RateLimitMiddleware(s.Cache, "search", s.Config.RateLimitSearch, rateWindow),
			searchHandler.Search)
		searchGroup.GET("/trending", searchHandler.Trending)
	}

	notifications := timed.Group("/notifications", authn.Required())
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.PUT("/mark-all-read", notificationHandler.MarkAllRead)
		notifications.PUT("/:notificationId/read", notificationHandler.MarkRead)
		notifications.DELETE("/:notificationId", notificationHandler.DeleteNotification)
	}

	stats := timed.Group("/analytics", authn.Required())
	{
		stats.GET("/dashboard", middleware.RequireAdmin(), analyticsHandler.Dashboard)
		stats.GET("/personal", analyticsHandler.Personal)
	}

	return r
}
