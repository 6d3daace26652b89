package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"pacearena-api/clock"
	"pacearena-api/config"
	"pacearena-api/controllers"
	"pacearena-api/messaging"
	"pacearena-api/middleware"
	"pacearena-api/repositories"
	"pacearena-api/services"
)

// Dependencies are the process-wide collaborators shared by every route.
type Dependencies struct {
	DB           *gorm.DB
	Config       *config.Config
	EmailService *services.EmailService
	Publisher    messaging.Publisher
	Clock        clock.Clock
}

// SetupRoutes wires repositories, services and controllers onto r and
// returns the event service so background jobs can share it.
func SetupRoutes(r *gin.Engine, deps Dependencies) *services.EventService {
	db, cfg := deps.DB, deps.Config

	// Repositories
	eventRepo := repositories.NewEventRepository(db)
	socialRepo := repositories.NewSocialRepository(db)
	clubRepo := repositories.NewClubRepository(db)
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	registrationRepo := repositories.NewRegistrationRepository(db)
	runRepo := repositories.NewRunRepository(db)

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry(), deps.Clock)
	eventService := services.NewEventService(eventRepo, socialRepo, clubRepo, deps.Clock, cfg.NearbyRadiusMiles)
	socialService := services.NewSocialService(socialRepo, eventRepo, postRepo, deps.Publisher, deps.Clock)
	registrationService := services.NewRegistrationService(registrationRepo, eventRepo, userRepo, deps.EmailService, deps.Publisher, deps.Clock)
	authService := services.NewAuthService(userRepo, clubRepo, tokens, deps.EmailService)
	clubService := services.NewClubService(clubRepo)
	postService := services.NewPostService(postRepo, clubRepo, socialRepo)
	runService := services.NewRunService(runRepo, userRepo, deps.Publisher, deps.Clock, cfg.UploadDir)
	leaderboardService := services.NewLeaderboardService(runRepo, clubRepo, deps.Clock)

	// Controllers
	authController := controllers.NewAuthController(authService)
	eventController := controllers.NewEventController(eventService)
	socialController := controllers.NewSocialController(socialService)
	registrationController := controllers.NewRegistrationController(registrationService)
	clubController := controllers.NewClubController(clubService)
	postController := controllers.NewPostController(postService)
	runController := controllers.NewRunController(runService)
	leaderboardController := controllers.NewLeaderboardController(leaderboardService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
			"email":   deps.EmailService.Enabled(),
		})
	})

	v1 := r.Group("/api/v1")

	// Public routes; a valid token still personalises like state.
	public := v1.Group("/")
	public.Use(middleware.OptionalAuth(tokens))
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		public.GET("/events", eventController.GetEvents)
		public.GET("/events/:id", eventController.GetEvent)
		public.GET("/events/:id/likes", socialController.GetEventLikes)
		public.GET("/events/:id/comments", socialController.GetEventComments)
		public.POST("/rpc/get_nearby_events", eventController.GetNearbyEvents)

		public.GET("/clubs", clubController.GetClubs)
		public.GET("/clubs/:id", clubController.GetClub)
		public.GET("/posts", postController.GetPosts)
		public.GET("/posts/:id/comments", socialController.GetPostComments)

		public.GET("/leaderboard", leaderboardController.GetLeaderboard)
		public.GET("/dashboard", leaderboardController.GetDashboard)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/auth/session", authController.Session)

		events := protected.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.POST("/:id/likes", socialController.LikeEvent)
			events.DELETE("/:id/likes", socialController.UnlikeEvent)
			events.POST("/:id/comments", socialController.AddEventComment)
			events.POST("/:id/registrations", registrationController.RegisterForEvent)
		}
		protected.GET("/registrations", registrationController.GetMyRegistrations)

		protected.POST("/clubs", clubController.CreateClub)
		protected.POST("/clubs/:id/posts", postController.CreatePost)

		posts := protected.Group("/posts")
		{
			posts.POST("/:id/likes", socialController.LikePost)
			posts.DELETE("/:id/likes", socialController.UnlikePost)
			posts.POST("/:id/comments", socialController.AddPostComment)
		}

		protected.POST("/runs", runController.SubmitRun)
	}

	return eventService
}
