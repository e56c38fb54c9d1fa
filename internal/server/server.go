package server

import (
	"log"
	"strings"
	"time"

	"sourcingsprints.com/bookclub/internal/config"
	"sourcingsprints.com/bookclub/internal/middleware"
	"sourcingsprints.com/bookclub/pkg/storage"

	authHttp "sourcingsprints.com/bookclub/internal/modules/auth/delivery/http"
	authService "sourcingsprints.com/bookclub/internal/modules/auth/service"

	bookHttp "sourcingsprints.com/bookclub/internal/modules/book/delivery/http"
	bookRepo "sourcingsprints.com/bookclub/internal/modules/book/repository"
	bookService "sourcingsprints.com/bookclub/internal/modules/book/service"

	commentHttp "sourcingsprints.com/bookclub/internal/modules/comment/delivery/http"
	commentRepo "sourcingsprints.com/bookclub/internal/modules/comment/repository"
	commentService "sourcingsprints.com/bookclub/internal/modules/comment/service"

	notiHttp "sourcingsprints.com/bookclub/internal/modules/notification/delivery/http"
	notifRepo "sourcingsprints.com/bookclub/internal/modules/notification/repository"
	notifService "sourcingsprints.com/bookclub/internal/modules/notification/service"

	profileHttp "sourcingsprints.com/bookclub/internal/modules/profile/delivery/http"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	profileService "sourcingsprints.com/bookclub/internal/modules/profile/service"

	proposalHttp "sourcingsprints.com/bookclub/internal/modules/proposal/delivery/http"
	proposalRepo "sourcingsprints.com/bookclub/internal/modules/proposal/repository"
	proposalService "sourcingsprints.com/bookclub/internal/modules/proposal/service"

	reactionHttp "sourcingsprints.com/bookclub/internal/modules/reaction/delivery/http"
	reactionRepo "sourcingsprints.com/bookclub/internal/modules/reaction/repository"
	reactionService "sourcingsprints.com/bookclub/internal/modules/reaction/service"

	readingHttp "sourcingsprints.com/bookclub/internal/modules/reading/delivery/http"
	readingRepo "sourcingsprints.com/bookclub/internal/modules/reading/repository"
	readingService "sourcingsprints.com/bookclub/internal/modules/reading/service"

	reviewHttp "sourcingsprints.com/bookclub/internal/modules/review/delivery/http"
	reviewRepo "sourcingsprints.com/bookclub/internal/modules/review/repository"
	reviewService "sourcingsprints.com/bookclub/internal/modules/review/service"

	searchService "sourcingsprints.com/bookclub/internal/modules/search/service"

	statHttp "sourcingsprints.com/bookclub/internal/modules/stat/delivery/http"
	statRepo "sourcingsprints.com/bookclub/internal/modules/stat/repository"
	statService "sourcingsprints.com/bookclub/internal/modules/stat/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	usersRepo := userRepo.NewUserRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		// Cover uploads return an error until credentials are configured;
		// everything else works without them.
		log.Printf("Cloudinary disabled: %v", err)
		imageStorage = nil
	}

	var meiliSvc searchService.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewMeiliSearchService(meiliClient)
	}

	profileSvc := profileService.NewProfileService(usersRepo)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	authSvc := authService.NewAuthService(usersRepo, redisClient, cfg.JWTSecret, cfg.SessionTTL, cfg.LoginCodeTTL)
	authHandler := authHttp.NewAuthHandler(authSvc)

	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	booksRepo := bookRepo.NewBookRepository(db)
	bookSvc := bookService.NewBookService(booksRepo, imageStorage, meiliSvc, cfg.CloudinaryUploadFolder)
	bookHandler := bookHttp.NewBookHandler(bookSvc)

	proposalsRepo := proposalRepo.NewProposalRepository(db)
	proposalSvc := proposalService.NewProposalService(proposalsRepo, bookSvc, notificationSvc, usersRepo)
	proposalHandler := proposalHttp.NewProposalHandler(proposalSvc)

	reviewsRepo := reviewRepo.NewReviewRepository(db)
	reviewSvc := reviewService.NewReviewService(reviewsRepo, booksRepo)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	reactionsRepo := reactionRepo.NewReactionRepository(db)
	reactionSvc := reactionService.NewReactionService(reactionsRepo, reviewsRepo)
	reactionHandler := reactionHttp.NewReactionHandler(reactionSvc)

	commentsRepo := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(commentsRepo, reviewsRepo, profileSvc, notificationSvc)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	readingsRepo := readingRepo.NewReadingRepository(db)
	readingSvc := readingService.NewReadingService(readingsRepo, booksRepo)
	readingHandler := readingHttp.NewReadingHandler(readingSvc)

	statsRepo := statRepo.NewStatRepository(db)
	statSvc := statService.NewStatService(statsRepo)
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(usersRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/request-code", authHandler.RequestCode)
		auth.POST("/verify", authHandler.VerifyCode)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/profiles", profileHandler.Provision)
			adminGroup.PUT("/profiles/:id/admin", profileHandler.SetAdmin)
			adminGroup.POST("/books", bookHandler.CreateBook)
			adminGroup.PUT("/books/:id/current", bookHandler.SetCurrent)
			adminGroup.PUT("/books/:id/read", bookHandler.MarkRead)
			adminGroup.PUT("/books/:id/archive", bookHandler.Archive)
			adminGroup.PUT("/books/:id/unarchive", bookHandler.Unarchive)
			adminGroup.POST("/books/:id/cover", bookHandler.UploadCover)
			adminGroup.POST("/proposals/:id/promote", proposalHandler.Promote)
			adminGroup.DELETE("/proposals/:id", proposalHandler.AdminWithdraw)
		}

		// Profile routes
		protected.GET("/profiles", profileHandler.GetDirectory)
		protected.GET("/profiles/me", profileHandler.GetMe)

		// Book routes
		protected.GET("/books", bookHandler.GetShelf)
		protected.GET("/books/all", bookHandler.ListAll)
		protected.GET("/books/search", bookHandler.Search)
		protected.GET("/books/:id", bookHandler.GetBook)

		// Review routes
		protected.PUT("/books/:id/review", reviewHandler.UpsertReview)
		protected.GET("/books/:id/reviews", reviewHandler.GetBookReviews)
		protected.GET("/books/:id/reviews/me", reviewHandler.GetMyReview)

		// Reading status routes
		protected.PUT("/books/:id/reading-status", readingHandler.SetStatus)
		protected.GET("/books/:id/reading-status", readingHandler.GetMyStatus)
		protected.GET("/books/:id/who-is-in", readingHandler.GetWhoIsIn)

		// Proposal routes
		protected.POST("/proposals", proposalHandler.Propose)
		protected.GET("/proposals", proposalHandler.GetRanking)
		protected.GET("/proposals/top", proposalHandler.GetTop)
		protected.POST("/proposals/:id/vote", proposalHandler.ToggleVote)
		protected.DELETE("/proposals/:id/mine", proposalHandler.Withdraw)

		// Reaction and comment routes
		protected.POST("/reviews/:id/reactions", reactionHandler.ToggleReaction)
		protected.GET("/reviews/:id/reactions", reactionHandler.GetReactionSummary)
		protected.POST("/reviews/:id/comments", commentHandler.PostComment)
		protected.GET("/reviews/:id/comments", commentHandler.GetComments)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Stats
		protected.GET("/stats", statHandler.GetDashboard)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
