package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tradeboard/internal/config"
	"tradeboard/internal/database"
	"tradeboard/internal/middleware"
	"tradeboard/internal/modules/admin"
	"tradeboard/internal/modules/agent"
	"tradeboard/internal/modules/auth"
	"tradeboard/internal/modules/deal"
	"tradeboard/internal/modules/forum"
	"tradeboard/internal/modules/notify"
	jwtsvc "tradeboard/internal/pkg/jwt"
	"tradeboard/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	forumRepo := repository.NewForumRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	dealRepo := repository.NewDealRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notify.NewHub()
	defer hub.Close()
	notifyService := notify.NewService(notifRepo, hub)
	notifyHandler := notify.NewHandler(notifyService, hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	forumService := forum.NewService(forumRepo, userRepo)
	forumHandler := forum.NewHandler(forumService)

	agentService := agent.NewService(agentRepo, userRepo)
	agentHandler := agent.NewHandler(agentService)

	dealService := deal.NewService(dealRepo, userRepo, notifyService)
	dealHandler := deal.NewHandler(dealService)

	adminService := admin.NewService(userRepo, requestRepo, statsRepo, notifyService)
	adminHandler := admin.NewHandler(adminService)

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		forumHandler.RegisterPublicRoutes(v1)
		agentHandler.RegisterPublicRoutes(v1)
		dealHandler.RegisterPublicRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			forumHandler.RegisterRoutes(protected)
			agentHandler.RegisterRoutes(protected)
			dealHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
			notifyHandler.RegisterRoutes(protected)
		}

		// moderation panel
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.RequireAuth(j), middleware.AdminOnly())
		{
			forumHandler.RegisterAdminRoutes(adminGroup)
			dealHandler.RegisterAdminRoutes(adminGroup)
			adminHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
