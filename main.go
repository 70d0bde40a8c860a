package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zmina/config"
	zcron "zmina/cron"
	"zmina/database"
	bookingRepo "zmina/database/repository/booking"
	conversationRepo "zmina/database/repository/conversation"
	staffRepo "zmina/database/repository/staff"
	"zmina/handlers"
	"zmina/middleware"
	"zmina/routes"
	"zmina/services/interpreter"
	"zmina/services/notify"
	"zmina/services/tasks"
	"zmina/services/timechange"
	"zmina/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	conversations := conversationRepo.NewMongoConversationRepo()
	staff := staffRepo.NewMongoStaffRepo()

	// services.
	guard := &timechange.PermissionGuard{
		Staff: staff,
		Cache: utils.GetScopeCacheClient(),
	}

	oracle := interpreter.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	interp := interpreter.NewDefaultInterpreter(oracle)

	notifier := tasks.NewAsynqNotifier()
	defer notifier.Close()

	pipeline := &timechange.DefaultTimeChangeService{
		Bookings:      bookings,
		Conversations: conversations,
		Staff:         staff,
		Guard:         guard,
		Interpreter:   interp,
		Notifier:      notifier,
		WindowDays:    config.AppConfig.BookingWindowDays,
	}

	notificationService := &notify.DefaultNotificationService{Staff: staff}
	zcron.InitNotifyWorker(notificationService)
	zcron.StartConversationPruner(conversations)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetScopeCacheClient()},
		database.MongoClient,
	)

	// handlers.
	bundle := &routes.HandlerBundle{
		Chat:    handlers.NewChatHandler(pipeline),
		Booking: handlers.NewBookingHandler(bookings),
		Admin:   handlers.NewAdminHandler(staff, guard),
	}
	routes.RegisterRoutes(router, bundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
