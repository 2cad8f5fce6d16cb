package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"plannova/src/boot"
	"plannova/src/config"
	"plannova/src/lib"
	awslib "plannova/src/lib/aws"
	"plannova/src/middlewares"
	"plannova/src/models"
	"plannova/src/store"
	"plannova/src/types"
	"plannova/src/workflow"
	"regexp"
	"syscall"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type appStore interface {
	workflow.VendorStore
	workflow.SettlementStore
	workflow.DashboardStore
	workflow.SweepStore
	ListUsers(ctx context.Context) ([]models.User, error)
	ListServices(ctx context.Context) ([]models.Service, error)
}

type services struct {
	store     appStore
	vendors   *workflow.VendorApproval
	payments  *workflow.Settlement
	dashboard *workflow.Dashboard
}

func newServices(st appStore, capturer workflow.Capturer, publisher workflow.Publisher, cache workflow.Cache) *services {
	dashboard := workflow.NewDashboard(st, cache)
	publisher = dashboard.Invalidating(publisher)
	return &services{
		store:     st,
		vendors:   workflow.NewVendorApproval(st, publisher),
		payments:  workflow.NewSettlement(st, capturer, publisher),
		dashboard: dashboard,
	}
}

var settlementOutcomeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case types.SettlementOutcome:
		return v == types.OUTCOME_SUCCESS || v == types.OUTCOME_FAILURE
	case string:
		return v == string(types.OUTCOME_SUCCESS) || v == string(types.OUTCOME_FAILURE)
	}
	return false
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("settlementoutcome", settlementOutcomeValidatorFunc)
	}
}

func setupRouter(svc *services) *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.Use(corsMiddleware())
	router.Use(middlewares.MaintenanceMode)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})

	authorized := router.Group("/")
	authorized.Use(middlewares.AuthMiddleware)
	authorized = paymentHandlers(authorized, svc)

	admin := router.Group("/")
	admin.Use(middlewares.AuthMiddleware, middlewares.RequireRole(middlewares.RoleAdmin))
	admin = vendorHandlers(admin, svc)
	admin = settlementHandlers(admin, svc)
	admin = eventHandlers(admin, svc)
	admin = adminHandlers(admin, svc)

	return router
}

func corsMiddleware() gin.HandlerFunc {
	if config.IsLocal() {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
	cc.AllowOriginFunc = func(origin string) bool {
		if config.APP_HOST == "" {
			return false
		}
		match, _ := regexp.MatchString("^"+regexp.QuoteMeta(config.APP_HOST)+"$", origin)
		return match
	}
	cc.AllowCredentials = true
	cc.AllowAllOrigins = false
	return cors.New(cc)
}

func initLogger() {
	if config.LOG_DIR == "" {
		return
	}
	if err := os.MkdirAll(config.LOG_DIR, 0o755); err != nil {
		log.Printf("Could not create log dir: %s\n", err.Error())
		return
	}
	gin.DefaultWriter = io.MultiWriter(&lumberjack.Logger{
		Filename:   path.Join(config.LOG_DIR, "api.log"),
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     30,
	}, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   path.Join(config.LOG_DIR, "server.log"),
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func initStore() appStore {
	if config.STORE_DRIVER == "memory" {
		log.Println("Using in-memory store")
		return store.NewMemory()
	}
	return store.New(boot.InitDb())
}

func initPublisher(ctx context.Context) (workflow.Publisher, func()) {
	if config.IsLocal() {
		if config.KAFKA_BROKER == "" {
			return workflow.NopPublisher{}, func() {}
		}
		p, err := lib.NewKafkaPublisher("plannova-api", config.WORKFLOW_TOPIC)
		if err != nil {
			log.Printf("Falling back to no-op publisher: %s\n", err.Error())
			return workflow.NopPublisher{}, func() {}
		}
		return p, p.Close
	}
	if config.AWS_SNS_TOPIC_ARN == "" {
		return workflow.NopPublisher{}, func() {}
	}
	client, err := lib.AWSGetSNSClient(ctx)
	if err != nil {
		log.Printf("Falling back to no-op publisher: %s\n", err.Error())
		return workflow.NopPublisher{}, func() {}
	}
	return awslib.NewSNSPublisher(client, config.AWS_SNS_TOPIC_ARN), func() {}
}

func initCapturer() workflow.Capturer {
	if config.STRIPE_SECRET_KEY == "" {
		log.Println("STRIPE_SECRET_KEY not set, settlements are simulated")
		return workflow.SimulatedCapturer{}
	}
	return lib.NewStripeCapturer(lib.GetStripeClient())
}

func initCache() workflow.Cache {
	rdb := lib.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return lib.NewRedisCache(rdb, "plannova")
}

func main() {
	if os.Getenv("API_ENV") == "" || os.Getenv("API_ENV") == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("No .env loaded: %s\n", err.Error())
		}
		config.Load()
	}
	initLogger()
	if config.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := initStore()
	publisher, closePublisher := initPublisher(ctx)
	defer closePublisher()
	svc := newServices(st, initCapturer(), publisher, initCache())

	boot.InitScheduler(st)
	defer boot.StopScheduler()
	boot.InitBroker(ctx)

	registerValidators()
	router := setupRouter(svc)

	srv := &http.Server{
		Addr:              ":" + config.API_PORT,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %s", err)
		}
	}()
	log.Printf("Listening on :%s\n", config.API_PORT)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %s\n", err.Error())
	}
}
