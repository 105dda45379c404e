package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/cmd/fx/account_fx"
	"dreamoracle/cmd/fx/ai_fx"
	"dreamoracle/cmd/fx/analytics_fx"
	"dreamoracle/cmd/fx/controllers_fx"
	"dreamoracle/cmd/fx/credits_fx"
	"dreamoracle/cmd/fx/db_fx"
	"dreamoracle/cmd/fx/dream_fx"
	"dreamoracle/cmd/fx/export_fx"
	"dreamoracle/cmd/fx/interpretation_fx"
	"dreamoracle/cmd/fx/mail_fx"
	"dreamoracle/cmd/fx/memcache_fx"
	"dreamoracle/cmd/fx/payment_fx"
	"dreamoracle/cmd/fx/plan_fx"
	"dreamoracle/cmd/fx/symbol_fx"
	"dreamoracle/internal/api/controllers"
	"dreamoracle/internal/infra"
	"dreamoracle/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		ai_fx.Module,

		account_fx.Module,
		credits_fx.Module,
		dream_fx.Module,
		interpretation_fx.Module,
		symbol_fx.Module,
		analytics_fx.Module,
		export_fx.Module,
		plan_fx.Module,
		payment_fx.Module,
		controllers_fx.Module,

		fx.Invoke(RunMigrations),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func RunMigrations(db *gorm.DB) {
	if err := infra.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	dreamController *controllers.DreamController,
	interpretationController *controllers.InterpretationController,
	creditsController *controllers.CreditsController,
	symbolController *controllers.SymbolController,
	analyticsController *controllers.AnalyticsController,
	exportController *controllers.ExportController,
	planController *controllers.PlanController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController,
		dreamController,
		interpretationController,
		creditsController,
		symbolController,
		analyticsController,
		exportController,
		planController,
		paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	dreamController *controllers.DreamController,
	interpretationController *controllers.InterpretationController,
	creditsController *controllers.CreditsController,
	symbolController *controllers.SymbolController,
	analyticsController *controllers.AnalyticsController,
	exportController *controllers.ExportController,
	planController *controllers.PlanController,
	paymentController *controllers.PaymentController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/forgot-password", accountController.ForgotPassword)
	accounts.POST("/verify-otp", accountController.VerifyOtpToken)
	accounts.POST("/reset-password", accountController.ResetPasswordWithOtp)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)
	accounts.GET("/all", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"), accountController.GetAllAccounts)

	dreams := r.Group("/dreams", middleware.JWTAuthMiddleware())
	dreams.POST("", dreamController.CreateDream)
	dreams.GET("", dreamController.ListDreams)
	dreams.GET("/:id", dreamController.GetDream)
	dreams.PUT("/:id", dreamController.UpdateDream)
	dreams.DELETE("/:id", dreamController.DeleteDream)
	dreams.POST("/:id/interpretation", interpretationController.InterpretDream)

	transcriptions := r.Group("/transcriptions", middleware.JWTAuthMiddleware())
	transcriptions.POST("", interpretationController.Transcribe)

	credits := r.Group("/credits", middleware.JWTAuthMiddleware())
	credits.GET("", creditsController.GetUsageStats)
	credits.GET("/check", creditsController.CheckCredits)

	symbols := r.Group("/symbols", middleware.JWTAuthMiddleware())
	symbols.GET("", symbolController.SearchSymbols)

	analytics := r.Group("/analytics", middleware.JWTAuthMiddleware())
	analytics.GET("", analyticsController.GetAnalytics)

	export := r.Group("/export", middleware.JWTAuthMiddleware())
	export.GET("", exportController.ExportJournal)

	plans := r.Group("/plans")
	plans.GET("", planController.GetPlans)

	payments := r.Group("/payments")
	payments.POST("/create-checkout", middleware.JWTAuthMiddleware(), paymentController.CreateCheckout)
	payments.POST("/webhook", paymentController.HandleWebhook)
}
