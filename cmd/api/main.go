package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiyas-dx/Project/internal/bootstrap"
	"github.com/shiyas-dx/Project/internal/config"
	"github.com/shiyas-dx/Project/internal/handler"
	"github.com/shiyas-dx/Project/internal/infra/db"
	infraRepo "github.com/shiyas-dx/Project/internal/infra/repository"
	"github.com/shiyas-dx/Project/internal/infra/token"
	"github.com/shiyas-dx/Project/internal/logger"
	"github.com/shiyas-dx/Project/internal/mailer"
	"github.com/shiyas-dx/Project/internal/metrics"
	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/realtime"
	"github.com/shiyas-dx/Project/internal/server"
	"github.com/shiyas-dx/Project/internal/usecase"
	auth "github.com/shiyas-dx/Project/internal/usecase/auth_usecase"
	"github.com/shiyas-dx/Project/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.GoEnv, cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Connect(cfg.DSN(), log)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	// repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	outboxRepo := infraRepo.NewOutboxGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.ActivationTokenTTL)
	idGen := auth.UUIDGenerator{}
	clock := auth.SystemClock{}

	if _, err := bootstrap.EnsureSuperuser(ctx, userRepo, hasher, bootstrap.SuperuserInput{
		Username: cfg.SuperuserUsername,
		Email:    cfg.SuperuserEmail,
		Password: cfg.SuperuserPassword,
	}, log); err != nil {
		return err
	}
	if n, err := bootstrap.SeedCatalog(ctx, productRepo, cfg.SeedFile); err != nil {
		return err
	} else if n > 0 {
		log.WithField("products", n).Info("catalog seeded")
	}

	// events
	m := metrics.New()
	hub := realtime.NewHub(log, cfg.CORSOrigins)
	defer hub.Close()
	events := usecase.OrderEventPublishers{m, hub}

	policy := usecase.OrderPolicy{
		VerifyPrices:   cfg.OrderPricePolicy == config.PricePolicyCatalog,
		DecrementStock: cfg.OrderDecrementStock,
	}

	// usecases
	registerUC := auth.NewRegisterUserUsecase(userRepo, txm, hasher, tokens, clock, cfg.FEURL)
	activateUC := auth.NewActivateAccountUsecase(userRepo, txm, tokens, clock)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, tokens, idGen, clock, cfg.RefreshTokenTTL)
	refreshUC := auth.NewRefreshTokenUsecase(userRepo, rtRepo, tokens, idGen, clock, cfg.RefreshTokenTTL)
	logoutUC := auth.NewLogoutUsecase(rtRepo)

	productUC := usecase.NewProductUsecase(txm, productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, policy, events)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, orderItemRepo, userRepo, policy, events)
	adminUserUC := usecase.NewAdminUserUsecase(txm, userRepo, orderRepo, orderItemRepo)
	dashboardUC := usecase.NewDashboardUsecase(userRepo, productRepo, orderRepo, orderItemRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	// outbox worker
	var mail mailer.Mailer = mailer.NewLogMailer(log)
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}
	outbox := worker.NewEmailOutboxWorker(outboxRepo, mail, log.WithField("component", "email_outbox"), m, cfg.OutboxMaxAttempts, cfg.OutboxBatchSize)
	if err := outbox.Start(cfg.OutboxInterval); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		outbox.Stop(stopCtx)
	}()

	// http
	userChain := []echo.MiddlewareFunc{middleware.AuthJWT(tokens), middleware.ActiveUserGuard(userRepo)}
	guards := handler.Guards{
		User:      userChain,
		Admin:     append(append([]echo.MiddlewareFunc{}, userChain...), middleware.AdminGuard()),
		RateLimit: []echo.MiddlewareFunc{middleware.RateLimit(middleware.NewIPRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))},
	}

	e := server.New(cfg, log, m)
	server.RegisterRoutes(e, server.Handlers{
		Auth:         handler.NewAuthHandler(registerUC, activateUC, loginUC, refreshUC, logoutUC),
		Products:     handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Wishlist:     handler.NewWishlistHandler(wishlistUC),
		Orders:       handler.NewOrderHandler(orderUC, adminOrderUC),
		AdminOrders:  handler.NewAdminOrderHandler(adminOrderUC, hub),
		AdminUsers:   handler.NewAdminUserHandler(adminUserUC),
		Admin:        handler.NewAdminHandler(dashboardUC, auditUC),
		Metrics:      m.Handler(),
	}, guards)

	return server.Run(ctx, e, cfg.Addr(), log)
}
