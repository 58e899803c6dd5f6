package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/elevate-digital/bizdesk/internal/api"
	"github.com/elevate-digital/bizdesk/internal/core/service"
	"github.com/elevate-digital/bizdesk/internal/infrastructure/config"
	mongodb "github.com/elevate-digital/bizdesk/internal/infrastructure/db/mongo"
	redisdb "github.com/elevate-digital/bizdesk/internal/infrastructure/db/redis"
	"github.com/elevate-digital/bizdesk/internal/infrastructure/identity"
	"github.com/elevate-digital/bizdesk/internal/infrastructure/mail"
	"github.com/elevate-digital/bizdesk/internal/infrastructure/render"
	"github.com/elevate-digital/bizdesk/internal/security"
	"github.com/elevate-digital/bizdesk/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	key, err := cfg.CipherKey()
	if err != nil {
		log.Fatal().Err(err).Msg("encryption key error")
	}
	cipher, err := security.NewFieldCipher(key)
	if err != nil {
		log.Fatal().Err(err).Msg("field cipher error")
	}

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection error")
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), mongoClient); err != nil {
			log.Error().Err(err).Msg("mongo disconnect error")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	codec := mongodb.NewFieldCodec(cipher, logger.Component("codec"))
	clientRepo := mongodb.NewClientRepository(db, codec, cfg.OwnerID)
	employeeRepo := mongodb.NewEmployeeRepository(db, codec, cfg.OwnerID)
	quotationRepo := mongodb.NewQuotationRepository(db, codec, cfg.OwnerID)
	invoiceRepo := mongodb.NewInvoiceRepository(db, codec, cfg.OwnerID)
	paymentRepo := mongodb.NewPaymentRepository(db, codec, cfg.OwnerID)
	userRepo := mongodb.NewUserRepository(db)
	counter := mongodb.NewQuoteCounter(db, cfg.OwnerID)

	indexed := []interface {
		EnsureIndexes(ctx context.Context) error
	}{clientRepo, employeeRepo, quotationRepo, invoiceRepo, paymentRepo, userRepo}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation error")
		}
	}

	// --- Delivery infrastructure ---
	renderer := render.NewRenderer(render.NewGotenbergClient(cfg.GotenbergURL), logger.Component("render"))
	mailer, err := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client error")
	}
	guard := redisdb.NewTokenGuard(rdb)
	provider := identity.NewProvider(userRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Services ---
	svcs := api.Services{
		Clients:   service.NewClientService(clientRepo, logger.Component("clients")),
		Employees: service.NewEmployeeService(employeeRepo, provider, logger.Component("employees")),
		Quotations: service.NewQuotationService(
			quotationRepo, counter, renderer, mailer, guard, cfg.PublicBaseURL, logger.Component("quotations")),
		Invoices: service.NewInvoiceService(
			invoiceRepo, paymentRepo, renderer, mailer, guard, cfg.PublicBaseURL, logger.Component("invoices")),
		Payments: service.NewPaymentService(paymentRepo, logger.Component("payments")),
		Dashboard: service.NewDashboardService(
			clientRepo, employeeRepo, quotationRepo, invoiceRepo, paymentRepo, logger.Component("dashboard")),
		Identity: provider,
	}

	e := api.NewRouter(svcs, db, rdb, cfg.JWTSecret)
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(logger.Component("http"))

	// --- Start and wait for shutdown ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
