package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/prasetyowira/credential-core/config"
	"github.com/prasetyowira/credential-core/db"
	audithandler "github.com/prasetyowira/credential-core/internal/audit/handler"
	auditrepo "github.com/prasetyowira/credential-core/internal/audit/repository/postgres"
	auditservice "github.com/prasetyowira/credential-core/internal/audit/service"
	credhandler "github.com/prasetyowira/credential-core/internal/credential/handler"
	credrepo "github.com/prasetyowira/credential-core/internal/credential/repository/postgres"
	credservice "github.com/prasetyowira/credential-core/internal/credential/service"
	"github.com/prasetyowira/credential-core/internal/event"
	"github.com/prasetyowira/credential-core/internal/password"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	tokenRepo := credrepo.NewRefreshTokenRepository(pool)
	codeRepo := credrepo.NewVerificationCodeRepository(pool)
	eventRepo := auditrepo.NewSecurityEventRepository(pool)

	hub := auditservice.NewHub(logger)
	publisher := auditservice.NewPublisher(eventRepo, hub, logger)
	reader := auditservice.NewReader(eventRepo, cfg.AuditPageSizeCap)

	dispatcher := event.NewDispatcher(logger)
	auditservice.NewRecorder(publisher).RegisterWith(dispatcher)

	signer := credservice.NewJWTSigner(cfg.AccessTokenSecret, cfg.AccessExpiryMin)
	tokenLedger := credservice.NewRefreshTokenLedger(tokenRepo, signer, cfg.RefreshExpiryMin, cfg.MaxLineageWalkDepth, logger)
	codeLedger := credservice.NewVerificationCodeLedger(codeRepo, credservice.CodeTTLs{
		Registration:   time.Duration(cfg.RegistrationCodeTTLMin) * time.Minute,
		PasswordReset:  time.Duration(cfg.PasswordResetCodeTTLMin) * time.Minute,
		TwoFactorSetup: time.Duration(cfg.TwoFactorCodeTTLMin) * time.Minute,
		Generic:        time.Duration(cfg.GenericCodeTTLMin) * time.Minute,
	}, logger)

	hasher := password.NewHasher(cfg.BcryptCost)

	app := fiber.New()
	credhandler.RegisterRoutes(app, credhandler.NewCredentialHandler(tokenLedger, codeLedger, dispatcher))
	credhandler.RegisterPasswordRoutes(app, credhandler.NewPasswordHandler(hasher))
	audithandler.RegisterRoutes(app, audithandler.NewAuditHandler(reader))

	logger.Info("credential core listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
