package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/billing"
	"github.com/jhoicas/marketplace-api/internal/application/permission"
	"github.com/jhoicas/marketplace-api/internal/application/subuser"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	infracache "github.com/jhoicas/marketplace-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/marketplace-api/internal/infrastructure/pdf"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/marketplace-api/internal/interfaces/http"
	"github.com/jhoicas/marketplace-api/pkg/config"
	"github.com/jhoicas/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin REDIS_ADDR el cache degrada a no-op.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache deshabilitado")
			redisClient = nil
		}
	}
	permCache := infracache.NewPermissionCache(redisClient, 5*time.Minute, log)

	userRepo := postgres.NewUserRepository(pool)
	subUserRepo := postgres.NewSubUserRepository(pool)
	subUserPermRepo := postgres.NewSubUserMenuPermissionRepository(pool)
	storePermRepo := postgres.NewStoreMenuPermissionRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	formatRepo := postgres.NewInvoiceFormatRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	subUserUC := subuser.NewUseCase(txRunner, subUserRepo, entity.SubUserMenuRegistry())

	subUserAuthz := permission.NewAuthorizer(
		subUserPermRepo, entity.SubUserMenuRegistry(),
		postgres.NewSubUserPermissionTxRunner(pool), permCache, "perms:subuser:",
	)
	storeAuthz := permission.NewAuthorizer(
		storePermRepo, entity.StoreMenuRegistry(),
		postgres.NewStorePermissionTxRunner(pool), permCache, "perms:store:",
	)
	subUserPerms := permission.NewSubUserPermissions(subUserRepo, subUserAuthz)
	storePerms := permission.NewStorePermissions(storeRepo, storeAuthz)

	formatUC := billing.NewInvoiceFormatUseCase(formatRepo, storeRepo, vendorRepo, txRunner)
	billUC := billing.NewBillUseCase(billRepo, formatRepo, storeRepo, userRepo)
	billPDFUC := billing.NewBillPDFUseCase(billRepo, formatRepo, infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewUseCase(userRepo, subUserRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		SubUserUC:     subUserUC,
		SubUserPerms:  subUserPerms,
		StorePerms:    storePerms,
		FormatUC:      formatUC,
		BillUC:        billUC,
		BillPDFUC:     billPDFUC,
		JWTSecret:     cfg.JWT.Secret,
		EnableMetrics: true,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
