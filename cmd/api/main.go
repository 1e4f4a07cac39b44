package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	domaininv "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
	"github.com/jhoicas/estoque-api/pkg/telemetry"
)

// repos agrupa los puertos de persistencia del driver elegido.
type repos struct {
	tx           inventory.TxRunner
	products     repository.ProductRepository
	productTypes repository.ProductTypeRepository
	movements    repository.StockMovementRepository
	reports      repository.ReportRepository
	pool         *pgxpool.Pool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.Telemetry.ServiceVersion,
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar OpenTelemetry")
	}

	r, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	if r.pool != nil {
		defer r.pool.Close()
	}

	// Publicación: log + hub WebSocket, y Kafka si está habilitado.
	hub := messaging.NewHub(log)
	go hub.Run(ctx)
	publishers := messaging.MultiPublisher{messaging.NewLogPublisher(log), hub}
	var kafkaPub *messaging.KafkaPublisher
	if cfg.Kafka.Enabled {
		kafkaPub = messaging.NewKafkaPublisher(
			messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.BatchTimeout, cfg.Kafka.WriteTimeout),
			messaging.Topics{
				Movements: cfg.Kafka.MovementTopic,
				Alerts:    cfg.Kafka.AlertTopic,
				Products:  cfg.Kafka.ProductTopic,
			},
		)
		publishers = append(publishers, kafkaPub)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("publicación Kafka habilitada")
	}
	notifier := inventory.NewNotifier(publishers, cfg.Inventory.NotifierTimeout, log)

	thresholds := domaininv.Thresholds{
		Critical: cfg.Inventory.CriticalThreshold,
		Low:      cfg.Inventory.LowThreshold,
	}
	postMovementUC := inventory.NewPostMovementUseCase(r.tx, r.productTypes, notifier, thresholds)
	ledgerUC := inventory.NewLedgerQueryUseCase(r.movements)
	replenishmentUC := inventory.NewReplenishmentUseCase(r.products, r.reports, thresholds)
	productUC := usecase.NewProductUseCase(r.products, r.productTypes, r.movements, notifier)
	productTypeUC := usecase.NewProductTypeUseCase(r.productTypes, r.products)
	reportUC := usecase.NewReportUseCase(r.reports, r.productTypes, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Estoque API",
		}))
	}

	var db httpRouter.Pinger
	if r.pool != nil {
		db = r.pool
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		PostMovement:  postMovementUC,
		Ledger:        ledgerUC,
		Replenishment: replenishmentUC,
		ProductUC:     productUC,
		ProductTypeUC: productTypeUC,
		ReportUC:      reportUC,
		Hub:           hub,
		DB:            db,
		Storage:       cfg.App.StorageDriver,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		Logger:        log,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: /api sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if kafkaPub != nil {
		if err := kafkaPub.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar writer Kafka")
		}
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de OpenTelemetry")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL (aplicando migraciones) o el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config) (repos, error) {
	switch cfg.App.StorageDriver {
	case "memory":
		store := memory.NewStore()
		return repos{
			tx:           store,
			products:     store.Products(),
			productTypes: store.ProductTypes(),
			movements:    store.Movements(),
			reports:      store.Reports(),
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return repos{}, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return repos{}, err
		}
		return repos{
			tx:           postgres.NewTxRunner(pool),
			products:     postgres.NewProductRepository(pool),
			productTypes: postgres.NewProductTypeRepository(pool),
			movements:    postgres.NewStockMovementRepository(pool),
			reports:      postgres.NewReportRepository(pool),
			pool:         pool,
		}, nil
	}
	return repos{}, errors.New("driver de almacenamiento desconocido: " + cfg.App.StorageDriver)
}
