package main

import (
	"context"
	"log/slog"
	"os"

	"ratinity/config"
	"ratinity/internal/delivery"
	"ratinity/internal/delivery/http"
	"ratinity/internal/delivery/http/middleware"
	"ratinity/internal/delivery/http/router/handler"
	"ratinity/internal/domain/repository"
	"ratinity/internal/domain/service"
	"ratinity/internal/infra/auth"
	"ratinity/internal/infra/cache"
	logs "ratinity/internal/infra/log"
	"ratinity/internal/infra/persistence/memory"
	"ratinity/internal/infra/persistence/postgres"
	"ratinity/internal/infra/pubsub"
	"ratinity/internal/infra/qrcode"
	"ratinity/internal/jobs"
	"ratinity/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			jobs.RegisterReconcileJob,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		cache.NewStatsCache,
		pubsub.NewEventPublisher,
	)
}

// persistenceParams collects what both storage backends need.
type persistenceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	Hasher service.PasswordHasher
}

// persistenceResult exposes a full repository set regardless of backend.
type persistenceResult struct {
	fx.Out

	TxManager      repository.TransactionManager
	AccountRepo    repository.AccountRepository
	StoreRepo      repository.StoreRepository
	RatingRepo     repository.RatingRepository
	CredentialRepo repository.CredentialRepository
}

// newPersistence picks the storage backend: PostgreSQL when configured,
// otherwise the seeded in-memory store.
func newPersistence(params persistenceParams) (persistenceResult, error) {
	if params.Config.Postgres == nil {
		db := memory.NewDB()

		params.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return memory.Seed(ctx, db, params.Hasher)
			},
		})
		params.Logger.Info("Using in-memory storage backend")

		return persistenceResult{
			TxManager:      memory.NewTransactionManager(db),
			AccountRepo:    memory.NewAccountRepository(db),
			StoreRepo:      memory.NewStoreRepository(db),
			RatingRepo:     memory.NewRatingRepository(db),
			CredentialRepo: memory.NewCredentialRepository(db),
		}, nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return persistenceResult{}, errors.Wrap(err, "failed to initialize PostgreSQL backend")
	}

	txManager := postgres.NewTransactionManager(db)

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := postgres.AutoMigrate(db); err != nil {
				return err
			}

			return postgres.SeedAdmin(ctx, txManager, params.Hasher, params.Config, params.Logger)
		},
	})

	return persistenceResult{
		TxManager:      txManager,
		AccountRepo:    postgres.NewAccountRepository(db),
		StoreRepo:      postgres.NewStoreRepository(db),
		RatingRepo:     postgres.NewRatingRepository(db),
		CredentialRepo: postgres.NewCredentialRepository(db),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newPersistence,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewAccountService,
			impl.NewStoreService,
			impl.NewRatingService,
			impl.NewDashboardService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewAccountHandler,
			handler.NewStoreHandler,
			handler.NewRatingHandler,
			handler.NewDashboardHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
