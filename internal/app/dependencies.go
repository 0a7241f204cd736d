package app

import (
	"github.com/LuBeneventi/lvlupreact-2/internal/config"
	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
	"github.com/LuBeneventi/lvlupreact-2/internal/handlers"
	"github.com/LuBeneventi/lvlupreact-2/internal/repository/postgres"
	"github.com/LuBeneventi/lvlupreact-2/internal/service"
	"github.com/LuBeneventi/lvlupreact-2/internal/utils/jwt"
	"github.com/LuBeneventi/lvlupreact-2/internal/utils/password"
	"github.com/LuBeneventi/lvlupreact-2/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// repositories holds every repository of the application.
type repositories struct {
	users    domain.UserRepository
	products domain.ProductRepository
	rewards  domain.RewardRepository
	orders   domain.OrderRepository
	points   domain.PointsRepository
}

// services holds every service of the application.
type services struct {
	auth     *service.AuthService
	catalog  *service.CatalogService
	rewards  *service.RewardService
	checkout *service.CheckoutService
	orders   *service.OrderService
}

// handlerSet holds every HTTP handler of the application.
type handlerSet struct {
	auth     *handlers.AuthHandler
	catalog  *handlers.CatalogHandler
	rewards  *handlers.RewardsHandler
	checkout *handlers.CheckoutHandler
	orders   *handlers.OrdersHandler
	health   *handlers.HealthHandler
}

// dependencies wires repositories, services and handlers together.
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
	workerPool *worker.Pool
}

// initDependencies builds the full dependency graph.
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	repos := &repositories{
		users:    postgres.NewUserRepository(dbPool),
		products: postgres.NewProductRepository(dbPool),
		rewards:  postgres.NewRewardRepository(dbPool),
		orders:   postgres.NewOrderRepository(dbPool),
		points:   postgres.NewPointsRepository(dbPool),
	}

	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	authServiceConfig := service.AuthServiceConfig{
		MinPasswordLength: cfg.MinPasswordLength,
	}
	svcs := &services{
		auth:     service.NewAuthService(repos.users, repos.points, passwordHasher, jwtManager, authServiceConfig, logger),
		catalog:  service.NewCatalogService(repos.products),
		rewards:  service.NewRewardService(repos.rewards, repos.points),
		checkout: service.NewCheckoutService(repos.users, repos.products, repos.orders, repos.points, logger),
		orders:   service.NewOrderService(repos.orders),
	}

	hdlrs := &handlerSet{
		auth:     handlers.NewAuthHandler(svcs.auth, logger),
		catalog:  handlers.NewCatalogHandler(svcs.catalog, logger),
		rewards:  handlers.NewRewardsHandler(svcs.rewards, logger),
		checkout: handlers.NewCheckoutHandler(svcs.checkout, logger),
		orders:   handlers.NewOrdersHandler(svcs.orders, logger),
		health:   handlers.NewHealthHandler(dbPool, logger),
	}

	workerPoolConfig := worker.PoolConfig{
		Workers:      cfg.SettlementWorkers,
		QueueSize:    cfg.SettlementQueueSize,
		ScanInterval: cfg.SettlementScanInterval,
	}
	workerPool := worker.NewPool(workerPoolConfig, repos.orders, svcs.checkout, logger)

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		workerPool: workerPool,
	}
}
