package cmd

import (
	"fmt"
	"net/http"
	"os"

	"comandas/api"
	apicash "comandas/api/cashjournal"
	apicatalog "comandas/api/catalog"
	"comandas/api/health"
	apiorder "comandas/api/order"
	apipromotion "comandas/api/promotion"
	apitable "comandas/api/table"
	"comandas/api/middleware"
	"comandas/application/cashapp"
	"comandas/application/catalogapp"
	"comandas/application/orderapp"
	"comandas/application/promotionapp"
	"comandas/application/tableapp"
	"comandas/config"
	"comandas/domain/shared"
	"comandas/infrastructure/persistence/mysql"
	"comandas/infrastructure/persistence/retry"
	"comandas/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AppBuilder struct {
	cfg          *config.Config
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:          cfg,
		controllers:  []api.ControllerRegister{},
		middlewares:  []api.MiddlewareRegister{},
		customRoutes: []api.Route{},
	}
}
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}
func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db, repos, uowFactory := b.initMySQLPersistence()

	locals := shared.CtxLocalProvider{}
	clock := shared.SystemClock{}

	tableSvc := tableapp.NewService(repos.tables, uowFactory, locals)
	categorySvc := catalogapp.NewCategoryService(repos.categories, uowFactory, locals)
	productSvc := catalogapp.NewProductService(repos.products, uowFactory, locals)
	promotionSvc := promotionapp.NewService(repos.promotions, repos.products, uowFactory, locals, clock)
	orderSvc := orderapp.NewService(repos.orders, repos.tables, repos.products, repos.promotions, repos.stockMoves, uowFactory, locals, clock)
	cashSvc := cashapp.NewService(repos.journals, repos.cashMoves, repos.orders, repos.tables, uowFactory, locals, clock)

	if !b.hasHealthController() {
		b.controllers = append(b.controllers, b.newHealthController(db))
	}
	if !b.hasTableController() {
		b.controllers = append(b.controllers, apitable.NewController(tableSvc))
	}
	if !b.hasCatalogController() {
		b.controllers = append(b.controllers, apicatalog.NewController(categorySvc, productSvc))
	}
	if !b.hasPromotionController() {
		b.controllers = append(b.controllers, apipromotion.NewController(promotionSvc))
	}
	if !b.hasOrderController() {
		b.controllers = append(b.controllers, apiorder.NewController(orderSvc))
	}
	if !b.hasCashController() {
		b.controllers = append(b.controllers, apicash.NewController(cashSvc))
	}

	b.middlewares = append([]api.MiddlewareRegister{
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(&b.cfg.CORS),
		middleware.RateLimitMiddleware(&b.cfg.Server.RateLimit),
		middleware.TenantMiddleware(&b.cfg.Tenant),
	}, b.middlewares...)

	router := api.NewRouter(b.cfg, b.controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()
	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	app := &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
	}

	return app
}

// repositorySet bundles every GORM repository the application services need,
// keeping initMySQLPersistence's return signature manageable as the number
// of bounded contexts grows.
type repositorySet struct {
	tables     *mysql.TableRepository
	categories *mysql.CategoryRepository
	products   *mysql.ProductRepository
	promotions *mysql.PromotionRepository
	orders     *mysql.OrderRepository
	stockMoves *mysql.StockMovementRepository
	cashMoves  *mysql.CashMovementRepository
	journals   *mysql.CashJournalRepository
}

func (b *AppBuilder) initMySQLPersistence() (*gorm.DB, *repositorySet, shared.UnitOfWorkFactory) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(b.cfg).Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	if err := mysql.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to auto migrate schema", zap.Error(err))
	}

	repos := &repositorySet{
		tables:     mysql.NewTableRepository(db),
		categories: mysql.NewCategoryRepository(db),
		products:   mysql.NewProductRepository(db),
		promotions: mysql.NewPromotionRepository(db),
		orders:     mysql.NewOrderRepository(db),
		stockMoves: mysql.NewStockMovementRepository(db),
		cashMoves:  mysql.NewCashMovementRepository(db),
		journals:   mysql.NewCashJournalRepository(db),
	}

	uowFactory := mysql.NewUnitOfWorkFactory(
		db,
		retry.FromAppConfig(b.cfg),
	)

	return db, repos, uowFactory
}

func (b *AppBuilder) hasTableController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apitable.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasCatalogController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apicatalog.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasPromotionController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apipromotion.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasOrderController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apiorder.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasCashController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*apicash.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) hasHealthController() bool {
	for _, c := range b.controllers {
		if _, ok := c.(*health.Controller); ok {
			return true
		}
	}
	return false
}

func (b *AppBuilder) newHealthController(db *gorm.DB) *health.Controller {
	var healthDB interface{}
	if db != nil {
		sqlDB, _ := db.DB()
		healthDB = sqlDB
	}
	return health.NewController(b.cfg, healthDB)
}
