package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vessel-orders/internal/authz"
	"vessel-orders/internal/jobs"
	"vessel-orders/internal/listeners"
	"vessel-orders/internal/repositories"
	"vessel-orders/internal/routes"
	"vessel-orders/internal/services"
	"vessel-orders/pkg/config"
	"vessel-orders/pkg/customvalidator"
	"vessel-orders/pkg/database/postgresql"
	apperrors "vessel-orders/pkg/errors"
	"vessel-orders/pkg/eventbus"
	"vessel-orders/pkg/filestorage"
	"vessel-orders/pkg/middleware"
	"vessel-orders/pkg/service"
	"vessel-orders/pkg/utils"
	"vessel-orders/pkg/websocket"
)

const shutdownTimeout = 15 * time.Second

var serveMigrate bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply pending migrations before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Connects to PostgreSQL and Redis, starts the overdue scan and the\nnotification hub, and serves the REST and websocket API until SIGINT or SIGTERM.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if serveMigrate {
		if err := postgresql.Migrate(ctx, pool, postgresql.MigrateUp); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Address, err)
	}

	storage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadsDir)
	if err != nil {
		return err
	}

	hub := websocket.NewHub(logger.Named("ws"))
	go hub.Run(ctx)

	bus := eventbus.New(logger.Named("events"))
	listeners.NewNotificationListener(hub, logger.Named("notify")).Register(bus)

	svc := buildServices(cfg, logger, pool, redisClient, storage, bus)
	svc.Hub = hub

	orderRepo := repositories.NewServiceOrderRepository(pool)
	overdue := jobs.NewOverdueJob(orderRepo, bus, cfg.Jobs.OverdueScanSpec, logger.Named("jobs"))
	if err := overdue.Start(); err != nil {
		return err
	}

	e, err := newEcho(cfg, logger)
	if err != nil {
		return err
	}
	routes.InitRouter(e, svc, routes.NewLoggers(logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	overdue.Stop(shutdownCtx)
	bus.Wait()
	return nil
}

func buildServices(
	cfg *config.Config,
	logger *zap.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	storage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
) *routes.Services {
	domain := cfg.Organization.EmailDomain
	engine := authz.NewEngine(domain)
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	userRepo := repositories.NewUserRepository(pool)
	orderRepo := repositories.NewServiceOrderRepository(pool)
	historyRepo := repositories.NewOrderHistoryRepository(pool)
	prefRepo := repositories.NewPreferenceRepository(pool)
	txManager := repositories.NewTxManager(pool)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	identity := services.NewIdentityLoader(userRepo)

	return &routes.Services{
		Auth:       services.NewAuthService(userRepo, cacheRepo, jwtSvc, identity, logger.Named("auth"), cfg.Auth, domain),
		User:       services.NewUserService(userRepo, identity, logger.Named("user"), domain, cfg.Organization.RootAdminEmail),
		Order:      services.NewOrderService(orderRepo, historyRepo, userRepo, txManager, storage, engine, identity, bus, logger.Named("order")),
		Attachment: services.NewAttachmentService(storage, engine, identity, logger.Named("upload")),
		Preference: services.NewPreferenceService(prefRepo, cacheRepo, identity, logger.Named("preferences"), cfg.Preferences.CacheTTL),
		Report:     services.NewReportService(orderRepo, engine, identity, logger.Named("report")),
		JWT:        jwtSvc,
		WSOrigins:  cfg.Server.AllowedOrigins,
	}
}

func newEcho(cfg *config.Config, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "", err), logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))
	e.Use(middleware.RequestLogger(logger.Named("http")))

	uploads, err := filepath.Abs(cfg.Server.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads directory: %w", err)
	}
	e.Static("/uploads", uploads)

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v, cfg.Organization.EmailDomain); err != nil {
		return nil, fmt.Errorf("register validations: %w", err)
	}
	e.Validator = utils.NewValidator(v)
	return e, nil
}
