package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"vessel-orders/internal/controllers"
	"vessel-orders/internal/services"
	"vessel-orders/pkg/middleware"
	"vessel-orders/pkg/service"
	"vessel-orders/pkg/websocket"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	Order *zap.Logger
	User  *zap.Logger
}

// NewLoggers names a child logger per area of the API.
func NewLoggers(base *zap.Logger) *Loggers {
	return &Loggers{
		Main:  base,
		Auth:  base.Named("auth"),
		Order: base.Named("order"),
		User:  base.Named("user"),
	}
}

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth       services.AuthServiceInterface
	User       services.UserServiceInterface
	Order      services.OrderServiceInterface
	Attachment services.AttachmentServiceInterface
	Preference services.PreferenceServiceInterface
	Report     services.ReportServiceInterface
	Hub        *websocket.Hub
	JWT        service.JWTService
	WSOrigins  []string
}

func InitRouter(e *echo.Echo, svc *Services, loggers *Loggers) {
	loggers.Main.Info("registering routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(svc.JWT, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, controllers.NewAuthController(svc.Auth, svc.User, loggers.Auth))
	runUserRouter(secureGroup, controllers.NewUserController(svc.User, loggers.User))
	runOrderRouter(secureGroup, controllers.NewOrderController(svc.Order, loggers.Order))
	runUploadRouter(secureGroup, controllers.NewUploadController(svc.Attachment, loggers.Main))
	runPreferenceRouter(secureGroup, controllers.NewPreferenceController(svc.Preference, loggers.Main))
	runReportRouter(secureGroup, controllers.NewReportController(svc.Report, loggers.Order))
	if svc.Hub != nil {
		runWebSocketRouter(api, controllers.NewWebSocketController(svc.Hub, svc.JWT, svc.WSOrigins, loggers.Main))
	}

	loggers.Main.Info("routes registered", zap.Int("count", len(e.Routes())))
}
