package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-portal/internal/controllers"
	"maintenance-portal/internal/listeners"
	"maintenance-portal/internal/repositories"
	"maintenance-portal/internal/services"
	"maintenance-portal/pkg/config"
	"maintenance-portal/pkg/eventbus"
	"maintenance-portal/pkg/middleware"
	"maintenance-portal/pkg/service"
)

// Deps - внешние зависимости маршрутов: клиент API, кэш сессий и шина событий.
type Deps struct {
	API    repositories.API
	Cache  repositories.CacheRepositoryInterface
	Bus    *eventbus.Bus
	Config *config.Config
	Logger *zap.Logger
}

func InitRouter(e *echo.Echo, deps Deps) {
	logger := deps.Logger
	cfg := deps.Config
	logger.Info("InitRouter: création des routes")

	// --- 1. РЕПОЗИТОРИИ ---
	authRepo := repositories.NewAuthRepository(deps.API)
	sessionRepo := repositories.NewSessionRepository(deps.Cache)
	demandeRepo := repositories.NewDemandeRepository(deps.API, logger)
	interventionRepo := repositories.NewInterventionRepository(deps.API, logger)
	composantRepo := repositories.NewComposantRepository(deps.API, logger)
	equipementRepo := repositories.NewEquipementRepository(deps.API, logger)
	userRepo := repositories.NewUserRepository(deps.API, logger)
	dashboardRepo := repositories.NewDashboardRepository(deps.API)
	notificationRepo := repositories.NewNotificationRepository(deps.API)

	// --- 2. СЕРВИСЫ ---
	jwtSvc := service.NewJWTService(cfg.Session.SecretKey, cfg.Session.TTL)
	authService := services.NewAuthService(authRepo, sessionRepo, jwtSvc, logger.Named("auth"))
	demandeService := services.NewDemandeService(demandeRepo, interventionRepo, deps.Bus, logger.Named("demande"))
	interventionService := services.NewInterventionService(interventionRepo, demandeRepo, equipementRepo, deps.Bus, logger.Named("intervention"))
	composantService := services.NewComposantService(composantRepo, logger)
	equipementService := services.NewEquipementService(equipementRepo, logger)
	userService := services.NewUserService(userRepo, logger.Named("user"))
	dashboardService := services.NewDashboardService(dashboardRepo, logger)

	listeners.NewNotificationListener(notificationRepo, cfg.Notifications, logger.Named("notification")).Register(deps.Bus)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, cfg.Session, logger)
	pageCtrl := controllers.NewPageController(dashboardService, logger)
	demandeCtrl := controllers.NewDemandeController(demandeService, logger)
	interventionCtrl := controllers.NewInterventionController(interventionService, composantService, userService, logger)
	composantCtrl := controllers.NewComposantController(composantService, logger)
	equipementCtrl := controllers.NewEquipementController(equipementService, logger)
	userCtrl := controllers.NewUserController(userService, logger)

	// --- 4. РОУТЕРЫ ---
	// Middleware вешаются на маршруты, а не на группы: группа с префиксом ""
	// перехватила бы и ответ 404 для неизвестных адресов.
	authMW := middleware.NewAuthMiddleware(authService, cfg.Session, logger.Named("auth"))
	public := []echo.MiddlewareFunc{authMW.Optional}
	secure := []echo.MiddlewareFunc{authMW.Auth}
	admin := []echo.MiddlewareFunc{authMW.Auth, authMW.RequireStaff}

	runPublicRouter(e, authCtrl, pageCtrl, demandeCtrl, public)
	runDemandeRouter(e, demandeCtrl, secure)
	runInterventionRouter(e, interventionCtrl, secure)
	runComposantRouter(e, composantCtrl, secure)
	runEquipementRouter(e, equipementCtrl, secure)
	runUserRouter(e, userCtrl, admin)

	e.GET("/", pageCtrl.Home, secure...)
	e.GET("/profile", authCtrl.Profile, secure...)
	e.POST("/logout", authCtrl.Logout, public...)
	e.GET("/dashboard", pageCtrl.Dashboard, admin...)
	e.RouteNotFound("/*", pageCtrl.NotFound, public...)

	logger.Info("InitRouter: routes créées")
}

func runPublicRouter(e *echo.Echo, authCtrl *controllers.AuthController, pageCtrl *controllers.PageController, demandeCtrl *controllers.DemandeController, m []echo.MiddlewareFunc) {
	e.GET("/login", authCtrl.LoginForm, m...)
	e.POST("/login", authCtrl.Login, m...)
	e.GET("/faq", pageCtrl.FAQ, m...)
	e.GET("/demandes/new", demandeCtrl.NewDemande, m...)
	e.POST("/demandes/new", demandeCtrl.CreateDemande, m...)
}

func runDemandeRouter(e *echo.Echo, ctrl *controllers.DemandeController, m []echo.MiddlewareFunc) {
	e.GET("/demandes", ctrl.GetDemandes, m...)
	e.GET("/demandes/export.xlsx", ctrl.ExportDemandes, m...)
	e.GET("/demandes/:id", ctrl.FindDemande, m...)
	e.POST("/demandes/:id/accept", ctrl.AcceptDemande, m...)
	e.POST("/demandes/:id/reject", ctrl.RejectDemande, m...)
	e.POST("/demandes/:id/hold", ctrl.HoldDemande, m...)
}

func runInterventionRouter(e *echo.Echo, ctrl *controllers.InterventionController, m []echo.MiddlewareFunc) {
	e.GET("/interventions", ctrl.GetInterventions, m...)
	e.GET("/interventions/export.xlsx", ctrl.ExportInterventions, m...)
	e.GET("/interventions/:id", ctrl.FindIntervention, m...)
	e.POST("/interventions/:id", ctrl.UpdateIntervention, m...)
	e.POST("/interventions/:id/terminate", ctrl.TerminateIntervention, m...)
	e.POST("/interventions/:id/irreparable", ctrl.MarkIrreparable, m...)
	e.POST("/interventions/:id/equipement", ctrl.RecordIrreparableEquipement, m...)
}

func runComposantRouter(e *echo.Echo, ctrl *controllers.ComposantController, m []echo.MiddlewareFunc) {
	e.GET("/composants", ctrl.GetComposants, m...)
	e.GET("/composants/export.xlsx", ctrl.ExportComposants, m...)
	e.GET("/composants/new", ctrl.NewComposant, m...)
	e.POST("/composants/new", ctrl.CreateComposant, m...)
	e.GET("/composants/:id", ctrl.EditComposant, m...)
	e.POST("/composants/:id", ctrl.UpdateComposant, m...)
	e.POST("/composants/:id/delete", ctrl.DeleteComposant, m...)
}

func runEquipementRouter(e *echo.Echo, ctrl *controllers.EquipementController, m []echo.MiddlewareFunc) {
	e.GET("/equipements", ctrl.GetEquipements, m...)
	e.GET("/equipements/export.xlsx", ctrl.ExportEquipements, m...)
	e.GET("/equipements/export.pdf", ctrl.ExportPDF, m...)
	e.POST("/equipements/email-pdf", ctrl.EmailPDF, m...)
	e.GET("/equipements/new", ctrl.NewEquipement, m...)
	e.POST("/equipements/new", ctrl.CreateEquipement, m...)
	e.GET("/equipements/:id", ctrl.EditEquipement, m...)
	e.POST("/equipements/:id", ctrl.UpdateEquipement, m...)
	e.POST("/equipements/:id/delete", ctrl.DeleteEquipement, m...)
}

func runUserRouter(e *echo.Echo, ctrl *controllers.UserController, m []echo.MiddlewareFunc) {
	e.GET("/users", ctrl.GetUsers, m...)
	e.GET("/users/export.xlsx", ctrl.ExportUsers, m...)
	e.GET("/users/new", ctrl.NewUser, m...)
	e.POST("/users/new", ctrl.CreateUser, m...)
	e.GET("/users/:id", ctrl.EditUser, m...)
	e.POST("/users/:id", ctrl.UpdateUser, m...)
	e.POST("/users/:id/delete", ctrl.DeleteUser, m...)
}
