package v1

import (
	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
	"hireflow/internal/domain/screening"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/notification"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/report"
	"hireflow/internal/repository"
	"hireflow/internal/usecase"
	"hireflow/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type Deps struct {
	Config     config.Config
	DB         database.DB
	Cache      *cache.Redis
	Dispatcher *notification.Dispatcher
	Hub        *ws.Hub
	Logger     *zap.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	appRepo := repository.NewPostgresApplicationRepository(deps.DB)

	extractor := screening.NewExtractor(screening.NewProseTagger())
	pdfGen := report.NewPDFGenerator(cfg.Report.Dir)

	var events usecase.EventPublisher
	if deps.Hub != nil {
		events = ws.NewPublisher(deps.Hub)
	}

	authUC := usecase.NewAuth(userRepo, jwtSvc, deps.Cache, deps.Dispatcher, logger)
	jobUC := usecase.NewJobs(jobRepo, logger)
	appUC := usecase.NewApplications(appRepo, jobRepo, deps.Dispatcher, logger)
	screeningUC := usecase.NewScreening(
		appRepo, jobRepo, extractor, pdfGen, deps.Dispatcher, events, logger,
		usecase.ScreeningOptions{
			PassThreshold:  cfg.Screening.PassThreshold,
			InviteMinScore: cfg.Screening.InviteMinScore,
			InviteMaxScore: cfg.Screening.InviteMaxScore,
		},
	)
	reportUC := usecase.NewReports(appRepo, cfg.Screening.PassThreshold, logger)

	authHandler := handler.NewAuthHandler(authUC)
	jobHandler := handler.NewJobHandler(jobUC)
	appHandler := handler.NewApplicationHandler(appUC)
	screeningHandler := handler.NewScreeningHandler(screeningUC)
	reportHandler := handler.NewReportHandler(reportUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Job listings are public; everything else requires a token.
	jobsGroup := r.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)

	protected := r.Group("", authMw.Middleware())

	applicationsGroup := protected.Group("/applications")
	appHandler.RegisterRoutes(applicationsGroup)

	admin := protected.Group("", middleware.RequireRole(repository.RoleAdmin))

	adminJobs := admin.Group("/jobs")
	jobHandler.RegisterAdminRoutes(adminJobs)

	screeningGroup := admin.Group("/screening")
	screeningHandler.RegisterRoutes(screeningGroup)

	reportsGroup := admin.Group("/reports")
	reportHandler.RegisterRoutes(reportsGroup)

	// The feed carries applicant data, so it sits behind the admin gate
	// like the rest of the reporting surface.
	if deps.Hub != nil {
		wsHandler := ws.NewHandler(deps.Hub, logger)
		admin.Get("/ws/screening", wsHandler.HandleScreeningFeed)
	}
}
