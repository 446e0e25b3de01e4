package http

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/orris-inc/helpdesk/docs"
	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/config"
	"github.com/orris-inc/helpdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	tickethandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/helpdesk/internal/interfaces/http/routes"
	sharedDB "github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

// Dependencies are the collaborators the router wires into handlers. Limiter
// may be nil, which disables rate limiting.
type Dependencies struct {
	DB       *gorm.DB
	Config   *config.Config
	Policy   access.Policy
	Limiter  ratelimit.Limiter
	Notifier ticket.AssignmentNotifier
	Ping     handlers.PingFunc
	Logger   logger.Interface
}

type Router struct {
	engine         *gin.Engine
	cfg            *config.Config
	userHandler    *handlers.UserHandler
	authHandler    *handlers.AuthHandler
	healthHandler  *handlers.HealthHandler
	ticketHandler  *tickethandlers.TicketHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	logger         logger.Interface
}

func NewRouter(deps Dependencies) *Router {
	cfg := deps.Config
	log := deps.Logger

	userRepo := repository.NewUserRepository(deps.DB, log)
	ticketRepo := repository.NewTicketRepository(deps.DB)
	commentRepo := repository.NewCommentRepository(deps.DB)
	txManager := sharedDB.NewTransactionManager(deps.DB)

	jwtService := auth.NewJWTService(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.AccessExpMinutes,
		auth.WithIssuer(cfg.Auth.JWT.Issuer),
	)
	tokens := &jwtServiceAdapter{JWTService: jwtService}
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	engine := access.NewEngine(deps.Policy)
	renderer := markdown.NewRenderer()

	registerUC := userUsecases.NewRegisterUserUseCase(userRepo, hasher, nil, log)
	loginUC := userUsecases.NewLoginUseCase(userRepo, hasher, tokens, log)
	getCurrentUserUC := userUsecases.NewGetCurrentUserUseCase(userRepo, log)
	authenticateUC := userUsecases.NewAuthenticateUseCase(userRepo, tokens, log)

	ticketHandler := tickethandlers.NewTicketHandler(tickethandlers.Executors{
		Create:       ticketUsecases.NewCreateTicketUseCase(ticketRepo, engine, renderer, log),
		List:         ticketUsecases.NewListTicketsUseCase(ticketRepo, engine, renderer, log),
		Get:          ticketUsecases.NewGetTicketUseCase(ticketRepo, engine, renderer, log),
		Update:       ticketUsecases.NewUpdateTicketUseCase(ticketRepo, userRepo, txManager, engine, deps.Notifier, renderer, log),
		Delete:       ticketUsecases.NewDeleteTicketUseCase(ticketRepo, engine, log),
		AddComment:   ticketUsecases.NewAddCommentUseCase(ticketRepo, commentRepo, engine, log),
		ListComments: ticketUsecases.NewListCommentsUseCase(ticketRepo, commentRepo, engine, log),
		Stats:        ticketUsecases.NewGetTicketStatsUseCase(ticketRepo, engine, log),
	}, log)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled && deps.Limiter != nil {
		limiter = middleware.NewRateLimiter(deps.Limiter, ratelimit.Limits{
			PerMinute: cfg.RateLimit.RequestsPerMinute,
			PerHour:   cfg.RateLimit.RequestsPerHour,
		}, log)
	}

	return &Router{
		engine:         gin.New(),
		cfg:            cfg,
		userHandler:    handlers.NewUserHandler(registerUC, getCurrentUserUC, log),
		authHandler:    handlers.NewAuthHandler(loginUC, log),
		healthHandler:  handlers.NewHealthHandler(deps.Ping, log),
		ticketHandler:  ticketHandler,
		authMiddleware: middleware.NewAuthMiddleware(authenticateUC, log),
		rateLimiter:    limiter,
		logger:         log,
	}
}

// SetupRoutes installs global middleware and every route.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/", r.healthHandler.Root)
	r.engine.GET("/health", r.healthHandler.Health)

	if r.cfg.Server.EnableSwagger {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupUserRoutes(r.engine, &routes.UserRouteConfig{
		UserHandler:    r.userHandler,
		AuthHandler:    r.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})
	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:  r.ticketHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// jwtServiceAdapter adapts JWTService to usecases.TokenService.
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) IssueAccessToken(subject string) (*userUsecases.AccessToken, error) {
	issued, err := a.JWTService.Issue(subject)
	if err != nil {
		return nil, err
	}
	return &userUsecases.AccessToken{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}, nil
}

func (a *jwtServiceAdapter) ValidateAccessToken(token string) (string, error) {
	return a.JWTService.Validate(token)
}

// PingDatabase returns a health probe for db.
func PingDatabase(db *gorm.DB) handlers.PingFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
