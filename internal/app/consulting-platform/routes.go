package consultingplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/consulting-platform/internal/config"
	complianceh "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/analysis/compliance"
	costh "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/analysis/cost"
	"github.com/magabrotheeeer/consulting-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/consulting-platform/internal/http/handlers/auth/register"
	doclist "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/document/list"
	docread "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/document/read"
	docupload "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/document/upload"
	"github.com/magabrotheeeer/consulting-platform/internal/http/handlers/health"
	projcreate "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/project/create"
	projlist "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/project/list"
	projread "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/project/read"
	qcreate "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/query/create"
	qread "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/query/read"
	userlist "github.com/magabrotheeeer/consulting-platform/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/consulting-platform/internal/http/handlers/user/profile"
	"github.com/magabrotheeeer/consulting-platform/internal/http/handlers/user/setrole"
	"github.com/magabrotheeeer/consulting-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/consulting-platform/internal/lib/rbac"
	auditservice "github.com/magabrotheeeer/consulting-platform/internal/services/audit"
	authservice "github.com/magabrotheeeer/consulting-platform/internal/services/auth"
	documentservice "github.com/magabrotheeeer/consulting-platform/internal/services/document"
	projectservice "github.com/magabrotheeeer/consulting-platform/internal/services/project"
	queryservice "github.com/magabrotheeeer/consulting-platform/internal/services/query"
	"github.com/magabrotheeeer/consulting-platform/internal/storage/repository"
)

// Лимиты частоты запросов, число запросов в час на клиента.
const (
	registerPerHour = 5
	loginPerHour    = 10
	uploadPerHour   = 50
	queriesPerHour  = 30
)

// RegisterRoutes регистрирует все маршруты приложения.
// Порядок middleware на защищённых маршрутах: аутентификация,
// ограничение частоты, журнал действий, обработчик.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	db *repository.Storage,
	authService *authservice.Service,
	documentService *documentservice.Service,
	queryService *queryservice.Service,
	projectService *projectservice.Service,
	auditService *auditservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	authMW := middlewarectx.JWTMiddleware(authService, logger)

	registerLimit := middlewarectx.NewRateLimiter(registerPerHour, logger)
	loginLimit := middlewarectx.NewRateLimiter(loginPerHour, logger)
	uploadLimit := middlewarectx.NewRateLimiter(uploadPerHour, logger)
	queryLimit := middlewarectx.NewRateLimiter(queriesPerHour, logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.With(
			registerLimit.Middleware,
			middlewarectx.AuditMiddleware(auditService, "register", "user"),
		).Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.With(
			loginLimit.Middleware,
			middlewarectx.AuditMiddleware(auditService, "login", "user"),
		).Post("/auth/login", login.New(logger, authService).ServeHTTP)

		r.Get("/health", health.New(logger, db.DB, cfg.Version).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.With(
				middlewarectx.AuditMiddleware(auditService, "read_user", "user"),
			).Get("/users/{uid}", profile.New(logger, authService).ServeHTTP)
			r.With(
				middlewarectx.RequirePermission("manage_users", logger),
				middlewarectx.AuditMiddleware(auditService, "list_users", "user"),
			).Get("/users", userlist.New(logger, authService).ServeHTTP)
			r.With(
				middlewarectx.RequireRole(rbac.RoleAdmin, logger),
				middlewarectx.AuditMiddleware(auditService, "update_role", "user"),
			).Put("/users/{uid}/role", setrole.New(logger, authService).ServeHTTP)

			r.With(
				uploadLimit.Middleware,
				middlewarectx.AuditMiddleware(auditService, "upload_document", "document"),
			).Post("/documents/upload", docupload.New(logger, documentService, cfg.MaxUploadSize).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "list_documents", "document"),
			).Get("/documents", doclist.New(logger, documentService).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "read_document", "document"),
			).Get("/documents/{id}", docread.New(logger, documentService).ServeHTTP)

			r.With(
				queryLimit.Middleware,
				middlewarectx.AuditMiddleware(auditService, "create_query", "query"),
			).Post("/queries", qcreate.New(logger, queryService).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "read_query", "query"),
			).Get("/queries/{id}", qread.New(logger, queryService).ServeHTTP)

			r.With(
				middlewarectx.RequirePermission("create", logger),
				middlewarectx.AuditMiddleware(auditService, "create_project", "project"),
			).Post("/projects", projcreate.New(logger, projectService).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "list_projects", "project"),
			).Get("/projects", projlist.New(logger, projectService).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "read_project", "project"),
			).Get("/projects/{id}", projread.New(logger, projectService).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "compliance_report", "project"),
			).Get("/projects/{id}/compliance", complianceh.New(logger, projectService).ServeHTTP)
			r.With(
				middlewarectx.AuditMiddleware(auditService, "cost_report", "project"),
			).Get("/projects/{id}/cost-analysis", costh.New(logger, projectService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
