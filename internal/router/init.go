package router

import (
	"net/http"

	"github.com/courseware-labs/account-service/internal/application"
	"github.com/courseware-labs/account-service/internal/container"
	pginfra "github.com/courseware-labs/account-service/internal/infrastructure/postgres"
	handlers "github.com/courseware-labs/account-service/internal/interface/http"
	"github.com/courseware-labs/account-service/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	store := container.GetStorage()

	repo := pginfra.NewUserRepository(container.GetPGPool())

	var notifier application.NoticePublisher
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = pub
	}

	profileSvc := application.NewProfileService(repo, rdb, logger, notifier)
	imageSvc := application.NewImageService(repo, store, logger)
	authSvc := application.NewAuthService(repo, container.GetJWT(), rdb, logger)
	catalogSvc := application.NewCatalogService(
		&http.Client{Timeout: cfg.CatalogTimeout},
		cfg.CatalogBaseURL,
		logger,
	)

	accountHandler := handlers.NewAccountHandler(profileSvc, imageSvc, store, rdb, logger)
	coursesHandler := handlers.NewCoursesHandler(catalogSvc)
	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewAccountModule(accountHandler, container.GetJWT()))
	r.Add(modules.NewCoursesModule(coursesHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
