package handler

import (
	"net/http"

	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/api/handler/router"
	"github.com/vfg2006/vendas-insight-api/internal/config"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/asking"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/authenticating"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/ingesting"
	"github.com/vfg2006/vendas-insight-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Datasets(service ingesting.Ingester, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/datasets",
			Method:      http.MethodPost,
			Handler:     UploadSpreadsheet(service, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets",
			Method:      http.MethodGet,
			Handler:     ListDatasets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/datasets/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDataset(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Questions(service asking.Asker) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ask",
			Method:      http.MethodPost,
			Handler:     Ask(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Periods(vendaRepo repository.VendaRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/periods",
			Method:      http.MethodGet,
			Handler:     GetAvailablePeriods(vendaRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
