package handler

import (
	"net/http"

	"github.com/vfg2006/askadb-query-engine/infrastructure/repository"
	"github.com/vfg2006/askadb-query-engine/internal/api/handler/router"
	"github.com/vfg2006/askadb-query-engine/internal/scheduler"
	"github.com/vfg2006/askadb-query-engine/internal/usecases/querying"
	"github.com/vfg2006/askadb-query-engine/pkg/metrics"
)

func Healthcheck(serviceName string) []router.Route {
	health := HealthcheckHandler(serviceName)

	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodPost,
			Handler: health,
		},
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: health,
		},
	}
}

func Queries(service querying.QueryService) []router.Route {
	return []router.Route{
		{
			Path:    "/execute",
			Method:  http.MethodPost,
			Handler: ExecuteQuery(service),
		},
	}
}

func Schema(repo repository.SalesRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/schema",
			Method:  http.MethodGet,
			Handler: GetSchema(repo),
		},
	}
}

func Maintenance(service *scheduler.MaintenanceService) []router.Route {
	return []router.Route{
		{
			Path:    "/maintenance/run",
			Method:  http.MethodPost,
			Handler: RunMaintenance(service),
		},
		{
			Path:    "/maintenance/status",
			Method:  http.MethodGet,
			Handler: GetMaintenanceStatus(service),
		},
	}
}

func Metrics(m *metrics.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: m.Handler(),
		},
	}
}
