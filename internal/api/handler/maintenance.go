package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/askadb-query-engine/internal/scheduler"
	"github.com/vfg2006/askadb-query-engine/pkg/apiErrors"
)

// RunMaintenance dispara manualmente a manutenção do banco
func RunMaintenance(service *scheduler.MaintenanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunMaintenance")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de manutenção não disponível", nil)
			return
		}

		started := service.TriggerManualRun()

		message := "Manutenção iniciada com sucesso"
		if !started {
			message = "Manutenção já está em andamento"
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": message,
			"started": started,
		})
	}
}

// GetMaintenanceStatus retorna o status da manutenção do banco
func GetMaintenanceStatus(service *scheduler.MaintenanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de manutenção não disponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, service.GetStatus())
	}
}
