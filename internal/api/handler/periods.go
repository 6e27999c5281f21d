package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/pkg/apiErrors"
	"github.com/vfg2006/vendas-insight-api/pkg/middleware"
)

// GetAvailablePeriods retorna os períodos mensais presentes nos dados do
// usuário, no formato mm-yyyy.
func GetAvailablePeriods(vendaRepo repository.VendaRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		periods, err := vendaRepo.GetAvailablePeriods(userClaims.UserID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar períodos disponíveis")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar períodos disponíveis", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(periods)
	}
}
