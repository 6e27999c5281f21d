package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/ingesting"
	"github.com/vfg2006/vendas-insight-api/pkg/apiErrors"
	"github.com/vfg2006/vendas-insight-api/pkg/middleware"
)

// ListDatasets lista as planilhas carregadas pelo usuário logado.
func ListDatasets(service ingesting.Ingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		datasets, err := service.ListDatasets(userClaims.UserID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar datasets do usuário")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar planilhas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(datasets)
	}
}

// DeleteDataset remove uma planilha do usuário e todas as vendas dela.
func DeleteDataset(service ingesting.Ingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteDataset")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		datasetID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if datasetID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do dataset não fornecido", nil)
			return
		}

		if err := service.DeleteDataset(userClaims.UserID, datasetID); err != nil {
			if errors.Is(err, repository.ErrDatasetNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "Dataset não encontrado", nil)
				return
			}

			logrus.WithError(err).Error("Erro ao remover dataset")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover planilha", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
