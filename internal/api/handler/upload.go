package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/internal/config"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/ingesting"
	"github.com/vfg2006/vendas-insight-api/pkg/apiErrors"
	"github.com/vfg2006/vendas-insight-api/pkg/middleware"
)

// UploadSpreadsheet recebe uma planilha multipart (campo "file"), normaliza
// e grava as vendas do usuário logado.
func UploadSpreadsheet(service ingesting.Ingester, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UploadSpreadsheet")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		maxBytes := cfg.Upload.MaxSizeMB << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do limite de tamanho", map[string]any{
					"max_size_mb": cfg.Upload.MaxSizeMB,
				})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição multipart inválida", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
			return
		}
		defer file.Close()

		dataset, err := service.IngestFile(userClaims.UserID, header.Filename, file)
		if err != nil {
			handleIngestError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(dataset)
	}
}

func handleIngestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ingesting.ErrUnsupportedFile):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedFile, "Formato de arquivo não suportado. Envie .csv, .xlsx ou .xls", nil)

	case errors.Is(err, ingesting.ErrEmptyFile):
		apiErrors.WriteError(w, apiErrors.ErrEmptyFile, "A planilha não contém linhas de dados", nil)

	default:
		logrus.WithError(err).Error("Erro ao ingerir planilha")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar a planilha", nil)
	}
}
