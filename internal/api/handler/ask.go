package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/asking"
	"github.com/vfg2006/vendas-insight-api/pkg/apiErrors"
	"github.com/vfg2006/vendas-insight-api/pkg/middleware"
)

type AskRequest struct {
	Pergunta string `json:"pergunta"`
}

type AskResponse struct {
	Resposta string                 `json:"resposta"`
	Escopo   string                 `json:"escopo"`
	Analise  *domain.AnalysisResult `json:"analise"`
}

// Ask responde uma pergunta em linguagem natural sobre as vendas do usuário.
// A narração chega em stream do modelo. Com ?stream=true os pedaços de texto
// são enviados conforme chegam; sem o parâmetro a resposta é um JSON único
// com o texto completo e a análise calculada.
func Ask(service asking.Asker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Ask")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if strings.TrimSpace(req.Pergunta) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O campo 'pergunta' é obrigatório", nil)
			return
		}

		answer, err := service.Ask(r.Context(), userClaims.UserID, req.Pergunta)
		if err != nil {
			handleAskError(w, err)
			return
		}

		if r.URL.Query().Get("stream") == "true" {
			streamAnswer(w, r, answer)
			return
		}

		var texto strings.Builder
		for chunk := range answer.Stream {
			texto.WriteString(chunk)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AskResponse{
			Resposta: texto.String(),
			Escopo:   answer.Escopo,
			Analise:  answer.Analise,
		})
	}
}

// streamAnswer envia os pedaços da narração conforme chegam do modelo.
func streamAnswer(w http.ResponseWriter, r *http.Request, answer *asking.Answer) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, canFlush := w.(http.Flusher)

	for chunk := range answer.Stream {
		if _, err := w.Write([]byte(chunk)); err != nil {
			logrus.WithError(err).Warn("Cliente desconectou durante o stream de resposta")
			return
		}
		if canFlush {
			flusher.Flush()
		}

		select {
		case <-r.Context().Done():
			return
		default:
		}
	}
}

func handleAskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, asking.ErrSemDados):
		apiErrors.WriteError(w, apiErrors.ErrNoData, "Nenhuma planilha de vendas carregada. Faça upload antes de perguntar", nil)

	default:
		logrus.WithError(err).Error("Erro ao responder pergunta")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao gerar a resposta", nil)
	}
}
