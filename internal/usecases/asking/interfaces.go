package asking

import (
	"context"

	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

// NarrationRequest carrega tudo que a camada de narração precisa: a pergunta
// original, a análise determinística já calculada e o escopo legível. Nenhum
// número nasce no modelo — todos vêm de Analise.
type NarrationRequest struct {
	Pergunta string
	Analise  *domain.AnalysisResult
	Escopo   string

	// PeriodosDisponiveis é preenchido quando o filtro de período não
	// encontrou registros, para a resposta listar o que existe.
	PeriodosDisponiveis *domain.AvailablePeriods
}

// Narrator transforma a análise em texto corrido transmitido em pedaços.
type Narrator interface {
	Narrate(ctx context.Context, req NarrationRequest) (<-chan string, error)
}

// Asker é a interface exposta para a camada HTTP.
type Asker interface {
	Ask(ctx context.Context, userID int, pergunta string) (*Answer, error)
}

// Answer é a resposta de uma pergunta: a análise estruturada e o fluxo de
// texto da narração.
type Answer struct {
	Analise *domain.AnalysisResult
	Escopo  string
	Stream  <-chan string
}
