package asking

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/infrastructure/repository"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/querying"
)

// ErrSemDados indica que o usuário ainda não carregou nenhuma planilha.
// Estado distinto de "período não encontrado", que acontece quando há dados
// mas o filtro pedido não casa com nenhum registro.
var ErrSemDados = errors.New("nenhum dado de vendas carregado")

// Service orquestra o fluxo de uma pergunta: carrega o consolidado do
// usuário, interpreta a pergunta, filtra, agrega e entrega à narração.
type Service struct {
	vendaRepo   repository.VendaRepository
	datasetRepo repository.DatasetRepository
	narrator    Narrator
}

func NewService(
	vendaRepo repository.VendaRepository,
	datasetRepo repository.DatasetRepository,
	narrator Narrator,
) Asker {
	return &Service{
		vendaRepo:   vendaRepo,
		datasetRepo: datasetRepo,
		narrator:    narrator,
	}
}

func (s *Service) Ask(ctx context.Context, userID int, pergunta string) (*Answer, error) {
	vendas, err := s.vendaRepo.ListByUser(userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Erro ao carregar vendas consolidadas do usuário")
		return nil, err
	}

	if len(vendas) == 0 {
		return nil, ErrSemDados
	}

	queryCtx := querying.Parse(pergunta, vendas)
	filtradas := analyzing.Filter(vendas, queryCtx)
	analise := analyzing.Analyze(filtradas, queryCtx)

	logrus.WithFields(logrus.Fields{
		"user_id":          userID,
		"total_registros":  len(vendas),
		"registros_filtro": len(filtradas),
		"anos":             queryCtx.Anos,
		"meses":            queryCtx.Meses,
		"top_n":            queryCtx.TopN,
		"comparacao":       queryCtx.Comparacao,
	}).Debug("Pergunta interpretada e análise calculada")

	req := NarrationRequest{
		Pergunta: pergunta,
		Analise:  analise,
		Escopo:   s.descreverEscopo(userID, &queryCtx, len(filtradas), len(vendas)),
	}

	// Filtro de período sem registros: a resposta deve listar os períodos
	// que existem, em vez de tratar como ausência total de dados.
	if analise.SemDados && queryCtx.TemFiltroPeriodo() {
		periodos, err := s.vendaRepo.GetAvailablePeriods(userID)
		if err != nil {
			logrus.WithError(err).Warn("Erro ao buscar períodos disponíveis para resposta de período não encontrado")
		} else {
			req.PeriodosDisponiveis = periodos
		}
	}

	stream, err := s.narrator.Narrate(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Analise: analise,
		Escopo:  req.Escopo,
		Stream:  stream,
	}, nil
}

// descreverEscopo monta a descrição legível do recorte analisado.
func (s *Service) descreverEscopo(userID int, queryCtx *domain.QueryContext, filtrados, total int) string {
	if queryCtx.TemFiltro() {
		return fmt.Sprintf("filtrados %d de %d registros", filtrados, total)
	}

	planilhas, err := s.datasetRepo.CountByUser(userID)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao contar planilhas do usuário para descrição de escopo")
		return fmt.Sprintf("análise completa de %d registros", total)
	}

	return fmt.Sprintf("análise completa de %d registros de %d planilhas", total, planilhas)
}
