package asking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/vendas-insight-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/asking"
	askingmocks "github.com/vfg2006/vendas-insight-api/internal/usecases/asking/mocks"
	"go.uber.org/mock/gomock"
)

func vendasConsolidadas() []domain.Venda {
	return []domain.Venda{
		{Data: "2023-01-10", Ano: 2023, Mes: 1, Produto: "Notebook", Receita: 1000, Quantidade: 1},
		{Data: "2023-02-10", Ano: 2023, Mes: 2, Produto: "Mouse", Receita: 1200, Quantidade: 4},
	}
}

func streamCom(chunks ...string) <-chan string {
	out := make(chan string, len(chunks))
	for _, c := range chunks {
		out <- c
	}
	close(out)
	return out
}

func TestService_Ask_SemPlanilhasCarregadas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := repomocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := repomocks.NewMockDatasetRepository(ctrl)
	mockNarrator := askingmocks.NewMockNarrator(ctrl)

	mockVendaRepo.EXPECT().ListByUser(7).Return([]domain.Venda{}, nil)

	service := asking.NewService(mockVendaRepo, mockDatasetRepo, mockNarrator)

	answer, err := service.Ask(context.Background(), 7, "qual a receita total?")

	assert.Nil(t, answer)
	assert.ErrorIs(t, err, asking.ErrSemDados)
}

func TestService_Ask_PerguntaSemFiltro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := repomocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := repomocks.NewMockDatasetRepository(ctrl)
	mockNarrator := askingmocks.NewMockNarrator(ctrl)

	mockVendaRepo.EXPECT().ListByUser(7).Return(vendasConsolidadas(), nil)
	mockDatasetRepo.EXPECT().CountByUser(7).Return(2, nil)

	var capturada asking.NarrationRequest
	mockNarrator.EXPECT().
		Narrate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req asking.NarrationRequest) (<-chan string, error) {
			capturada = req
			return streamCom("A receita total ", "foi R$ 2.200,00."), nil
		})

	service := asking.NewService(mockVendaRepo, mockDatasetRepo, mockNarrator)

	answer, err := service.Ask(context.Background(), 7, "qual o desempenho geral?")

	assert.NoError(t, err)
	assert.Equal(t, "análise completa de 2 registros de 2 planilhas", answer.Escopo)
	assert.Equal(t, 2200.0, answer.Analise.ReceitaTotal)
	assert.False(t, answer.Analise.SemDados)
	assert.Nil(t, capturada.PeriodosDisponiveis)

	var texto string
	for chunk := range answer.Stream {
		texto += chunk
	}
	assert.Equal(t, "A receita total foi R$ 2.200,00.", texto)
}

func TestService_Ask_PeriodoNaoEncontradoListaDisponiveis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := repomocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := repomocks.NewMockDatasetRepository(ctrl)
	mockNarrator := askingmocks.NewMockNarrator(ctrl)

	mockVendaRepo.EXPECT().ListByUser(7).Return(vendasConsolidadas(), nil)

	disponiveis := &domain.AvailablePeriods{
		Periods: []string{"01-2023", "02-2023"},
		Years:   []string{"2023"},
		Months:  []string{"01", "02"},
	}
	mockVendaRepo.EXPECT().GetAvailablePeriods(7).Return(disponiveis, nil)

	var capturada asking.NarrationRequest
	mockNarrator.EXPECT().
		Narrate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req asking.NarrationRequest) (<-chan string, error) {
			capturada = req
			return streamCom("Não há dados para 2020."), nil
		})

	service := asking.NewService(mockVendaRepo, mockDatasetRepo, mockNarrator)

	answer, err := service.Ask(context.Background(), 7, "qual a receita de 2020?")

	assert.NoError(t, err)
	assert.True(t, answer.Analise.SemDados)
	assert.Equal(t, disponiveis, capturada.PeriodosDisponiveis)
	assert.Equal(t, "filtrados 0 de 2 registros", answer.Escopo)
}

func TestService_Ask_ErroDoRepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVendaRepo := repomocks.NewMockVendaRepository(ctrl)
	mockDatasetRepo := repomocks.NewMockDatasetRepository(ctrl)
	mockNarrator := askingmocks.NewMockNarrator(ctrl)

	falha := errors.New("conexão perdida")
	mockVendaRepo.EXPECT().ListByUser(7).Return(nil, falha)

	service := asking.NewService(mockVendaRepo, mockDatasetRepo, mockNarrator)

	answer, err := service.Ask(context.Background(), 7, "qual a receita total?")

	assert.Nil(t, answer)
	assert.ErrorIs(t, err, falha)
}
