package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

func TestAnalyze_Totais(t *testing.T) {
	vendas := []domain.Venda{
		{Data: "2024-03-01", Ano: 2024, Mes: 3, Receita: 100.50, Quantidade: 2},
		{Data: "2024-03-10", Ano: 2024, Mes: 3, Receita: 199.50, Quantidade: 3},
	}

	resultado := Analyze(vendas, domain.QueryContext{})

	assert.False(t, resultado.SemDados)
	assert.Equal(t, 2, resultado.TotalRegistros)
	assert.Equal(t, 300.0, resultado.ReceitaTotal)
	assert.Equal(t, 5, resultado.QuantidadeTot)
	assert.Equal(t, 150.0, resultado.TicketMedio)
	assert.Equal(t, "Março/2024", resultado.Periodo)
}

func TestAnalyze_ConjuntoVazio(t *testing.T) {
	resultado := Analyze(nil, domain.QueryContext{})

	assert.True(t, resultado.SemDados)
	assert.Zero(t, resultado.TotalRegistros)
	assert.Empty(t, resultado.Grupos)
}

func TestAnalyze_RotuloPeriodo(t *testing.T) {
	tests := []struct {
		name     string
		vendas   []domain.Venda
		expected string
	}{
		{
			name: "Um ano com vários meses",
			vendas: []domain.Venda{
				{Data: "2024-01-01", Ano: 2024, Mes: 1},
				{Data: "2024-05-01", Ano: 2024, Mes: 5},
			},
			expected: "2024",
		},
		{
			name: "Vários anos",
			vendas: []domain.Venda{
				{Data: "2022-01-01", Ano: 2022, Mes: 1},
				{Data: "2024-05-01", Ano: 2024, Mes: 5},
			},
			expected: "2022 a 2024",
		},
		{
			name: "Nenhuma linha com data",
			vendas: []domain.Venda{
				{Produto: "Mouse", Receita: 10},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultado := Analyze(tt.vendas, domain.QueryContext{})
			assert.Equal(t, tt.expected, resultado.Periodo)
		})
	}
}

func TestAnalyze_AgrupamentoTopN(t *testing.T) {
	vendas := []domain.Venda{
		{Produto: "Notebook", Receita: 500, Quantidade: 1},
		{Produto: "Mouse", Receita: 100, Quantidade: 5},
		{Produto: "Teclado", Receita: 300, Quantidade: 3},
		{Produto: "Monitor", Receita: 800, Quantidade: 2},
		{Produto: "Webcam", Receita: 200, Quantidade: 2},
	}

	resultado := Analyze(vendas, domain.QueryContext{TopN: 3})

	assert.Equal(t, "produto", resultado.AgrupadoPor)
	assert.LessOrEqual(t, len(resultado.Grupos), 3)

	// Receita decrescente: Monitor, Notebook, Teclado.
	assert.Equal(t, "Monitor", resultado.Grupos[0].Nome)
	assert.Equal(t, "Notebook", resultado.Grupos[1].Nome)
	assert.Equal(t, "Teclado", resultado.Grupos[2].Nome)
	assert.Equal(t, 800.0, resultado.Grupos[0].Receita)
}

func TestAnalyze_EmpateMantemOrdemDePrimeiraAparicao(t *testing.T) {
	vendas := []domain.Venda{
		{Produto: "A", Receita: 100},
		{Produto: "B", Receita: 100},
		{Produto: "C", Receita: 100},
	}

	resultado := Analyze(vendas, domain.QueryContext{TopN: 3})

	assert.Equal(t, "A", resultado.Grupos[0].Nome)
	assert.Equal(t, "B", resultado.Grupos[1].Nome)
	assert.Equal(t, "C", resultado.Grupos[2].Nome)
}

func TestAnalyze_GrupoOutros(t *testing.T) {
	vendas := []domain.Venda{
		{Produto: "Notebook", Receita: 100},
		{Produto: "", Receita: 250},
	}

	resultado := Analyze(vendas, domain.QueryContext{TopN: 5})

	assert.Len(t, resultado.Grupos, 2)
	assert.Equal(t, "Outros", resultado.Grupos[0].Nome)
	assert.Equal(t, 250.0, resultado.Grupos[0].Receita)
}

func TestAnalyze_PrioridadeDimensaoAgrupamento(t *testing.T) {
	vendas := []domain.Venda{
		{Produto: "Notebook", Categoria: "Eletrônicos", Regiao: "Sul", Receita: 100},
	}

	tests := []struct {
		name     string
		ctx      domain.QueryContext
		expected string
	}{
		{
			name:     "Sem produto nomeado agrupa por produto",
			ctx:      domain.QueryContext{TopN: 1},
			expected: "produto",
		},
		{
			name:     "Produto nomeado agrupa por categoria",
			ctx:      domain.QueryContext{TopN: 1, Produtos: []string{"Notebook"}},
			expected: "categoria",
		},
		{
			name:     "Produto e categoria nomeados agrupa por região",
			ctx:      domain.QueryContext{TopN: 1, Produtos: []string{"Notebook"}, Categorias: []string{"Eletrônicos"}},
			expected: "regiao",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultado := Analyze(vendas, tt.ctx)
			assert.Equal(t, tt.expected, resultado.AgrupadoPor)
		})
	}
}

func TestAnalyze_CrescimentoMensal(t *testing.T) {
	vendas := []domain.Venda{
		{Data: "2024-01-10", Ano: 2024, Mes: 1, Receita: 1000, Quantidade: 10},
		{Data: "2024-02-10", Ano: 2024, Mes: 2, Receita: 1200, Quantidade: 12},
	}

	resultado := Analyze(vendas, domain.QueryContext{Comparacao: true})

	assert.Len(t, resultado.EvolucaoMensal, 2)
	assert.Equal(t, 1, resultado.EvolucaoMensal[0].Mes)
	assert.Equal(t, 2, resultado.EvolucaoMensal[1].Mes)

	if assert.NotNil(t, resultado.CrescimentoPct) {
		assert.Equal(t, "20.00", *resultado.CrescimentoPct)
	}
	assert.False(t, resultado.CrescimentoIndefinido)
}

func TestAnalyze_CrescimentoComMesAnteriorZerado(t *testing.T) {
	vendas := []domain.Venda{
		{Data: "2024-01-10", Ano: 2024, Mes: 1, Receita: 0},
		{Data: "2024-02-10", Ano: 2024, Mes: 2, Receita: 500},
	}

	resultado := Analyze(vendas, domain.QueryContext{Comparacao: true})

	assert.Nil(t, resultado.CrescimentoPct)
	assert.True(t, resultado.CrescimentoIndefinido)
	assert.Len(t, resultado.EvolucaoMensal, 2)
}

func TestAnalyze_CrescimentoExigeDoisMeses(t *testing.T) {
	vendas := []domain.Venda{
		{Data: "2024-01-10", Ano: 2024, Mes: 1, Receita: 1000},
		{Data: "2024-01-20", Ano: 2024, Mes: 1, Receita: 500},
	}

	resultado := Analyze(vendas, domain.QueryContext{Comparacao: true})

	assert.Empty(t, resultado.EvolucaoMensal)
	assert.Nil(t, resultado.CrescimentoPct)
}

func TestAnalyze_SerieMensalAtravessaAnos(t *testing.T) {
	vendas := []domain.Venda{
		{Data: "2024-01-10", Ano: 2024, Mes: 1, Receita: 300},
		{Data: "2023-12-10", Ano: 2023, Mes: 12, Receita: 200},
	}

	resultado := Analyze(vendas, domain.QueryContext{Comparacao: true})

	// Ordenação cronológica: dezembro/2023 antes de janeiro/2024.
	assert.Equal(t, 2023, resultado.EvolucaoMensal[0].Ano)
	assert.Equal(t, 2024, resultado.EvolucaoMensal[1].Ano)

	if assert.NotNil(t, resultado.CrescimentoPct) {
		assert.Equal(t, "50.00", *resultado.CrescimentoPct)
	}
}
