package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

func vendasFiltro() []domain.Venda {
	return []domain.Venda{
		{IDTransacao: "1", Produto: "Notebook", Categoria: "Eletrônicos", Regiao: "Sudeste", Ano: 2023, Mes: 1, Receita: 100},
		{IDTransacao: "2", Produto: "Mouse", Categoria: "Acessórios", Regiao: "Sul", Ano: 2023, Mes: 2, Receita: 200},
		{IDTransacao: "3", Produto: "Notebook", Categoria: "Eletrônicos", Regiao: "Sul", Ano: 2022, Mes: 1, Receita: 300},
		{IDTransacao: "4", Produto: "Teclado", Categoria: "Acessórios", Regiao: "Norte", Ano: 2022, Mes: 3, Receita: 400},
	}
}

func TestFilter(t *testing.T) {
	vendas := vendasFiltro()

	tests := []struct {
		name        string
		ctx         domain.QueryContext
		expectedIDs []string
	}{
		{
			name:        "Contexto vazio devolve tudo na mesma ordem",
			ctx:         domain.QueryContext{},
			expectedIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:        "Filtro por ano",
			ctx:         domain.QueryContext{Anos: []int{2023}},
			expectedIDs: []string{"1", "2"},
		},
		{
			name:        "Filtro por ano e mês combinados",
			ctx:         domain.QueryContext{Anos: []int{2022}, Meses: []int{1}},
			expectedIDs: []string{"3"},
		},
		{
			name:        "Filtro por produto",
			ctx:         domain.QueryContext{Produtos: []string{"Notebook"}},
			expectedIDs: []string{"1", "3"},
		},
		{
			name:        "Filtro por região e categoria",
			ctx:         domain.QueryContext{Regioes: []string{"Sul"}, Categorias: []string{"Acessórios"}},
			expectedIDs: []string{"2"},
		},
		{
			name:        "Filtro sem correspondência devolve vazio",
			ctx:         domain.QueryContext{Anos: []int{2020}},
			expectedIDs: []string{},
		},
		{
			name:        "Vários valores na mesma dimensão",
			ctx:         domain.QueryContext{Produtos: []string{"Mouse", "Teclado"}},
			expectedIDs: []string{"2", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtradas := Filter(vendas, tt.ctx)

			ids := make([]string, 0, len(filtradas))
			for i := range filtradas {
				ids = append(ids, filtradas[i].IDTransacao)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

// O filtro não pode alterar o slice de entrada.
func TestFilter_NaoAlteraEntrada(t *testing.T) {
	vendas := vendasFiltro()
	original := make([]domain.Venda, len(vendas))
	copy(original, vendas)

	Filter(vendas, domain.QueryContext{Anos: []int{2023}})

	assert.Equal(t, original, vendas)
}
