package normalizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "Cabeçalho canônico passa direto",
			header:   "Data",
			expected: CampoData,
		},
		{
			name:     "Valor Total com símbolo de moeda vira Receita_Total",
			header:   "Valor Total (R$)",
			expected: CampoReceita,
		},
		{
			name:     "Qtd Vendida vira Quantidade",
			header:   "Qtd Vendida",
			expected: CampoQuantidade,
		},
		{
			name:     "Preço unitário acentuado vira Preco_Unitario",
			header:   "Preço Unitário",
			expected: CampoPrecoUnit,
		},
		{
			name:     "Variante em inglês de data",
			header:   "Order Date",
			expected: CampoData,
		},
		{
			name:     "ID do pedido vira ID_Transacao",
			header:   "Pedido",
			expected: CampoIDTransacao,
		},
		{
			name:     "Região com acento",
			header:   "Região",
			expected: CampoRegiao,
		},
		{
			name:     "Faturamento vira Receita_Total",
			header:   "Faturamento",
			expected: CampoReceita,
		},
		{
			name:     "Cabeçalho desconhecido é devolvido sem alteração",
			header:   "Vendedor",
			expected: "Vendedor",
		},
		{
			name:     "Cabeçalho com espaços nas pontas",
			header:   "  Categoria  ",
			expected: CampoCategoria,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeader(tt.header))
		})
	}
}

func TestLimparCabecalho(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "Minúsculas e underscore preservados",
			header:   "receita_total",
			expected: "receita_total",
		},
		{
			name:     "Maiúsculas e espaços normalizados",
			header:   "Valor Total (R$)",
			expected: "valor_total__r__",
		},
		{
			name:     "Acentos viram underscore",
			header:   "região",
			expected: "regi_o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, limparCabecalho(tt.header))
		})
	}
}

func TestBuildHeaderMap(t *testing.T) {
	headers := []string{"Data", "Produto", "Qtd", "Valor Total (R$)", "Observação"}

	m := BuildHeaderMap(headers)

	assert.Equal(t, CampoData, m["Data"])
	assert.Equal(t, CampoProduto, m["Produto"])
	assert.Equal(t, CampoQuantidade, m["Qtd"])
	assert.Equal(t, CampoReceita, m["Valor Total (R$)"])
	assert.Equal(t, "Observação", m["Observação"])
}
