package normalizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

func TestNormalizeRow(t *testing.T) {
	headerMap := map[string]string{
		"Data":      CampoData,
		"Produto":   CampoProduto,
		"Categoria": CampoCategoria,
		"Região":    CampoRegiao,
		"Qtd":       CampoQuantidade,
		"Preço":     CampoPrecoUnit,
		"Total":     CampoReceita,
		"Vendedor":  "Vendedor",
	}

	tests := []struct {
		name     string
		raw      map[string]string
		validate func(t *testing.T, venda domain.Venda)
	}{
		{
			name: "Data brasileira deriva ano, mês e trimestre",
			raw: map[string]string{
				"Data":    "15/03/2024",
				"Produto": "Notebook",
				"Qtd":     "2",
				"Preço":   "3500,00",
				"Total":   "7000,00",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Equal(t, "2024-03-15", venda.Data)
				assert.Equal(t, 2024, venda.Ano)
				assert.Equal(t, 3, venda.Mes)
				assert.Equal(t, 1, venda.Trimestre)
				assert.Equal(t, "Notebook", venda.Produto)
				assert.Equal(t, 2, venda.Quantidade)
				assert.Equal(t, 3500.0, venda.PrecoUnit)
				assert.Equal(t, 7000.0, venda.Receita)
			},
		},
		{
			name: "Data ISO sem zeros à esquerda é normalizada",
			raw: map[string]string{
				"Data": "2024-3-5",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Equal(t, "2024-03-05", venda.Data)
				assert.Equal(t, 2024, venda.Ano)
				assert.Equal(t, 3, venda.Mes)
			},
		},
		{
			name: "Data malformada deixa o período zerado sem falhar a linha",
			raw: map[string]string{
				"Data":    "sem data",
				"Produto": "Mouse",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.False(t, venda.TemData())
				assert.Empty(t, venda.Data)
				assert.Zero(t, venda.Ano)
				assert.Equal(t, "Mouse", venda.Produto)
			},
		},
		{
			name: "Mês fora de faixa é descartado",
			raw: map[string]string{
				"Data": "10/25/2024",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.False(t, venda.TemData())
			},
		},
		{
			name: "Receita derivada quando ausente e operandos presentes",
			raw: map[string]string{
				"Qtd":   "3",
				"Preço": "R$ 10,50",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Equal(t, 10.5, venda.PrecoUnit)
				assert.Equal(t, 31.5, venda.Receita)
			},
		},
		{
			name: "Receita não é derivada quando quantidade é zero",
			raw: map[string]string{
				"Qtd":   "abc",
				"Preço": "10,00",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Zero(t, venda.Quantidade)
				assert.Zero(t, venda.Receita)
			},
		},
		{
			name: "Valor monetário brasileiro com separador de milhar",
			raw: map[string]string{
				"Total": "R$ 1.234,56",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Equal(t, 1234.56, venda.Receita)
			},
		},
		{
			name: "Quantidade negativa degrada para zero",
			raw: map[string]string{
				"Qtd": "-5",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Zero(t, venda.Quantidade)
			},
		},
		{
			name: "Coluna desconhecida vai para Extras",
			raw: map[string]string{
				"Vendedor": "Maria",
				"Produto":  "Teclado",
			},
			validate: func(t *testing.T, venda domain.Venda) {
				assert.Equal(t, "Maria", venda.Extras["Vendedor"])
				assert.Equal(t, "Teclado", venda.Produto)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NormalizeRow(tt.raw, headerMap))
		})
	}
}

// Normalizar uma linha já normalizada não pode alterar nenhum valor.
func TestNormalizeRow_Idempotencia(t *testing.T) {
	headerMap := map[string]string{
		CampoData:       CampoData,
		CampoProduto:    CampoProduto,
		CampoQuantidade: CampoQuantidade,
		CampoPrecoUnit:  CampoPrecoUnit,
		CampoReceita:    CampoReceita,
	}

	raw := map[string]string{
		CampoData:       "2024-03-15",
		CampoProduto:    "Notebook",
		CampoQuantidade: "2",
		CampoPrecoUnit:  "3500",
		CampoReceita:    "7000",
	}

	primeira := NormalizeRow(raw, headerMap)
	segunda := NormalizeRow(map[string]string{
		CampoData:       primeira.Data,
		CampoProduto:    primeira.Produto,
		CampoQuantidade: "2",
		CampoPrecoUnit:  "3500",
		CampoReceita:    "7000",
	}, headerMap)

	assert.Equal(t, primeira, segunda)
}

func TestParseValorMonetario(t *testing.T) {
	tests := []struct {
		name     string
		valor    string
		expected float64
	}{
		{"Formato americano", "1234.56", 1234.56},
		{"Formato brasileiro", "1.234,56", 1234.56},
		{"Com símbolo de moeda", "R$ 99,90", 99.90},
		{"Vazio", "", 0},
		{"Não numérico", "grátis", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseValorMonetario(tt.valor))
		})
	}
}
