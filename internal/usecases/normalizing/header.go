// Package normalizing converte planilhas brutas (cabeçalhos e células) para o
// esquema canônico de vendas. Nenhuma função deste pacote retorna erro para
// célula malformada: valores ruins degradam para o default do campo.
package normalizing

import (
	"strings"
)

// Campos canônicos do esquema de vendas.
const (
	CampoData        = "Data"
	CampoIDTransacao = "ID_Transacao"
	CampoProduto     = "Produto"
	CampoCategoria   = "Categoria"
	CampoRegiao      = "Regiao"
	CampoQuantidade  = "Quantidade"
	CampoPrecoUnit   = "Preco_Unitario"
	CampoReceita     = "Receita_Total"
)

type sinonimo struct {
	canonico  string
	variantes []string
}

// tabelaSinonimos é percorrida em ordem fixa: o primeiro campo canônico cuja
// lista contém o cabeçalho limpo como substring vence. A ordem importa — o
// teste de compatibilidade depende dela (ex.: "valor_total" precisa cair em
// Receita_Total antes de qualquer outro campo).
// Variantes como "regi_o" e "transa__o" são as formas acentuadas depois da
// limpeza ("Região", "Transação").
var tabelaSinonimos = []sinonimo{
	{CampoData, []string{"data", "date", "dt_venda", "data_venda", "dia"}},
	{CampoIDTransacao, []string{"id_transacao", "transacao", "transa__o", "id_venda", "pedido", "order_id", "nota"}},
	{CampoProduto, []string{"produto", "product", "item", "descricao", "descri__o", "mercadoria"}},
	{CampoCategoria, []string{"categoria", "category", "grupo", "linha", "segmento"}},
	{CampoRegiao, []string{"regiao", "regi_o", "region", "uf", "estado", "cidade", "filial", "loja"}},
	{CampoQuantidade, []string{"quantidade", "qtd", "qtde", "quantity", "unidades", "volume"}},
	{CampoPrecoUnit, []string{"preco_unitario", "preco", "pre_o", "valor_unitario", "unit_price", "price"}},
	{CampoReceita, []string{"receita_total", "valor_total", "total", "revenue", "receita", "faturamento"}},
}

// limparCabecalho reduz o cabeçalho a [a-z0-9_]: minúsculas, trim e qualquer
// outro caractere vira "_".
func limparCabecalho(raw string) string {
	limpo := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(limpo))
	for _, r := range limpo {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	return b.String()
}

// NormalizeHeader mapeia um cabeçalho bruto para o campo canônico
// correspondente. Cabeçalho sem correspondência é devolvido sem alteração —
// colunas desconhecidas passam adiante, não são erro.
func NormalizeHeader(raw string) string {
	limpo := limparCabecalho(raw)

	for _, s := range tabelaSinonimos {
		for _, variante := range s.variantes {
			if strings.Contains(limpo, variante) {
				return s.canonico
			}
		}
	}

	return raw
}

// BuildHeaderMap mapeia cada cabeçalho original da planilha para o campo
// canônico (ou para ele mesmo, quando não reconhecido).
func BuildHeaderMap(headers []string) map[string]string {
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		m[h] = NormalizeHeader(h)
	}
	return m
}
