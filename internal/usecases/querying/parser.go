// Package querying extrai a intenção estruturada de uma pergunta em português
// sobre os dados de vendas. O reconhecimento é inteiramente determinístico:
// regex e casamento de substring contra tabelas fixas e contra os valores já
// presentes no conjunto de dados do usuário (vocabulário fechado).
package querying

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

// mesesPorNome mapeia nome e abreviação de cada mês para o número. O casamento
// é por substring solta, não por palavra inteira — abreviações curtas podem
// casar dentro de palavras maiores ("mar" em "marca"). Comportamento herdado
// do sistema original e mantido de propósito.
var mesesPorNome = []struct {
	termo string
	mes   int
}{
	{"janeiro", 1}, {"jan", 1},
	{"fevereiro", 2}, {"fev", 2},
	{"março", 3}, {"marco", 3}, {"mar", 3},
	{"abril", 4}, {"abr", 4},
	{"maio", 5}, {"mai", 5},
	{"junho", 6}, {"jun", 6},
	{"julho", 7}, {"jul", 7},
	{"agosto", 8}, {"ago", 8},
	{"setembro", 9}, {"set", 9},
	{"outubro", 10}, {"out", 10},
	{"novembro", 11}, {"nov", 11},
	{"dezembro", 12}, {"dez", 12},
}

var (
	reAno  = regexp.MustCompile(`20\d{2}`)
	reTopN = regexp.MustCompile(`(?:top|maior|melhor|principal)\s*(\d+)`)

	// Termos de métrica testados como palavra inteira na pergunta minúscula.
	reQuantidade = regexp.MustCompile(`\b(quantidade|qtd|unidades|volume)\b`)
	reReceita    = regexp.MustCompile(`\b(receita|faturamento|venda|vendas|valor)\b`)
	rePrecoMedio = regexp.MustCompile(`\b(preço médio|preco medio|ticket médio|ticket medio|média|media)\b`)
	reComparacao = regexp.MustCompile(`\b(comparar|comparação|comparacao|compare|evolução|evolucao|crescimento|variação|variacao|tendência|tendencia)\b`)
)

// Parse interpreta a pergunta e devolve o contexto de consulta. As linhas
// conhecidas servem apenas para reconhecer entidades (produtos, categorias e
// regiões) que existem de fato no conjunto do usuário.
func Parse(pergunta string, vendas []domain.Venda) domain.QueryContext {
	ctx := domain.QueryContext{}
	minuscula := strings.ToLower(pergunta)

	// Anos: qualquer token 20xx na pergunta original. A validação contra os
	// anos existentes fica a cargo do filtro.
	for _, token := range reAno.FindAllString(pergunta, -1) {
		ano, _ := strconv.Atoi(token)
		if !contemInt(ctx.Anos, ano) {
			ctx.Anos = append(ctx.Anos, ano)
		}
	}

	// Meses: substring solta contra a tabela de nomes e abreviações.
	for _, entrada := range mesesPorNome {
		if strings.Contains(minuscula, entrada.termo) && !contemInt(ctx.Meses, entrada.mes) {
			ctx.Meses = append(ctx.Meses, entrada.mes)
		}
	}

	// Métricas solicitadas e flag de comparação.
	if reQuantidade.MatchString(minuscula) {
		ctx.Metricas = append(ctx.Metricas, "quantidade")
	}
	if reReceita.MatchString(minuscula) {
		ctx.Metricas = append(ctx.Metricas, "receita")
	}
	if rePrecoMedio.MatchString(minuscula) {
		ctx.Metricas = append(ctx.Metricas, "preco_medio")
	}
	ctx.Comparacao = reComparacao.MatchString(minuscula)

	// Top-N: primeira ocorrência vence.
	if m := reTopN.FindStringSubmatch(minuscula); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			ctx.TopN = n
		}
	}

	// Entidades: valores distintos do conjunto consolidado presentes na
	// pergunta. Vocabulário fechado — nada de fuzzy matching.
	ctx.Produtos = reconhecerEntidades(minuscula, vendas, func(v *domain.Venda) string { return v.Produto })
	ctx.Categorias = reconhecerEntidades(minuscula, vendas, func(v *domain.Venda) string { return v.Categoria })
	ctx.Regioes = reconhecerEntidades(minuscula, vendas, func(v *domain.Venda) string { return v.Regiao })

	return ctx
}

// reconhecerEntidades devolve os valores distintos da dimensão que aparecem
// como substring (sem diferenciar maiúsculas) na pergunta, na ordem em que
// surgem nos dados.
func reconhecerEntidades(perguntaMinuscula string, vendas []domain.Venda, campo func(*domain.Venda) string) []string {
	var encontrados []string
	vistos := make(map[string]bool)

	for i := range vendas {
		valor := campo(&vendas[i])
		if valor == "" || vistos[valor] {
			continue
		}
		vistos[valor] = true

		if strings.Contains(perguntaMinuscula, strings.ToLower(valor)) {
			encontrados = append(encontrados, valor)
		}
	}

	return encontrados
}

func contemInt(lista []int, valor int) bool {
	for _, v := range lista {
		if v == valor {
			return true
		}
	}
	return false
}
