// Package analyzing aplica o contexto de consulta sobre o conjunto
// consolidado de vendas e calcula os agregados determinísticos que alimentam
// a narração. Todas as funções são puras: nenhum estado entre chamadas.
package analyzing

import (
	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

// Filter devolve as vendas que satisfazem todas as dimensões não vazias do
// contexto. Dimensão vazia não restringe nada. A ordem de entrada é
// preservada e nenhuma linha é duplicada.
func Filter(vendas []domain.Venda, ctx domain.QueryContext) []domain.Venda {
	if !ctx.TemFiltro() {
		return vendas
	}

	filtradas := make([]domain.Venda, 0, len(vendas))
	for i := range vendas {
		if passaFiltro(&vendas[i], &ctx) {
			filtradas = append(filtradas, vendas[i])
		}
	}

	return filtradas
}

func passaFiltro(v *domain.Venda, ctx *domain.QueryContext) bool {
	if len(ctx.Anos) > 0 && !contemInt(ctx.Anos, v.Ano) {
		return false
	}
	if len(ctx.Meses) > 0 && !contemInt(ctx.Meses, v.Mes) {
		return false
	}
	if len(ctx.Produtos) > 0 && !contemString(ctx.Produtos, v.Produto) {
		return false
	}
	if len(ctx.Categorias) > 0 && !contemString(ctx.Categorias, v.Categoria) {
		return false
	}
	if len(ctx.Regioes) > 0 && !contemString(ctx.Regioes, v.Regiao) {
		return false
	}
	return true
}

func contemInt(lista []int, valor int) bool {
	for _, v := range lista {
		if v == valor {
			return true
		}
	}
	return false
}

func contemString(lista []string, valor string) bool {
	for _, v := range lista {
		if v == valor {
			return true
		}
	}
	return false
}
