package analyzing

import (
	"fmt"
	"sort"

	"github.com/vfg2006/vendas-insight-api/internal/domain"
	"github.com/vfg2006/vendas-insight-api/pkg/utils"
)

// Rótulo sintético para linhas sem valor na dimensão de agrupamento.
const grupoOutros = "Outros"

// Analyze calcula os agregados do conjunto já filtrado: totais, rótulo de
// período, ranking por grupo (quando top-N ou comparação foram pedidos) e a
// evolução mensal com crescimento (quando comparação foi pedida).
func Analyze(vendas []domain.Venda, ctx domain.QueryContext) *domain.AnalysisResult {
	if len(vendas) == 0 {
		return &domain.AnalysisResult{SemDados: true}
	}

	resultado := &domain.AnalysisResult{
		TotalRegistros: len(vendas),
	}

	for i := range vendas {
		resultado.ReceitaTotal += vendas[i].Receita
		resultado.QuantidadeTot += vendas[i].Quantidade
	}
	resultado.ReceitaTotal = utils.RoundWithTwoDecimalPlace(resultado.ReceitaTotal)
	resultado.TicketMedio = utils.RoundWithTwoDecimalPlace(resultado.ReceitaTotal / float64(len(vendas)))

	resultado.Periodo = rotuloPeriodo(vendas)

	if ctx.TopN > 0 || ctx.Comparacao {
		resultado.AgrupadoPor = dimensaoAgrupamento(&ctx)
		resultado.Grupos = agrupar(vendas, resultado.AgrupadoPor, ctx.TopN)
	}

	if ctx.Comparacao {
		preencherEvolucaoMensal(resultado, vendas)
	}

	return resultado
}

// rotuloPeriodo monta o rótulo legível do período coberto pelos dados:
// "Março/2024" para um único mês, "2024" para um ano com vários meses e
// "2022 a 2024" quando há mais de um ano.
func rotuloPeriodo(vendas []domain.Venda) string {
	anos := make(map[int]bool)
	meses := make(map[int]bool)
	for i := range vendas {
		if !vendas[i].TemData() {
			continue
		}
		anos[vendas[i].Ano] = true
		meses[vendas[i].Mes] = true
	}

	if len(anos) == 0 {
		return ""
	}

	if len(anos) == 1 {
		var ano int
		for a := range anos {
			ano = a
		}
		if len(meses) == 1 {
			var mes int
			for m := range meses {
				mes = m
			}
			return fmt.Sprintf("%s/%d", domain.NomesMeses[mes], ano)
		}
		return fmt.Sprintf("%d", ano)
	}

	minAno, maxAno := 0, 0
	for a := range anos {
		if minAno == 0 || a < minAno {
			minAno = a
		}
		if a > maxAno {
			maxAno = a
		}
	}
	return fmt.Sprintf("%d a %d", minAno, maxAno)
}

// dimensaoAgrupamento escolhe por prioridade: produto, a menos que a pergunta
// já tenha nomeado produtos; depois categoria; depois região.
func dimensaoAgrupamento(ctx *domain.QueryContext) string {
	if len(ctx.Produtos) == 0 {
		return "produto"
	}
	if len(ctx.Categorias) == 0 {
		return "categoria"
	}
	return "regiao"
}

// agrupar soma receita, quantidade e contagem por valor da dimensão, ordena
// por receita decrescente (empate resolvido pela ordem de primeira aparição
// nos dados) e trunca para topN quando solicitado.
func agrupar(vendas []domain.Venda, dimensao string, topN int) []domain.GrupoResumo {
	type acumulador struct {
		nome    string
		receita float64
		qtd     int
		linhas  int
		ordem   int
	}

	valorDimensao := func(v *domain.Venda) string {
		switch dimensao {
		case "categoria":
			return v.Categoria
		case "regiao":
			return v.Regiao
		default:
			return v.Produto
		}
	}

	porNome := make(map[string]*acumulador)
	var ordem []*acumulador

	for i := range vendas {
		nome := valorDimensao(&vendas[i])
		if nome == "" {
			nome = grupoOutros
		}

		acc, ok := porNome[nome]
		if !ok {
			acc = &acumulador{nome: nome, ordem: len(ordem)}
			porNome[nome] = acc
			ordem = append(ordem, acc)
		}

		acc.receita += vendas[i].Receita
		acc.qtd += vendas[i].Quantidade
		acc.linhas++
	}

	// Ordenação estável: receita decrescente, empate pela primeira aparição.
	sort.SliceStable(ordem, func(i, j int) bool {
		return ordem[i].receita > ordem[j].receita
	})

	if topN > 0 && len(ordem) > topN {
		ordem = ordem[:topN]
	}

	grupos := make([]domain.GrupoResumo, 0, len(ordem))
	for _, acc := range ordem {
		grupos = append(grupos, domain.GrupoResumo{
			Nome:        acc.nome,
			Receita:     utils.RoundWithTwoDecimalPlace(acc.receita),
			Quantidade:  acc.qtd,
			TicketMedio: utils.RoundWithTwoDecimalPlace(acc.receita / float64(acc.linhas)),
		})
	}

	return grupos
}

// preencherEvolucaoMensal monta a série mensal ordenada cronologicamente e o
// crescimento percentual entre os dois meses mais recentes. Quando a receita
// do mês anterior é zero o crescimento fica indefinido (CrescimentoPct nil e
// flag ligada) em vez de propagar um float não finito.
func preencherEvolucaoMensal(resultado *domain.AnalysisResult, vendas []domain.Venda) {
	type chaveMes struct{ ano, mes int }

	porMes := make(map[chaveMes]*domain.MesResumo)
	for i := range vendas {
		if !vendas[i].TemData() {
			continue
		}

		chave := chaveMes{vendas[i].Ano, vendas[i].Mes}
		balde, ok := porMes[chave]
		if !ok {
			balde = &domain.MesResumo{Ano: chave.ano, Mes: chave.mes}
			porMes[chave] = balde
		}
		balde.Receita += vendas[i].Receita
		balde.Quantidade += vendas[i].Quantidade
	}

	if len(porMes) < 2 {
		return
	}

	serie := make([]domain.MesResumo, 0, len(porMes))
	for _, balde := range porMes {
		balde.Receita = utils.RoundWithTwoDecimalPlace(balde.Receita)
		serie = append(serie, *balde)
	}
	sort.Slice(serie, func(i, j int) bool {
		if serie[i].Ano != serie[j].Ano {
			return serie[i].Ano < serie[j].Ano
		}
		return serie[i].Mes < serie[j].Mes
	})

	resultado.EvolucaoMensal = serie

	anterior := serie[len(serie)-2]
	ultimo := serie[len(serie)-1]

	if anterior.Receita == 0 {
		resultado.CrescimentoIndefinido = true
		return
	}

	crescimento := (ultimo.Receita - anterior.Receita) / anterior.Receita * 100
	formatado := fmt.Sprintf("%.2f", utils.RoundWithTwoDecimalPlace(crescimento))
	resultado.CrescimentoPct = &formatado
}
