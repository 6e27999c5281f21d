package domain

// QueryContext é a intenção estruturada extraída de uma pergunta do usuário.
// É construído uma vez por pergunta, imutável depois do parse, e consumido
// pelo filtro e pelo agregador.
type QueryContext struct {
	Anos       []int    `json:"anos,omitempty"`
	Meses      []int    `json:"meses,omitempty"` // 1-12
	Produtos   []string `json:"produtos,omitempty"`
	Categorias []string `json:"categorias,omitempty"`
	Regioes    []string `json:"regioes,omitempty"`
	Metricas   []string `json:"metricas,omitempty"` // subconjunto de {quantidade, receita, preco_medio}
	Comparacao bool     `json:"comparacao"`
	TopN       int      `json:"top_n,omitempty"` // 0 quando não solicitado
}

// TemFiltroPeriodo indica se a pergunta pediu explicitamente um ano ou mês.
// Distingue "período não encontrado" de "nenhum dado carregado".
func (q *QueryContext) TemFiltroPeriodo() bool {
	return len(q.Anos) > 0 || len(q.Meses) > 0
}

// TemFiltro indica se alguma dimensão foi restringida pela pergunta.
func (q *QueryContext) TemFiltro() bool {
	return q.TemFiltroPeriodo() ||
		len(q.Produtos) > 0 ||
		len(q.Categorias) > 0 ||
		len(q.Regioes) > 0
}
