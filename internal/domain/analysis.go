package domain

// GrupoResumo é uma linha do ranking agrupado (por produto, categoria ou região).
type GrupoResumo struct {
	Nome        string  `json:"nome"`
	Receita     float64 `json:"receita_total"`
	Quantidade  int     `json:"quantidade_total"`
	TicketMedio float64 `json:"ticket_medio"`
}

// MesResumo é um balde mensal da série de evolução usada na comparação.
type MesResumo struct {
	Ano        int     `json:"ano"`
	Mes        int     `json:"mes"`
	Receita    float64 `json:"receita"`
	Quantidade int     `json:"quantidade"`
}

// AnalysisResult é a saída determinística da análise: todos os números que a
// narração apresenta vêm daqui, nunca do modelo.
type AnalysisResult struct {
	TotalRegistros int     `json:"total_registros"`
	ReceitaTotal   float64 `json:"receita_total"`
	QuantidadeTot  int     `json:"quantidade_total"`
	TicketMedio    float64 `json:"ticket_medio"`
	Periodo        string  `json:"periodo,omitempty"`

	// SemDados marca o resultado vazio; nenhum outro campo é calculado.
	SemDados bool `json:"sem_dados,omitempty"`

	// Grupos só é preenchido quando a pergunta pediu top-N ou comparação.
	Grupos      []GrupoResumo `json:"grupos,omitempty"`
	AgrupadoPor string        `json:"agrupado_por,omitempty"` // produto | categoria | regiao

	// EvolucaoMensal e CrescimentoPct só existem em perguntas de comparação
	// com mais de um mês presente nos dados filtrados.
	EvolucaoMensal []MesResumo `json:"evolucao_mensal,omitempty"`

	// CrescimentoPct é o crescimento entre os dois meses mais recentes,
	// formatado com duas casas ("20.00"). Fica nil e CrescimentoIndefinido
	// vira true quando a receita do mês anterior é zero.
	CrescimentoPct        *string `json:"crescimento_pct,omitempty"`
	CrescimentoIndefinido bool    `json:"crescimento_indefinido,omitempty"`
}
