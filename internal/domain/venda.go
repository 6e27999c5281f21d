package domain

// Venda representa uma linha de venda já normalizada para o esquema canônico.
// Campos ausentes na planilha de origem ficam com o valor zero (ou ponteiro nil
// para a data) — nunca geram erro de ingestão.
type Venda struct {
	Data        string  `json:"data,omitempty"` // formato YYYY-MM-DD; vazio quando a data não pôde ser interpretada
	Ano         int     `json:"ano,omitempty"`
	Mes         int     `json:"mes,omitempty"`       // 1-12
	Trimestre   int     `json:"trimestre,omitempty"` // 1-4, derivado de Mes
	IDTransacao string  `json:"id_transacao,omitempty"`
	Produto     string  `json:"produto,omitempty"`
	Categoria   string  `json:"categoria,omitempty"`
	Regiao      string  `json:"regiao,omitempty"`
	Quantidade  int     `json:"quantidade"`
	PrecoUnit   float64 `json:"preco_unitario"`
	Receita     float64 `json:"receita_total"`

	// Extras guarda colunas da planilha que não mapeiam para o esquema
	// canônico, indexadas pelo cabeçalho original.
	Extras map[string]string `json:"extras,omitempty"`
}

// TemData indica se a linha possui uma data interpretada com sucesso.
func (v *Venda) TemData() bool {
	return v.Data != "" && v.Ano > 0 && v.Mes >= 1 && v.Mes <= 12
}

// NomesMeses mapeia o número do mês para o nome em português, usado nos
// rótulos de período da análise. O índice 0 não é utilizado.
var NomesMeses = [13]string{
	"",
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}
