package domain

import "time"

// Dataset representa uma planilha carregada por um usuário. As linhas
// normalizadas ficam na tabela de vendas, referenciando o dataset de origem.
type Dataset struct {
	ID            string    `json:"id"`
	UserID        int       `json:"user_id"`
	NomeArquivo   string    `json:"nome_arquivo"`
	TotalLinhas   int       `json:"total_linhas"`
	LinhasComErro int       `json:"linhas_com_erro,omitempty"` // linhas sem data interpretável
	CreatedAt     time.Time `json:"created_at"`
}
