package domain

// AvailablePeriods representa os períodos presentes nas vendas de um usuário.
// É devolvido quando um filtro de período não encontra registros, para que a
// resposta liste o que existe de fato.
type AvailablePeriods struct {
	Periods []string `json:"periods"` // Lista de períodos no formato mm-yyyy
	Years   []string `json:"years"`   // Lista de anos únicos disponíveis
	Months  []string `json:"months"`  // Lista de meses únicos disponíveis
}
