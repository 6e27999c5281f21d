package gemini

import (
	"fmt"
	"strings"

	"github.com/vfg2006/vendas-insight-api/internal/usecases/asking"
	"github.com/vfg2006/vendas-insight-api/pkg/utils"
)

// systemInstruction fixa as regras de apresentação: o modelo narra os números
// recebidos, nunca os calcula.
const systemInstruction = `Você é um analista de vendas que apresenta resultados já calculados.
Regras obrigatórias:
- Use somente os números presentes na análise fornecida. Nunca calcule, estime ou invente valores.
- Valores monetários em reais com duas casas decimais (ex.: R$ 1.234,56).
- Percentuais sempre com o símbolo % (ex.: 20.00%).
- Cite o período analisado e as unidades de cada número.
- Responda em português, em tom direto e profissional, sem preâmbulos.`

// buildPrompt monta o prompt de narração com a pergunta original, o escopo e
// a análise serializada.
func buildPrompt(req asking.NarrationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pergunta do usuário: %s\n\n", req.Pergunta)
	fmt.Fprintf(&b, "Escopo dos dados: %s\n\n", req.Escopo)

	if req.Analise.SemDados {
		b.WriteString("A análise não encontrou registros para os filtros pedidos.\n")
		if req.PeriodosDisponiveis != nil && len(req.PeriodosDisponiveis.Periods) > 0 {
			b.WriteString("Explique que o período pedido não existe nos dados e liste os períodos disponíveis (formato mm-yyyy): ")
			b.WriteString(strings.Join(req.PeriodosDisponiveis.Periods, ", "))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString("Análise calculada (JSON):\n")
	b.WriteString(utils.PrettyJson(req.Analise))
	b.WriteString("\n\nApresente esses resultados respondendo à pergunta.")

	return b.String()
}
