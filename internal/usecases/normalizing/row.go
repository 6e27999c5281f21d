package normalizing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/vendas-insight-api/internal/domain"
)

// NormalizeRow converte uma linha bruta (cabeçalho original → valor da célula)
// em uma Venda canônica usando o mapa de cabeçalhos. Células malformadas
// degradam silenciosamente para o default do campo; a linha é sempre emitida.
func NormalizeRow(raw map[string]string, headerMap map[string]string) domain.Venda {
	venda := domain.Venda{}

	for original, valor := range raw {
		canonico, ok := headerMap[original]
		if !ok {
			canonico = original
		}

		switch canonico {
		case CampoData:
			preencherData(&venda, valor)
		case CampoIDTransacao:
			venda.IDTransacao = strings.TrimSpace(valor)
		case CampoProduto:
			venda.Produto = strings.TrimSpace(valor)
		case CampoCategoria:
			venda.Categoria = strings.TrimSpace(valor)
		case CampoRegiao:
			venda.Regiao = strings.TrimSpace(valor)
		case CampoQuantidade:
			venda.Quantidade = parseQuantidade(valor)
		case CampoPrecoUnit:
			venda.PrecoUnit = parseValorMonetario(valor)
		case CampoReceita:
			venda.Receita = parseValorMonetario(valor)
		default:
			// Coluna desconhecida: preserva o valor bruto fora do esquema.
			if venda.Extras == nil {
				venda.Extras = make(map[string]string)
			}
			venda.Extras[original] = valor
		}
	}

	// Receita derivada apenas quando ausente/zero e ambos os operandos presentes.
	if venda.Receita == 0 && venda.Quantidade > 0 && venda.PrecoUnit > 0 {
		venda.Receita = float64(venda.Quantidade) * venda.PrecoUnit
	}

	return venda
}

// preencherData interpreta a célula de data e deriva Ano, Mes e Trimestre.
// Tenta YYYY-M-D primeiro e depois D/M/YYYY; quando o primeiro grupo numérico
// é maior que 12 ele só pode ser o dia, senão assume convenção dia-primeiro.
// Data ininterpretável deixa os campos de período zerados.
func preencherData(venda *domain.Venda, valor string) {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return
	}

	ano, mes, dia, ok := parseDataISO(valor)
	if !ok {
		ano, mes, dia, ok = parseDataBR(valor)
	}
	if !ok || mes < 1 || mes > 12 || dia < 1 || dia > 31 {
		return
	}

	venda.Data = fmt.Sprintf("%04d-%02d-%02d", ano, mes, dia)
	venda.Ano = ano
	venda.Mes = mes
	venda.Trimestre = (mes + 2) / 3
}

func parseDataISO(valor string) (ano, mes, dia int, ok bool) {
	partes := strings.Split(valor, "-")
	if len(partes) != 3 {
		return 0, 0, 0, false
	}

	ano, errAno := strconv.Atoi(strings.TrimSpace(partes[0]))
	mes, errMes := strconv.Atoi(strings.TrimSpace(partes[1]))
	dia, errDia := strconv.Atoi(strings.TrimSpace(partes[2]))
	if errAno != nil || errMes != nil || errDia != nil || ano < 1000 {
		return 0, 0, 0, false
	}

	return ano, mes, dia, true
}

func parseDataBR(valor string) (ano, mes, dia int, ok bool) {
	partes := strings.Split(valor, "/")
	if len(partes) != 3 {
		return 0, 0, 0, false
	}

	primeiro, errPrimeiro := strconv.Atoi(strings.TrimSpace(partes[0]))
	segundo, errSegundo := strconv.Atoi(strings.TrimSpace(partes[1]))
	ano, errAno := strconv.Atoi(strings.TrimSpace(partes[2]))
	if errPrimeiro != nil || errSegundo != nil || errAno != nil {
		return 0, 0, 0, false
	}

	// Se o primeiro grupo passa de 12 ele é necessariamente o dia; caso
	// contrário assumimos dia/mês, a convenção brasileira. Nos dois casos o
	// primeiro grupo é tratado como dia — o mês fora de faixa é descartado
	// pela validação do chamador.
	return ano, segundo, primeiro, true
}

// parseQuantidade interpreta a célula como inteiro não negativo; qualquer
// valor não numérico vira 0.
func parseQuantidade(valor string) int {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return 0
	}

	qtd, err := strconv.Atoi(valor)
	if err != nil {
		// Algumas planilhas exportam quantidade como "3.0".
		f, errFloat := strconv.ParseFloat(strings.ReplaceAll(valor, ",", "."), 64)
		if errFloat != nil {
			return 0
		}
		qtd = int(f)
	}

	if qtd < 0 {
		return 0
	}
	return qtd
}

// parseValorMonetario remove tudo que não é dígito, vírgula ou ponto
// (símbolo de moeda, espaços), converte vírgula decimal para ponto e
// interpreta como float. Valor não numérico vira 0.
func parseValorMonetario(valor string) float64 {
	var b strings.Builder
	for _, r := range valor {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}

	limpo := b.String()
	if limpo == "" {
		return 0
	}

	// Formato brasileiro: "1.234,56" → "1234.56".
	if strings.Contains(limpo, ",") {
		limpo = strings.ReplaceAll(limpo, ".", "")
		limpo = strings.ReplaceAll(limpo, ",", ".")
	}

	f, err := strconv.ParseFloat(limpo, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
