package ingesting

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// lerCSV lê o arquivo inteiro como matriz de células. O separador é
// detectado pela primeira linha: exportações brasileiras de Excel costumam
// usar ponto e vírgula.
func lerCSV(file io.Reader) ([][]string, error) {
	br := bufio.NewReader(file)

	primeiraLinha, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("erro ao ler CSV: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = detectarSeparador(primeiraLinha)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var linhas [][]string
	for {
		registro, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Linha malformada não derruba o arquivo.
			continue
		}
		linhas = append(linhas, registro)
	}

	return linhas, nil
}

func detectarSeparador(amostra []byte) rune {
	if i := bytes.IndexByte(amostra, '\n'); i >= 0 {
		amostra = amostra[:i]
	}

	if bytes.Count(amostra, []byte{';'}) > bytes.Count(amostra, []byte{','}) {
		return ';'
	}
	return ','
}

// lerXLSX extrai as células da primeira aba da pasta de trabalho.
func lerXLSX(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler células da aba %q: %w", sheets[0], err)
	}

	for i := range rows {
		for j := range rows[i] {
			rows[i][j] = strings.TrimSpace(rows[i][j])
		}
	}

	return rows, nil
}
