package utils

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação. Usado para embutir a análise
// estruturada no prompt de narração; em caso de erro devolve string vazia.
func PrettyJson(in any) string {
	buffer, err := json.Marshal(in)
	if err != nil {
		return ""
	}

	var out bytes.Buffer
	if err := jsonIndent(&out, buffer); err != nil {
		return string(buffer)
	}

	return out.String()
}

func jsonIndent(out *bytes.Buffer, in []byte) error {
	var v any
	if err := json.Unmarshal(in, &v); err != nil {
		return err
	}

	indented, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = out.Write(indented)
	return err
}
