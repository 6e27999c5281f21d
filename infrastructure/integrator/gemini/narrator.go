// Package gemini implementa a camada de narração: recebe a análise
// determinística já calculada e pede ao modelo hospedado apenas o texto de
// apresentação. Nenhum número é inventado aqui — o prompt proíbe o modelo de
// calcular qualquer coisa fora do que recebeu.
package gemini

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vendas-insight-api/internal/config"
	"github.com/vfg2006/vendas-insight-api/internal/usecases/asking"
	"google.golang.org/genai"
)

type Narrator struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Narrator {
	return &Narrator{cfg: cfg}
}

// Narrate abre um stream de geração e repassa cada pedaço de texto pelo
// canal devolvido. O canal é fechado quando a geração termina ou o contexto
// é cancelado.
func (n *Narrator) Narrate(ctx context.Context, req asking.NarrationRequest) (<-chan string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  n.cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente do modelo de narração")
	}

	model := n.cfg.Gemini.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	generateConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(n.cfg.Gemini.Temperature)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemInstruction},
			},
		},
	}

	prompt := buildPrompt(req)

	out := make(chan string)
	go func() {
		defer close(out)

		for resp, err := range client.Models.GenerateContentStream(ctx, model, genai.Text(prompt), generateConfig) {
			if err != nil {
				logrus.WithError(err).Error("Erro durante o stream de narração")
				return
			}

			texto := resp.Text()
			if texto == "" {
				continue
			}

			select {
			case out <- texto:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
