package utils

import (
	"context"
	"fmt"
	"ticket_rag/model"

	"github.com/sashabaranov/go-openai"
)

type Embedder struct {
	model     *model.Model
	modelName string
}

func NewEmbedder(m *model.Model, modelName string) *Embedder {
	return &Embedder{model: m, modelName: modelName}
}

func (e *Embedder) EmbedText(text []string) ([][]float32, error) {
	resp, err := e.model.CreateEmbeddings(context.TODO(), openai.EmbeddingRequestStrings{
		Model:          openai.EmbeddingModel(e.modelName),
		Input:          text,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, err
	}
	res := make([][]float32, 0, len(resp.Data))
	for _, emb := range resp.Data {
		res = append(res, emb.Embedding)
	}
	if len(res) != len(text) {
		return nil, fmt.Errorf("embedding result length %d not correct", len(res))
	}
	return res, nil
}
