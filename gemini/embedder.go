// Package gemini provides embedding and token accounting backed by the
// Google Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/ragscrape"
	"google.golang.org/genai"
)

// TaskRetrievalDocument marks embeddings of passages stored for retrieval.
const TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"

// Ensure Embedder implements ragscrape.EmbeddingModel at compile time.
var _ ragscrape.EmbeddingModel = (*Embedder)(nil)

// Embedder implements ragscrape.EmbeddingModel using Gemini embeddings.
type Embedder struct {
	client *genai.Client
	model  string
	// dimension is the requested output dimensionality. Zero keeps the
	// model's native size.
	dimension int32
}

// NewEmbedder creates a new Embedder for model.
func NewEmbedder(client *genai.Client, model string, dimension int) *Embedder {
	if model == "" {
		model = ragscrape.DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model, dimension: int32(dimension)}
}

// Embed returns one vector per text in a single batch request.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, e.config())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ragscrape.Errorf(ragscrape.EINTERNAL, "gemini returned nil embedding response")
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, ragscrape.Errorf(ragscrape.EINTERNAL, "gemini returned empty embedding at %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

func (e *Embedder) config() *genai.EmbedContentConfig {
	config := &genai.EmbedContentConfig{TaskType: TaskRetrievalDocument}
	if e.dimension > 0 {
		config.OutputDimensionality = &e.dimension
	}
	return config
}
