package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/ragscrape"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultTokenizerModel is used when no tokenizer model is named. Embedding
// models ship no local tokenizer, so chunk tokens are counted with a
// generation model of the same family.
const DefaultTokenizerModel = "gemini-2.0-flash"

var _ ragscrape.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts chunk tokens offline. The tokenizer model is fetched
// and cached by the genai SDK on first construction.
type TokenCounter struct {
	model string
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer of model, or of
// DefaultTokenizerModel when model is empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultTokenizerModel
	}
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, ragscrape.Errorf(ragscrape.EINVALID, "no tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{model: model, local: local}, nil
}

// Model names the tokenizer in use.
func (tc *TokenCounter) Model() string { return tc.model }

// CountTokens returns the token count of text. Blank text has no tokens.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	res, err := tc.local.CountTokens(contents, nil)
	if err != nil {
		return 0, ragscrape.Errorf(ragscrape.EINTERNAL, "count tokens with %s: %v", tc.model, err)
	}
	return int(res.TotalTokens), nil
}
