package gemini

import (
	"context"

	"github.com/mwestrik/siteqa"
	"google.golang.org/genai"
)

// AnswerModel is the Gemini model used for answer generation.
const AnswerModel = "gemini-2.5-flash"

// Ensure Answerer implements siteqa.Answerer at compile time.
var _ siteqa.Answerer = (*Answerer)(nil)

// Answerer implements siteqa.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	model  string
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(client *genai.Client) *Answerer {
	return &Answerer{client: client, model: AnswerModel}
}

// Generate produces an answer for the given prompt.
func (a *Answerer) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", siteqa.Errorf(siteqa.EINVALID, "prompt required")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", siteqa.Errorf(siteqa.EUNAVAILABLE, "generation request failed: %v", err)
	}
	if result == nil {
		return "", siteqa.Errorf(siteqa.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for answer generation.
// The system instruction pins the model to the retrieved context so it
// admits ignorance instead of improvising.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a website's content. Answer based only on the context provided. If the answer is not in the context, say you don't know.",
			}},
		},
		Temperature: &temp,
	}
}
