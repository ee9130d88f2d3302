package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

const defaultModel = "gemini-2.0-flash"

// retrievalLimit is the number of documents fed into the prompt.
const retrievalLimit = 5

// Answer is the assistant's reply with the sources it was based on.
type Answer struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources"`
	// Grounded is false when no document matched the question
	Grounded bool `json:"grounded"`
}

// Service answers staffing questions over the retrieval corpus.
type Service struct {
	client *genai.Client
	model  string
}

// NewService creates the chat service. Without an API key the service
// still works, it then answers with the retrieved summaries only.
func NewService(ctx context.Context, apiKey, model string) (*Service, error) {
	if model == "" {
		model = defaultModel
	}

	if apiKey == "" {
		log.Info().Msg("GEMINI_API_KEY is not set, chat answers use retrieval only")
		return &Service{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Service{client: client, model: model}, nil
}

// Chat retrieves the most relevant summaries for the question and asks
// the model to answer from them.
func (s *Service) Chat(ctx context.Context, db *gorm.DB, question, entityFilter string) (Answer, error) {
	scored, err := Retrieve(db, question, entityFilter, retrievalLimit)
	if err != nil {
		return Answer{}, err
	}

	if len(scored) == 0 {
		return Answer{
			Text:    "I could not find any staffing data matching your question. Try asking about a specific project or employee, or reindex the assistant data.",
			Sources: []string{},
		}, nil
	}

	sources := make([]string, 0, len(scored))
	contexts := make([]string, 0, len(scored))
	for _, doc := range scored {
		sources = append(sources, doc.Document.Title)
		contexts = append(contexts, doc.Document.Content)
	}

	answer := Answer{Sources: sources, Grounded: true}

	if s.client == nil {
		answer.Text = strings.Join(contexts, "\n")
		return answer, nil
	}

	prompt := fmt.Sprintf(
		"You are a staffing assistant. Answer the question using only the context below. "+
			"Keep the answer short and mention concrete hours and percentages where available.\n\nContext:\n%s\n\nQuestion: %s",
		strings.Join(contexts, "\n---\n"), question)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		// The retrieval result is still a useful answer when the model
		// is unreachable
		log.Error().Err(err).Msg("GenAI request failed, falling back to retrieval only")
		answer.Text = strings.Join(contexts, "\n")
		return answer, nil
	}

	answer.Text = resp.Text()
	return answer, nil
}
