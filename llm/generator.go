package llm

import "context"

// Generator is the external generation collaborator. The pipeline hands it
// assembled context and a query; everything about inference itself lives
// behind this boundary. Implementations must respect ctx cancellation so the
// orchestrator's timeout degrades the call instead of hanging it.
type Generator interface {
	GenerateInference(
		ctx context.Context,
		messages []Message,
		callback func(chunk string) error,
		opts ...Option,
	) error

	GetModel() string
}

type Settings struct {
	model       string  // model name
	temperature float64 // randomness (0.0 to 1.0)
	maxTokens   int     // maximum tokens to generate
	system      string  // system prompt
}

type Option func(*Settings)

func WithTemperature(temp float64) Option {
	return func(s *Settings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) Option {
	return func(s *Settings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) Option {
	return func(s *Settings) { s.system = prompt }
}

func WithModel(model string) Option {
	return func(s *Settings) { s.model = model }
}

type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // the message content
}
