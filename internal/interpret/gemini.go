package interpret

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed prompt.txt
var systemPrompt string

// DefaultMaxTextLength bounds a single phrase, in characters.
const DefaultMaxTextLength = 220

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.0-flash"

var tracer = otel.Tracer("interpret")

// Config holds translator settings.
type Config struct {
	APIKey        string
	Model         string
	MaxTextLength int
}

// generator is the subset of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiTranslator implements Translator with the Gemini API.
type GeminiTranslator struct {
	models        generator
	model         string
	maxTextLength int
	genConfig     *genai.GenerateContentConfig
	logger        *zap.Logger
}

// NewGemini builds a GeminiTranslator from cfg.
func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiTranslator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating gemini client: %w", ErrInvalidConfig, err)
	}

	return newGemini(client.Models, cfg, logger), nil
}

func newGemini(models generator, cfg Config, logger *zap.Logger) *GeminiTranslator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = DefaultMaxTextLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	temperature := float32(0)
	return &GeminiTranslator{
		models:        models,
		model:         cfg.Model,
		maxTextLength: cfg.MaxTextLength,
		logger:        logger,
		genConfig: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
			Temperature:       &temperature,
			ResponseMIMEType:  "application/json",
		},
	}
}

// CheckText trims text and enforces the length limit.
func CheckText(text string, limit int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if n := utf8.RuneCountInString(text); limit > 0 && n > limit {
		return "", fmt.Errorf("%w: %d characters, limit %d", ErrTextTooLong, n, limit)
	}
	return text, nil
}

// Translate sends text to Gemini and validates the reply. A reply that is
// blocked, empty or off-contract yields Fallback with a nil error; only a
// failed call is an error.
func (g *GeminiTranslator) Translate(ctx context.Context, text string) (Command, error) {
	text, err := CheckText(text, g.maxTextLength)
	if err != nil {
		return Command{}, err
	}

	ctx, span := tracer.Start(ctx, "interpret.translate",
		trace.WithAttributes(
			attribute.String("interpret.model", g.model),
			attribute.Int("interpret.text_length", len(text)),
		),
	)
	defer span.End()

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(text), g.genConfig)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gemini call failed")
		g.logger.Error("gemini call failed", zap.String("model", g.model), zap.Error(err))
		return Command{}, fmt.Errorf("%w: %w", ErrTranslation, err)
	}

	reply, ok := replyText(resp)
	if !ok {
		g.logger.Warn("gemini returned no usable content", zap.String("model", g.model))
		span.AddEvent("reply.empty")
		return Fallback(), nil
	}

	cmd := ParseReply(reply)
	span.SetAttributes(attribute.String("interpret.mode", string(cmd.Mode)))
	span.SetStatus(codes.Ok, "")

	g.logger.Info("phrase interpreted",
		zap.String("text", text),
		zap.String("mode", string(cmd.Mode)),
		zap.String("command", cmd.Text()),
		zap.Bool("fallback", cmd.Empty()),
	)
	return cmd, nil
}

func replyText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	c := resp.Candidates[0]
	if c.Content == nil || c.FinishReason == genai.FinishReasonSafety {
		return "", false
	}

	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
