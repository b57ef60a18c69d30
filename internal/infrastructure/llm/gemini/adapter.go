package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
	"marketing-crew/internal/infrastructure/llm"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var _ output.LLMPort = (*Adapter)(nil)

const providerName = "gemini"

type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
	Timeout     time.Duration
	Logger      output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		Model:       "gemini-2.0-flash",
		Temperature: 0.1,
		MaxTokens:   2048,
		Timeout:     30 * time.Second,
	}
}

// Adapter calls Gemini natively with function calling.
type Adapter struct {
	client *genai.Client
	cfg    Config
	logger output.LoggerPort
}

func NewAdapter(ctx context.Context, cfg Config) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing Gemini API key", entity.ErrConfiguration)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &Adapter{client: client, cfg: cfg, logger: cfg.Logger}, nil
}

func (a *Adapter) Close() error {
	return a.client.Close()
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	model := a.client.GenerativeModel(a.cfg.Model)
	model.SetTemperature(a.cfg.Temperature)
	model.SetMaxOutputTokens(a.cfg.MaxTokens)
	if len(req.Tools) > 0 {
		model.Tools = []*genai.Tool{{FunctionDeclarations: convertTools(req.Tools)}}
	}

	system, history := convertMessages(req.Messages)
	if system != nil {
		model.SystemInstruction = system
	}
	if len(history) == 0 {
		return nil, errors.New("gemini: no message to send")
	}

	last := history[len(history)-1]
	session := model.StartChat()
	session.History = history[:len(history)-1]

	start := time.Now()
	resp, err := session.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, llm.WrapError(providerName, statusOf(err), fmt.Errorf("gemini generate: %w", err))
	}

	if a.logger != nil {
		a.logger.Debug("Gemini response", "model", a.cfg.Model, "candidates", len(resp.Candidates), "duration_ms", time.Since(start).Milliseconds())
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, llm.WrapError(providerName, 0, errors.New("gemini: empty response"))
	}

	return &output.ChatResponse{
		Message: convertResponse(resp.Candidates[0].Content),
	}, nil
}

func statusOf(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// convertMessages splits out the system prompt and merges consecutive turns of
// the same role, which Gemini requires.
func convertMessages(messages []entity.Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	var history []*genai.Content

	appendParts := func(role string, parts ...genai.Part) {
		if len(parts) == 0 {
			return
		}
		if n := len(history); n > 0 && history[n-1].Role == role {
			history[n-1].Parts = append(history[n-1].Parts, parts...)
			return
		}
		history = append(history, &genai.Content{Role: role, Parts: parts})
	}

	for _, msg := range messages {
		switch msg.Role {
		case entity.MessageRoleSystem:
			if system == nil {
				system = &genai.Content{}
			}
			system.Parts = append(system.Parts, genai.Text(msg.Content))

		case entity.MessageRoleUser:
			appendParts("user", genai.Text(msg.Content))

		case entity.MessageRoleAssistant:
			var parts []genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				parts = append(parts, genai.FunctionCall{Name: tc.Name, Args: decodeArgs(tc.Arguments)})
			}
			appendParts("model", parts...)

		case entity.MessageRoleTool:
			appendParts("user", genai.FunctionResponse{
				Name:     msg.Name,
				Response: map[string]any{"result": msg.Content},
			})
		}
	}

	return system, history
}

func decodeArgs(arguments string) map[string]any {
	args := map[string]any{}
	if arguments == "" {
		return args
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return map[string]any{"input": arguments}
	}
	return args
}

func convertResponse(content *genai.Content) entity.Message {
	result := entity.Message{Role: entity.MessageRoleAssistant}

	for _, part := range content.Parts {
		switch p := part.(type) {
		case genai.Text:
			result.Content += string(p)
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				args = []byte("{}")
			}
			result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
				ID:        "call_" + uuid.NewString(),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}

	return result
}

func convertTools(tools []entity.ToolDefinition) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		result = append(result, &genai.FunctionDeclaration{
			Name:        t.Name.String(),
			Description: t.Description,
			Parameters:  convertSchema(t.Parameters),
		})
	}
	return result
}

// convertSchema turns the JSON-schema maps the tools declare into genai.Schema.
// Only the keywords the tools use are understood.
func convertSchema(m map[string]interface{}) *genai.Schema {
	if m == nil {
		return nil
	}

	schema := &genai.Schema{}

	if t, ok := m["type"].(string); ok {
		schema.Type = schemaType(t)
	}
	if d, ok := m["description"].(string); ok {
		schema.Description = d
	}
	schema.Enum = stringSlice(m["enum"])
	schema.Required = stringSlice(m["required"])

	if props, ok := m["properties"].(map[string]interface{}); ok && len(props) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if prop, ok := raw.(map[string]interface{}); ok {
				schema.Properties[name] = convertSchema(prop)
			}
		}
	}
	if items, ok := m["items"].(map[string]interface{}); ok {
		schema.Items = convertSchema(items)
	}

	return schema
}

func schemaType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

func stringSlice(v interface{}) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []interface{}:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}
