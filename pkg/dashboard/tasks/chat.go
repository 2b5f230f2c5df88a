package tasks

import (
	"context"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// honestAIInstruction is forwarded as is, the model is asked to echo the user message
const honestAIInstruction = "you are echobot AI assistant work like bot will then respond by sending the same message back to you"

type chatCompleter interface {
	Complete(ctx context.Context, apiKey, model, instruction, message string) (string, error)
}

type genaiCompleter struct {
	baseURL string
}

func (g genaiCompleter) Complete(ctx context.Context, apiKey, model, instruction, message string) (string, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", errors.Wrap(err, "error creating genai client")
	}

	result, err := client.Models.GenerateContent(ctx, model,
		genai.Text(message),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		},
	)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

type chatProperties struct {
	Model   string
	BaseURL string
}

// HonestAI sends the user message to a Gemini model instructed to echo it back
type HonestAI struct {
	BaseTask
	props     chatProperties
	completer chatCompleter
}

func (h *HonestAI) Execute(ctx context.Context, sub *state.Submission) (Result, error) {
	out, err := h.completer.Complete(ctx, sub.Value("apiKey"), h.props.Model, honestAIInstruction, sub.Value("message"))
	if err != nil {
		return Result{}, taskerrors.NewExternalCallError("An error occurred", err)
	}
	return Result{Message: "Honest AI Responds:", Output: out}, nil
}

func init() {
	RegisterTask("honest-ai", newHonestAI)
}

func newHonestAI(base BaseTask) (Task, error) {
	props := chatProperties{Model: "gemini-1.5-flash"}
	if err := base.decodeProperties(&props); err != nil {
		return nil, err
	}
	message := textAreaCallback("message", "Your Message")
	message.Properties = map[string]string{"placeholder": "e.g., Hello, world!"}
	base.callbacks = []callbacks.Callback{
		passwordCallback("apiKey", "Enter your API Key"),
		message,
	}
	base.invalidMessage = "Please enter your API key and a message."
	return &HonestAI{
		BaseTask:  base,
		props:     props,
		completer: genaiCompleter{baseURL: props.BaseURL},
	}, nil
}
