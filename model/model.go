package model

import (
	"github.com/sashabaranov/go-openai"
)

// ToolDef pairs a function schema with the handler that executes it.
// The handler receives the raw JSON arguments emitted by the model and
// returns the string that is fed back as the tool result.
type ToolDef struct {
	openai.FunctionDefinition
	Handler func(argsStr string) (string, error)
}

type Model struct {
	*openai.Client
	apikey  string
	baseUrl string
}

func NewModel(baseurl string, apikey string) *Model {
	cfg := openai.DefaultConfig(apikey)
	cfg.BaseURL = baseurl
	return &Model{
		Client:  openai.NewClientWithConfig(cfg),
		apikey:  apikey,
		baseUrl: baseurl,
	}
}
