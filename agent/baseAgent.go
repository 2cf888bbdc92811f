package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"ticket_rag/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ctxLogger returns the logger carried by ctx (set by the router with the
// per-question query_id), or the package logger when none is set.
func ctxLogger(ctx context.Context) *zerolog.Logger {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return logger
}

type BaseAgent struct {
	model *model.Model
}

func NewBaseAgent(m *model.Model) BaseAgent {
	return BaseAgent{model: m}
}

// AgentContext holds the message history and registered tools of one
// conversation turn with the chat-completion service.
type AgentContext struct {
	model    string
	messages []openai.ChatCompletionMessage
	tools    []model.ToolDef
	handlers map[string]func(string) (string, error)
	final    string
	finished bool
}

func NewAgentContext(userprompt string) *AgentContext {
	agentCtx := &AgentContext{
		handlers: make(map[string]func(string) (string, error)),
	}
	if userprompt != "" {
		agentCtx.messages = append(agentCtx.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: userprompt,
		})
	}
	return agentCtx
}

func (agentCtx *AgentContext) registerTool(tools []model.ToolDef) {
	for _, tool := range tools {
		agentCtx.tools = append(agentCtx.tools, tool)
		agentCtx.handlers[tool.Name] = tool.Handler
	}
}

func (agentCtx *AgentContext) genRequest(sysprompt string) openai.ChatCompletionRequest {
	msgs := make([]openai.ChatCompletionMessage, 0, len(agentCtx.messages)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: sysprompt,
	})
	msgs = append(msgs, agentCtx.messages...)

	var tools []openai.Tool
	for i := range agentCtx.tools {
		tools = append(tools, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: &agentCtx.tools[i].FunctionDefinition,
		})
	}
	return openai.ChatCompletionRequest{
		Model:    agentCtx.model,
		Messages: msgs,
		Tools:    tools,
	}
}

func (agentCtx *AgentContext) done() bool {
	return agentCtx.finished
}

// handleResponse drains the completion stream, reassembles any tool calls
// from the deltas, executes the handlers and appends the tool results to the
// history. A reply without tool calls is the final response.
func (agent *BaseAgent) handleResponse(ctx context.Context, stream *openai.ChatCompletionStream, agentCtx *AgentContext) {
	var content strings.Builder
	calls := make(map[int]*openai.ToolCall)
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ctxLogger(ctx).Error().Err(err).Msg("recv chat completion stream failed")
			agentCtx.final = fmt.Sprintf("Error: the chat service failed mid-response.\nDetails: %s", err)
			agentCtx.finished = true
			return
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta
		content.WriteString(delta.Content)
		for _, tc := range delta.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}
			call, ok := calls[idx]
			if !ok {
				c := tc
				calls[idx] = &c
				continue
			}
			call.Function.Arguments += tc.Function.Arguments
			if tc.Function.Name != "" {
				call.Function.Name = tc.Function.Name
			}
			if tc.ID != "" {
				call.ID = tc.ID
			}
		}
	}

	if len(calls) == 0 {
		agentCtx.final = content.String()
		agentCtx.messages = append(agentCtx.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: agentCtx.final,
		})
		agentCtx.finished = true
		return
	}

	indexes := make([]int, 0, len(calls))
	for idx := range calls {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	toolCalls := make([]openai.ToolCall, 0, len(indexes))
	for _, idx := range indexes {
		toolCalls = append(toolCalls, *calls[idx])
	}
	agentCtx.messages = append(agentCtx.messages, openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		Content:   content.String(),
		ToolCalls: toolCalls,
	})

	for _, call := range toolCalls {
		handler, ok := agentCtx.handlers[call.Function.Name]
		var result string
		if !ok {
			result = fmt.Sprintf("unknown tool %s", call.Function.Name)
		} else if res, err := handler(call.Function.Arguments); err != nil {
			ctxLogger(ctx).Error().Err(err).Str("tool", call.Function.Name).Msg("tool handler failed")
			result = fmt.Sprintf("tool %s failed: %s", call.Function.Name, err)
		} else {
			result = res
		}
		agentCtx.messages = append(agentCtx.messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result,
			Name:       call.Function.Name,
			ToolCallID: call.ID,
		})
	}
}

// complete sends a single prompt without tools and returns the raw reply.
// Used for the structured-field parse prompts of the specialist tools.
func (agent *BaseAgent) complete(modelName string, prompt string) (string, error) {
	resp, err := agent.model.CreateChatCompletion(context.TODO(), openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
