package agent

import (
	"context"
	"fmt"
	"ticket_rag/model"
	"ticket_rag/utils"
)

// TicketSearcher is the slice of the ticket store the specialist tools need.
type TicketSearcher interface {
	Search(text string, topK int, filter string) ([]utils.Ticket, error)
	Query(filter string, limit int) ([]utils.Ticket, error)
}

// Specialist is a named bundle of instructions and at most one tool,
// run against the chat-completion service.
type Specialist struct {
	BaseAgent
	Name         string
	Instructions string
	ChatModel    string
	Tool         *model.ToolDef
}

func newSpecialist(base BaseAgent, name string, chatModel string, instructions string, tool *model.ToolDef) *Specialist {
	return &Specialist{
		BaseAgent:    base,
		Name:         name,
		ChatModel:    chatModel,
		Instructions: instructions,
		Tool:         tool,
	}
}

// Answer runs the chat loop for one user question until the model produces a
// reply without tool calls. The logger carried by ctx tags every log line
// emitted mid-answer with the routing query_id.
func (agent *Specialist) Answer(ctx context.Context, question string) string {
	agentCtx := NewAgentContext(question)
	agentCtx.model = agent.ChatModel
	if agent.Tool != nil {
		agentCtx.registerTool([]model.ToolDef{*agent.Tool})
	}
	for {
		req := agentCtx.genRequest(agent.Instructions)
		stream, err := agent.model.CreateChatCompletionStream(ctx, req)
		if err != nil {
			ctxLogger(ctx).Error().Err(err).Str("agent", agent.Name).Msg("create chat completion stream failed")
			return fmt.Sprintf("Question: %s\n\nError: the chat service is unavailable.\nDetails: %s", question, err)
		}
		agent.handleResponse(ctx, stream, agentCtx)
		stream.Close()
		if agentCtx.done() {
			break
		}
	}
	return agentCtx.final
}

func parseFailure(question string, kind string, err error) string {
	return fmt.Sprintf(
		"Question: %s\n\nError: Unable to parse the %s question. Please rephrase your question.\nDetails: %s",
		question, kind, err)
}

func searchFailure(question string, err error) string {
	return fmt.Sprintf(
		"Question: %s\n\nError: the ticket search failed.\nDetails: %s",
		question, err)
}

func filterInfo(filter string) string {
	if filter == "" {
		return "\nNo filter applied (semantic search only)"
	}
	return fmt.Sprintf("\nApplied Filter: %s", filter)
}

func noResults(question string, query string, filter string) string {
	info := ""
	if filter != "" {
		info = fmt.Sprintf(" with filter: %s", filter)
	}
	return fmt.Sprintf(
		"Question: %s\n\nNo tickets were found matching the search criteria: '%s'%s",
		question, query, info)
}
