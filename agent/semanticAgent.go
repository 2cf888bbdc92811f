package agent

import (
	"encoding/json"
	"fmt"
	"ticket_rag/model"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var semanticInstructions = `
You are a specialist in answering general questions about IT support tickets
by finding similar issues and their solutions.

` + ticketSchema + `
When you receive a question:
1. Use the semantic_search function to retrieve the most similar tickets
2. Base your answer solely on the retrieved tickets - do not hallucinate
3. If no relevant tickets are found, explicitly state that the database contains no matching information
4. Cite the tickets you use by their IDs

Be precise and base your answer strictly on the search results.
`

var semanticSearchDef = openai.FunctionDefinition{
	Name:   "semantic_search",
	Strict: true,
	Description: `
Retrieves the tickets most similar to the user question for grounding the answer.
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question to search similar tickets for",
			},
		},
		Required: []string{"user_question"},
	},
}

func semanticSearchTool(store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		tickets, err := store.Search(question, 10, "")
		if err != nil {
			return searchFailure(question, err), nil
		}
		if len(tickets) == 0 {
			return noResults(question, question, ""), nil
		}
		ticketsJSON, _ := json.MarshalIndent(tickets, "", "  ")
		return fmt.Sprintf(`
Based on the following IT support tickets, answer the question.

Question: %s

Retrieved tickets (most similar first):
%s

Answer the question using only these tickets, citing them by ID.
If they do not contain the answer, say so explicitly.
`, question, ticketsJSON), nil
	}
	return model.ToolDef{FunctionDefinition: semanticSearchDef, Handler: handler}
}

func NewSemanticSearchAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := semanticSearchTool(store)
	return newSpecialist(base, "semantic_search_agent", chatModel, semanticInstructions, &tool)
}
