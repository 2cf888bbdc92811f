package agent

import (
	"encoding/json"
	"fmt"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var yesNoInstructions = `
You are a specialist in answering yes/no questions about IT support tickets.

` + ticketSchema + `
When you receive a yes/no question:
1. Use the yes_no_search function to check whether matching tickets exist
2. Open your answer with a clear "Yes" or "No"
3. Back the answer with the matching tickets, cited by their IDs

Be precise and base your answer strictly on the search results.
`

var yesNoSearchDef = openai.FunctionDefinition{
	Name:   "yes_no_search",
	Strict: true,
	Description: `
Answers yes/no questions by searching tickets and checking whether any match.
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "Yes/no question about the ticket database",
			},
		},
		Required: []string{"user_question"},
	},
}

var yesNoParsePrompt = `
Analyze this yes/no question and extract the search criteria:

Question: %s

Extract:
1. SEARCH_QUERY: The topic whose existence is being asked about
2. FILTER: filter expression for any field constraints

` + filterSchema + `
Format your response as JSON:
{
    "search_query": "the search topic/criteria",
    "filter": "filter expression or null if none needed",
    "explanation": "brief explanation of the logic"
}

Example:
- "Are there any issues for Dell XPS laptops?"
  -> {"search_query": "Dell XPS laptop issues", "filter": null, "explanation": "Search for Dell XPS issues, answer yes when any ticket matches"}

Respond ONLY with the JSON object.
`

func buildYesNoAnswer(question string, p countParams, tickets []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(tickets) == 0 {
		return fmt.Sprintf(`
Based on the ticket search, answer the yes/no question.

Question: %s

Search Logic: %s%s

**Result**: No tickets matched the criteria '%s'. The answer is No.

Answer with a clear "No" and explain that no matching tickets were found.
`, question, p.Explanation, filterInfo(filter), p.SearchQuery)
	}
	matchesJSON, _ := json.MarshalIndent(tickets, "", "  ")
	return fmt.Sprintf(`
Based on the ticket search, answer the yes/no question.

Question: %s

Search Logic: %s%s

**Result**: %d tickets matched. The answer is Yes.

Matching tickets:
%s

Answer with a clear "Yes" and cite the matching tickets by ID.
Base your answer strictly on the search results provided.
`, question, p.Explanation, filterInfo(filter), len(tickets), matchesJSON)
}

func yesNoSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(yesNoParsePrompt, question))
		if err != nil {
			return parseFailure(question, "yes/no", err), nil
		}
		var parsed countParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "yes/no", err), nil
		}

		tickets, err := store.Search(parsed.SearchQuery, 5, cleanFilter(parsed.Filter))
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildYesNoAnswer(question, parsed, tickets), nil
	}
	return model.ToolDef{FunctionDefinition: yesNoSearchDef, Handler: handler}
}

func NewYesNoAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := yesNoSearchTool(base, chatModel, store)
	return newSpecialist(base, "yes_no_agent", chatModel, yesNoInstructions, &tool)
}
