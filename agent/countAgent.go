package agent

import (
	"encoding/json"
	"fmt"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var countInstructions = `
You are a specialist in answering counting questions about IT support tickets.

` + ticketSchema + `
When you receive a question asking "how many", "count of", "total" or "number of":
1. Use the count_search function to count the matching tickets
2. State the count clearly and explain which criteria were applied
3. Cite a few example tickets by their IDs when helpful

Be precise and base your answer strictly on the search results.
`

var countSearchDef = openai.FunctionDefinition{
	Name:   "count_search",
	Strict: true,
	Description: `
Answers counting questions by searching tickets and counting the matches
(how many, number of, count of, total).
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question asking for a count or total of tickets",
			},
		},
		Required: []string{"user_question"},
	},
}

var countParsePrompt = `
Analyze this question and extract the counting criteria:

Question: %s

Extract:
1. SEARCH_QUERY: The main search topic, or an empty string when the question only combines field values (type, queue, priority)
2. FILTER: filter expression for the field constraints. Remember: "and" combining field values means filters.

` + filterSchema + `
Format your response as JSON:
{
    "search_query": "the search topic/criteria, or empty string",
    "filter": "filter expression or null if none needed",
    "explanation": "brief explanation of the logic"
}

Examples:
- "How many tickets were logged for Human Resources?"
  -> {"search_query": "", "filter": "queue == \"Human Resources\"", "explanation": "Count all tickets filtered by the HR queue"}

- "How many Incidents for Human Resources and low priority?"
  -> {"search_query": "", "filter": "type == \"Incident\" and queue == \"Human Resources\" and priority == \"low\"", "explanation": "All three are field filters"}

- "How many tickets mention printer problems?"
  -> {"search_query": "printer problems", "filter": null, "explanation": "Semantic search for printer problems, count the matches"}

Respond ONLY with the JSON object.
`

type countParams struct {
	SearchQuery string `json:"search_query"`
	Filter      string `json:"filter"`
	Explanation string `json:"explanation"`
}

func buildCountAnswer(question string, p countParams, tickets []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(tickets) == 0 {
		return noResults(question, p.SearchQuery, filter)
	}
	examples := tickets
	if len(examples) > 5 {
		examples = examples[:5]
	}
	examplesJSON, _ := json.MarshalIndent(examples, "", "  ")

	return fmt.Sprintf(`
Based on the following IT support ticket analysis, answer the counting question.

Question: %s

Search Logic: %s%s

**Result**: %d tickets match the criteria.

Example matching tickets:
%s

Provide a clear answer that states the count (%d), explains which criteria
were applied, and mentions a few example tickets by ID.
Base your answer strictly on the data provided.
`, question, p.Explanation, filterInfo(filter), len(tickets), examplesJSON, len(tickets))
}

func countSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(countParsePrompt, question))
		if err != nil {
			return parseFailure(question, "counting", err), nil
		}
		var parsed countParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "counting", err), nil
		}

		// A pure field-value count needs no vector search.
		filter := cleanFilter(parsed.Filter)
		var tickets []utils.Ticket
		if parsed.SearchQuery == "" && filter != "" {
			tickets, err = store.Query(filter, 1000)
		} else {
			tickets, err = store.Search(parsed.SearchQuery, 100, filter)
		}
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildCountAnswer(question, parsed, tickets), nil
	}
	return model.ToolDef{FunctionDefinition: countSearchDef, Handler: handler}
}

func NewCountAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := countSearchTool(base, chatModel, store)
	return newSpecialist(base, "count_agent", chatModel, countInstructions, &tool)
}
