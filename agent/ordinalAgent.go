package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var ordinalInstructions = `
You are a specialist in answering ordinal/order-based questions about IT support tickets.

` + ticketSchema + `
When you receive a question asking about items based on their position or order:
1. Use the ordinal_search function to retrieve relevant tickets with ordering
2. Analyze the search results to identify items at the requested position (ordered by Create_Date)
3. Provide a clear answer identifying the specific item(s) at that position
4. Cite specific details from the tickets using their IDs

Be precise and base your answer strictly on the search results.
Clearly explain which position/order criterion was used.
`

var ordinalSearchDef = openai.FunctionDefinition{
	Name:   "ordinal_search",
	Strict: true,
	Description: `
Answers ordinal questions by searching tickets and identifying items at specific positions
(first, last, most recent, oldest, top, bottom, nth item).
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question requiring finding items based on order/position",
			},
		},
		Required: []string{"user_question"},
	},
}

var ordinalParsePrompt = `
Analyze this question and extract the ordinal information and search criteria:

Question: %s

Extract:
1. ORDINAL_TYPE: The ordinal/position requested (first, last, most recent, oldest, second, third, top N, bottom N, etc.)
2. SEARCH_QUERY: The main search criteria/topic
3. FILTER: filter expression for any field constraints (type, queue, priority, etc.)
4. SORT_ORDER: How to sort the results by create_date to find the ordinal position (asc or desc, based on what makes sense for the ordinal)

` + filterSchema + `
Format your response as JSON:
{
    "ordinal_type": "the ordinal position requested (e.g., 'last', 'first', 'most recent', '3rd')",
    "search_query": "the search topic/criteria",
    "filter": "filter expression or null if none needed",
    "sort_order": "desc for last/most recent/latest, asc for first/oldest/earliest",
    "position_index": "0 for first/oldest, -1 for last/most recent, or specific 0-based index",
    "explanation": "brief explanation of the logic"
}

Examples:
- "What is the last issue for the HR department?"
  -> {"ordinal_type": "last", "search_query": "issues", "filter": "queue == \"Human Resources\"", "sort_order": "desc", "position_index": 0, "explanation": "Find issues for HR, sorted by create_date descending (most recent first), take first (which is last chronologically)"}

- "What was the first high priority incident?"
  -> {"ordinal_type": "first", "search_query": "incidents", "filter": "priority == \"high\" and type == \"Incident\"", "sort_order": "asc", "position_index": 0, "explanation": "Find high priority incidents, sorted by create_date ascending (oldest first), take first"}

- "Show me the 3rd ticket for IT department"
  -> {"ordinal_type": "3rd", "search_query": "tickets", "filter": "queue == \"IT\"", "sort_order": "desc", "position_index": 2, "explanation": "Find IT tickets sorted by create_date descending, take the 3rd one (index 2)"}

- "What is the most recent Surface problem?"
  -> {"ordinal_type": "most recent", "search_query": "Surface problem", "filter": null, "sort_order": "desc", "position_index": 0, "explanation": "Find Surface problems, sorted by create_date descending (most recent first)"}

Respond ONLY with the JSON object.
`

type ordinalParams struct {
	OrdinalType   string `json:"ordinal_type"`
	SearchQuery   string `json:"search_query"`
	Filter        string `json:"filter"`
	SortOrder     string `json:"sort_order"`
	PositionIndex any    `json:"position_index"`
	Explanation   string `json:"explanation"`
}

// buildOrdinalAnswer sorts the search results, resolves the requested
// position and returns the analysis prompt the model phrases the final
// answer from.
func buildOrdinalAnswer(question string, p ordinalParams, tickets []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(tickets) == 0 {
		return noResults(question, p.SearchQuery, filter)
	}

	sortOrder := p.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	utils.SortByCreateDate(tickets, sortOrder == "desc")

	pos := asInt(p.PositionIndex, 0)
	ordinal := strings.ToLower(strings.TrimSpace(p.OrdinalType))
	wantLast := pos == -1 ||
		ordinal == "last" || ordinal == "most recent" || ordinal == "latest" || ordinal == "newest"

	var target int
	if wantLast {
		// Under a desc sort the chronologically last ticket comes first.
		if sortOrder == "desc" {
			target = 0
		} else {
			target = len(tickets) - 1
		}
	} else {
		target = pos
	}
	if target < 0 || target >= len(tickets) {
		return fmt.Sprintf(
			"Question: %s\n\nOnly %d tickets were found, but position %d was requested.\nAvailable positions: 1 to %d",
			question, len(tickets), target+1, len(tickets))
	}

	targetJSON, _ := json.MarshalIndent(tickets[target], "", "  ")
	allJSON, _ := json.MarshalIndent(tickets, "", "  ")

	return fmt.Sprintf(`
Based on the following IT support tickets, answer the ordinal question.

Question: %s

Search Logic: %s
- Ordinal requested: %s
- Sort order: %s
- Position index: %d (0-based)
- Total results found: %d%s

The ticket at the requested position:
%s

All retrieved tickets for context:
%s

Provide a detailed answer that:
1. Clearly identifies the ticket at the requested ordinal position
2. Provides comprehensive details about that specific ticket
3. Explains why this ticket is at that position (e.g., "This is the most recent because...")
4. Mentions any relevant context from other tickets if helpful

Format your response clearly with the ticket ID and all relevant details.
Base your answer strictly on the search results provided.
`, question, p.Explanation, p.OrdinalType, sortOrder, target, len(tickets), filterInfo(filter), targetJSON, allJSON)
}

func ordinalSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(ordinalParsePrompt, question))
		if err != nil {
			return parseFailure(question, "ordinal", err), nil
		}
		var parsed ordinalParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "ordinal", err), nil
		}

		tickets, err := store.Search(parsed.SearchQuery, 20, cleanFilter(parsed.Filter))
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildOrdinalAnswer(question, parsed, tickets), nil
	}
	return model.ToolDef{FunctionDefinition: ordinalSearchDef, Handler: handler}
}

func NewOrdinalAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := ordinalSearchTool(base, chatModel, store)
	return newSpecialist(base, "ordinal_agent", chatModel, ordinalInstructions, &tool)
}
