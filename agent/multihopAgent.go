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

var multiHopInstructions = `
You are a specialist in answering multi-hop questions about IT support tickets:
search for a condition, then extract a different attribute from the matches.

` + ticketSchema + `
When you receive a question asking for a field of the tickets matching a condition
(e.g. "Which queue handles password reset requests?"):
1. Use the multi_hop_search function to retrieve the matching tickets and the extracted field values
2. State which field value(s) the matching tickets carry, with counts
3. Cite supporting tickets by their IDs

Be precise and base your answer strictly on the search results.
`

var multiHopSearchDef = openai.FunctionDefinition{
	Name:   "multi_hop_search",
	Strict: true,
	Description: `
Answers multi-hop questions by searching a condition and extracting a
different field from the matching tickets.
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question asking for an attribute of tickets matching a condition",
			},
		},
		Required: []string{"user_question"},
	},
}

var multiHopParsePrompt = `
Analyze this multi-hop question and extract the search condition and the field to extract:

Question: %s

Extract:
1. SEARCH_QUERY: The condition to search for
2. EXTRACT_FIELD: The ticket field whose value answers the question (Queue, Type, Priority, ...)
3. FILTER: filter expression for any additional field constraints (optional)

` + filterSchema + `
Format your response as JSON:
{
    "search_query": "the condition to search for",
    "extract_field": "the field to extract from the matches (e.g., 'Queue', 'Type', 'Priority')",
    "filter": "filter expression or null if none needed",
    "explanation": "brief explanation of the logic"
}

Examples:
- "What department had consultants with Login Issues?"
  -> {"search_query": "consultant login issues", "extract_field": "Queue", "filter": null, "explanation": "Search consultant login issues, extract the Queue of the matches"}

- "Which priority level has the most printer problems?"
  -> {"search_query": "printer problems", "extract_field": "Priority", "filter": null, "explanation": "Search printer problems, extract the Priority of the matches"}

Respond ONLY with the JSON object.
`

type multiHopParams struct {
	SearchQuery  string `json:"search_query"`
	ExtractField string `json:"extract_field"`
	Filter       string `json:"filter"`
	Explanation  string `json:"explanation"`
}

func buildMultiHopAnswer(question string, p multiHopParams, tickets []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(tickets) == 0 {
		return noResults(question, p.SearchQuery, filter)
	}

	groups := utils.GroupByField(tickets, p.ExtractField)
	ranked := rankGroups(groups, "most")

	var breakdown strings.Builder
	for i, g := range ranked {
		breakdown.WriteString(fmt.Sprintf("  %d. %s: %d tickets\n", i+1, g.Value, g.Count))
	}
	examples := tickets
	if len(examples) > 5 {
		examples = examples[:5]
	}
	examplesJSON, _ := json.MarshalIndent(examples, "", "  ")

	return fmt.Sprintf(`
Based on the following IT support ticket analysis, answer the multi-hop question.

Question: %s

Search Logic: %s
- Condition searched: %s
- Field extracted: %s
- Total matches: %d%s

%s values of the matching tickets (by frequency):
%s
Example matching tickets:
%s

State which %s value(s) the matching tickets carry - the dominant value is %s -
give the counts, and cite supporting tickets by ID.
Base your answer strictly on the data provided.
`, question, p.Explanation, p.SearchQuery, p.ExtractField, len(tickets), filterInfo(filter),
		p.ExtractField, breakdown.String(), examplesJSON,
		p.ExtractField, ranked[0].Value)
}

func multiHopSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(multiHopParsePrompt, question))
		if err != nil {
			return parseFailure(question, "multi-hop", err), nil
		}
		var parsed multiHopParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "multi-hop", err), nil
		}

		tickets, err := store.Search(parsed.SearchQuery, 20, cleanFilter(parsed.Filter))
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildMultiHopAnswer(question, parsed, tickets), nil
	}
	return model.ToolDef{FunctionDefinition: multiHopSearchDef, Handler: handler}
}

func NewMultiHopAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := multiHopSearchTool(base, chatModel, store)
	return newSpecialist(base, "multi_hop_agent", chatModel, multiHopInstructions, &tool)
}
