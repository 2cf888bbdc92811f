package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var superlativeInstructions = `
You are a specialist in answering superlative (max/min) questions about IT support tickets.

` + ticketSchema + `
When you receive a question asking about maximum, minimum, most, least, highest, lowest, etc.:
1. Use the superlative_search function to retrieve and analyze relevant tickets
2. Group and count tickets by the relevant dimension
3. Identify the item(s) that satisfy the superlative condition
4. Provide a clear answer with supporting data

Be precise and base your answer strictly on the search results.
Provide counts and rankings to support your answer.
`

var superlativeSearchDef = openai.FunctionDefinition{
	Name:   "superlative_search",
	Strict: true,
	Description: `
Answers superlative questions by searching tickets and finding max/min values
(most, least, highest, lowest, maximum, minimum).
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question requiring finding max/min values",
			},
		},
		Required: []string{"user_question"},
	},
}

var superlativeParsePrompt = `
Analyze this question and extract the superlative information and search criteria:

Question: %s

Extract:
1. SUPERLATIVE_TYPE: The superlative requested (most, least, highest, lowest, maximum, minimum, greatest, fewest, etc.)
2. SEARCH_QUERY: The main search criteria/topic (what type of tickets to search)
3. GROUP_BY_FIELD: The field to group by for comparison (Queue, Type, Priority, etc.)
4. FILTER: filter expression for any additional constraints (optional)
5. AGGREGATION: What to aggregate (count, or a specific field)

` + filterSchema + `
Format your response as JSON:
{
    "superlative_type": "the superlative requested (e.g., 'most', 'least', 'highest')",
    "search_query": "the search topic/criteria",
    "group_by_field": "the field to group results by (e.g., 'Queue', 'Type', 'Priority')",
    "filter": "filter expression or null if none needed",
    "aggregation": "count or specific field to aggregate",
    "explanation": "brief explanation of the logic"
}

Examples:
- "Which department has the most high priority incidents?"
  -> {"superlative_type": "most", "search_query": "incidents", "group_by_field": "Queue", "filter": "priority == \"high\" and type == \"Incident\"", "aggregation": "count", "explanation": "Count incidents grouped by Queue, filtered by high priority, find max count"}

- "What ticket type has the fewest problems?"
  -> {"superlative_type": "fewest", "search_query": "problems", "group_by_field": "Type", "filter": null, "aggregation": "count", "explanation": "Count all tickets grouped by Type, find min count"}

- "Which priority level has the most Surface issues?"
  -> {"superlative_type": "most", "search_query": "Surface issues", "group_by_field": "Priority", "filter": null, "aggregation": "count", "explanation": "Search for Surface issues, group by Priority, find max count"}

- "What queue handles the least number of requests?"
  -> {"superlative_type": "least", "search_query": "requests", "group_by_field": "Queue", "filter": "type == \"Request\"", "aggregation": "count", "explanation": "Count Request type tickets grouped by Queue, find min count"}

Respond ONLY with the JSON object.
`

type superlativeParams struct {
	SuperlativeType string `json:"superlative_type"`
	SearchQuery     string `json:"search_query"`
	GroupByField    string `json:"group_by_field"`
	Filter          string `json:"filter"`
	Aggregation     string `json:"aggregation"`
	Explanation     string `json:"explanation"`
}

type groupCount struct {
	Value string
	Count int
}

func isMaxSuperlative(superlative string) bool {
	switch strings.ToLower(strings.TrimSpace(superlative)) {
	case "most", "highest", "maximum", "greatest", "largest":
		return true
	}
	return false
}

// rankGroups orders the group-by buckets by size: biggest first for a max
// superlative, smallest first otherwise. Ties break on the group value so
// the ranking is stable.
func rankGroups(groups map[string][]utils.Ticket, superlative string) []groupCount {
	ranked := make([]groupCount, 0, len(groups))
	for value, tickets := range groups {
		ranked = append(ranked, groupCount{Value: value, Count: len(tickets)})
	}
	isMax := isMaxSuperlative(superlative)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			if isMax {
				return ranked[i].Count > ranked[j].Count
			}
			return ranked[i].Count < ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	return ranked
}

func buildSuperlativeAnswer(question string, p superlativeParams, tickets []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(tickets) == 0 {
		return noResults(question, p.SearchQuery, filter)
	}

	groups := utils.GroupByField(tickets, p.GroupByField)
	ranked := rankGroups(groups, p.SuperlativeType)
	if len(ranked) == 0 {
		return fmt.Sprintf(
			"Question: %s\n\nUnable to determine superlative - no groups found for field '%s'",
			question, p.GroupByField)
	}
	winner := ranked[0]

	examples := groups[winner.Value]
	if len(examples) > 5 {
		examples = examples[:5]
	}
	examplesJSON, _ := json.MarshalIndent(examples, "", "  ")

	var breakdown strings.Builder
	for i, g := range ranked {
		breakdown.WriteString(fmt.Sprintf("  %d. %s: %d tickets\n", i+1, g.Value, g.Count))
	}

	return fmt.Sprintf(`
Based on the following IT support ticket analysis, answer the superlative question.

Question: %s

Search Logic: %s
- Superlative requested: %s
- Grouped by: %s
- Total tickets analyzed: %d%s

**Result**: The %s with the %s is: **%s** with %d tickets

Ranking by %s:
%s
Example tickets from %s:
%s

Provide a detailed answer that:
1. Clearly states which %s has the %s (the answer is %s)
2. Provides the count (%d)
3. Shows the ranking breakdown for context
4. Mentions a few example tickets from the winning group

Format your response clearly with the superlative result highlighted.
Base your answer strictly on the data provided.
`, question, p.Explanation, p.SuperlativeType, p.GroupByField, len(tickets), filterInfo(filter),
		p.GroupByField, p.SuperlativeType, winner.Value, winner.Count,
		p.GroupByField, breakdown.String(), winner.Value, examplesJSON,
		p.GroupByField, p.SuperlativeType, winner.Value, winner.Count)
}

func superlativeSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(superlativeParsePrompt, question))
		if err != nil {
			return parseFailure(question, "superlative", err), nil
		}
		var parsed superlativeParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "superlative", err), nil
		}

		// Larger topK than ordinal: the aggregation needs enough rows per group.
		tickets, err := store.Search(parsed.SearchQuery, 50, cleanFilter(parsed.Filter))
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildSuperlativeAnswer(question, parsed, tickets), nil
	}
	return model.ToolDef{FunctionDefinition: superlativeSearchDef, Handler: handler}
}

func NewSuperlativeAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := superlativeSearchTool(base, chatModel, store)
	return newSpecialist(base, "superlative_agent", chatModel, superlativeInstructions, &tool)
}
