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

var differenceInstructions = `
You are a specialist in answering exclusion questions about IT support tickets:
items matching one criterion but NOT another.

` + ticketSchema + `
When you receive a question with a negation ("not", "without", "excluding", "does not mention"):
1. Use the difference_search function to retrieve the matching tickets with the exclusion applied
2. Present the tickets that match the topic but do not mention the excluded term
3. Cite the tickets by their IDs

Be precise and base your answer strictly on the search results.
`

var differenceSearchDef = openai.FunctionDefinition{
	Name:   "difference_search",
	Strict: true,
	Description: `
Answers exclusion questions by searching a topic and dropping tickets that
mention the excluded term (does not mention, without, excluding).
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question asking for items matching one criterion but excluding another",
			},
		},
		Required: []string{"user_question"},
	},
}

var differenceParsePrompt = `
Analyze this exclusion question and extract the topic and the excluded term:

Question: %s

Extract:
1. SEARCH_QUERY: The topic to search for
2. EXCLUDE_TERM: The term that matching tickets must NOT mention
3. FILTER: filter expression for any field constraints (optional)

` + filterSchema + `
Format your response as JSON:
{
    "search_query": "the search topic",
    "exclude_term": "the term to exclude",
    "filter": "filter expression or null if none needed",
    "explanation": "brief explanation of the logic"
}

Example:
- "Which Dell XPS issue does not mention Windows?"
  -> {"search_query": "Dell XPS issues", "exclude_term": "Windows", "filter": null, "explanation": "Search Dell XPS issues, drop tickets mentioning Windows"}

Respond ONLY with the JSON object.
`

type differenceParams struct {
	SearchQuery string `json:"search_query"`
	ExcludeTerm string `json:"exclude_term"`
	Filter      string `json:"filter"`
	Explanation string `json:"explanation"`
}

func mentionsTerm(t *utils.Ticket, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, text := range []string{t.Subject, t.Body, t.Answer} {
		if strings.Contains(strings.ToLower(text), term) {
			return true
		}
	}
	return false
}

func buildDifferenceAnswer(question string, p differenceParams, tickets []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(tickets) == 0 {
		return noResults(question, p.SearchQuery, filter)
	}

	var kept []utils.Ticket
	for i := range tickets {
		if !mentionsTerm(&tickets[i], p.ExcludeTerm) {
			kept = append(kept, tickets[i])
		}
	}
	if len(kept) == 0 {
		return fmt.Sprintf(
			"Question: %s\n\nAll %d tickets matching '%s' mention '%s' - nothing is left after the exclusion.",
			question, len(tickets), p.SearchQuery, p.ExcludeTerm)
	}
	keptJSON, _ := json.MarshalIndent(kept, "", "  ")

	return fmt.Sprintf(`
Based on the following IT support tickets, answer the exclusion question.

Question: %s

Search Logic: %s
- Topic searched: %s
- Excluded term: %s
- Matches before exclusion: %d, after exclusion: %d%s

Tickets matching the topic but not mentioning the excluded term:
%s

Present these tickets as the answer, citing them by ID, and explain that
tickets mentioning '%s' were excluded.
Base your answer strictly on the search results provided.
`, question, p.Explanation, p.SearchQuery, p.ExcludeTerm, len(tickets), len(kept), filterInfo(filter),
		keptJSON, p.ExcludeTerm)
}

func differenceSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(differenceParsePrompt, question))
		if err != nil {
			return parseFailure(question, "exclusion", err), nil
		}
		var parsed differenceParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "exclusion", err), nil
		}

		tickets, err := store.Search(parsed.SearchQuery, 20, cleanFilter(parsed.Filter))
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildDifferenceAnswer(question, parsed, tickets), nil
	}
	return model.ToolDef{FunctionDefinition: differenceSearchDef, Handler: handler}
}

func NewDifferenceAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := differenceSearchTool(base, chatModel, store)
	return newSpecialist(base, "difference_agent", chatModel, differenceInstructions, &tool)
}
