package agent

import (
	"encoding/json"
	"fmt"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var intersectionInstructions = `
You are a specialist in answering questions about IT support tickets matching
MULTIPLE search topics at once (AND logic over topics, not field filters).

` + ticketSchema + `
When you receive a question combining two search topics:
1. Use the intersection_search function to retrieve tickets matching both topics
2. Present the tickets that appear in both result sets
3. Cite the tickets by their IDs

Be precise and base your answer strictly on the search results.
`

var intersectionSearchDef = openai.FunctionDefinition{
	Name:   "intersection_search",
	Strict: true,
	Description: `
Answers multi-topic questions by running one search per topic and keeping the
tickets present in both result sets.
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question combining two search topics",
			},
		},
		Required: []string{"user_question"},
	},
}

var intersectionParsePrompt = `
Analyze this question and extract the two combined search topics:

Question: %s

Extract:
1. TOPIC_A: The first search topic
2. TOPIC_B: The second search topic
3. FILTER: filter expression for any field constraints (optional).
   Remember: field values (type, queue, priority) combined with "and" are filters, not topics.

` + filterSchema + `
Format your response as JSON:
{
    "topic_a": "the first search topic",
    "topic_b": "the second search topic",
    "filter": "filter expression or null if none needed",
    "explanation": "brief explanation of the logic"
}

Example:
- "What issues are for Dell XPS laptops and the user tried Win + Ctrl + Shift + B?"
  -> {"topic_a": "Dell XPS laptop issues", "topic_b": "Win + Ctrl + Shift + B", "filter": null, "explanation": "Two search topics, keep tickets matching both"}

Respond ONLY with the JSON object.
`

func intersectTickets(ticketsA, ticketsB []utils.Ticket) []utils.Ticket {
	inB := make(map[string]bool, len(ticketsB))
	for i := range ticketsB {
		inB[ticketsB[i].ID] = true
	}
	var both []utils.Ticket
	for i := range ticketsA {
		if inB[ticketsA[i].ID] {
			both = append(both, ticketsA[i])
		}
	}
	return both
}

func buildIntersectionAnswer(question string, p comparativeParams, ticketsA, ticketsB []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	both := intersectTickets(ticketsA, ticketsB)
	if len(both) == 0 {
		return fmt.Sprintf(
			"Question: %s\n\nNo tickets match both '%s' (%d matches) and '%s' (%d matches).",
			question, p.TopicA, len(ticketsA), p.TopicB, len(ticketsB))
	}
	bothJSON, _ := json.MarshalIndent(both, "", "  ")

	return fmt.Sprintf(`
Based on the following IT support tickets, answer the multi-topic question.

Question: %s

Search Logic: %s
- Topic A: %s (%d matches)
- Topic B: %s (%d matches)
- Tickets matching both: %d%s

Tickets matching both topics:
%s

Present these tickets as the answer, citing them by ID.
Base your answer strictly on the search results provided.
`, question, p.Explanation, p.TopicA, len(ticketsA), p.TopicB, len(ticketsB), len(both),
		filterInfo(filter), bothJSON)
}

func intersectionSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(intersectionParsePrompt, question))
		if err != nil {
			return parseFailure(question, "multi-topic", err), nil
		}
		var parsed comparativeParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "multi-topic", err), nil
		}

		filter := cleanFilter(parsed.Filter)
		ticketsA, err := store.Search(parsed.TopicA, 20, filter)
		if err != nil {
			return searchFailure(question, err), nil
		}
		ticketsB, err := store.Search(parsed.TopicB, 20, filter)
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildIntersectionAnswer(question, parsed, ticketsA, ticketsB), nil
	}
	return model.ToolDef{FunctionDefinition: intersectionSearchDef, Handler: handler}
}

func NewIntersectionAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := intersectionSearchTool(base, chatModel, store)
	return newSpecialist(base, "intersection_agent", chatModel, intersectionInstructions, &tool)
}
