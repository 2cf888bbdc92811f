package agent

import (
	"encoding/json"
	"fmt"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var comparativeInstructions = `
You are a specialist in answering comparative questions about IT support tickets
(more/less, versus, which of two).

` + ticketSchema + `
When you receive a question comparing two items:
1. Use the comparative_search function to count the tickets matching each item
2. State which item has more (or fewer) with both counts
3. Cite a few example tickets from each side by their IDs

Be precise and base your answer strictly on the search results.
`

var comparativeSearchDef = openai.FunctionDefinition{
	Name:   "comparative_search",
	Strict: true,
	Description: `
Answers comparative questions by running one search per compared item and
comparing the match counts (more, less, vs, versus).
`,
	Parameters: jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Properties: map[string]jsonschema.Definition{
			"user_question": {
				Type:        jsonschema.String,
				Description: "User question comparing two items",
			},
		},
		Required: []string{"user_question"},
	},
}

var comparativeParsePrompt = `
Analyze this comparative question and extract the two compared items:

Question: %s

Extract:
1. TOPIC_A: The first compared search topic
2. TOPIC_B: The second compared search topic
3. FILTER: filter expression applying to BOTH sides (optional)

` + filterSchema + `
Format your response as JSON:
{
    "topic_a": "the first search topic",
    "topic_b": "the second search topic",
    "filter": "filter expression or null if none needed",
    "explanation": "brief explanation of the logic"
}

Example:
- "Do we have more issues with MacBook Air computers or Dell XPS laptops?"
  -> {"topic_a": "MacBook Air issues", "topic_b": "Dell XPS laptop issues", "filter": null, "explanation": "Count matches for each topic and compare"}

Respond ONLY with the JSON object.
`

type comparativeParams struct {
	TopicA      string `json:"topic_a"`
	TopicB      string `json:"topic_b"`
	Filter      string `json:"filter"`
	Explanation string `json:"explanation"`
}

func buildComparativeAnswer(question string, p comparativeParams, ticketsA, ticketsB []utils.Ticket) string {
	filter := cleanFilter(p.Filter)
	if len(ticketsA) == 0 && len(ticketsB) == 0 {
		return noResults(question, fmt.Sprintf("%s / %s", p.TopicA, p.TopicB), filter)
	}

	winner := p.TopicA
	if len(ticketsB) > len(ticketsA) {
		winner = p.TopicB
	} else if len(ticketsB) == len(ticketsA) {
		winner = "neither - both match the same number of tickets"
	}

	exampleA := ticketsA
	if len(exampleA) > 3 {
		exampleA = exampleA[:3]
	}
	exampleB := ticketsB
	if len(exampleB) > 3 {
		exampleB = exampleB[:3]
	}
	jsonA, _ := json.MarshalIndent(exampleA, "", "  ")
	jsonB, _ := json.MarshalIndent(exampleB, "", "  ")

	return fmt.Sprintf(`
Based on the following IT support ticket analysis, answer the comparative question.

Question: %s

Search Logic: %s%s

**Result**:
- "%s": %d tickets
- "%s": %d tickets
- More matches: %s

Example tickets for "%s":
%s

Example tickets for "%s":
%s

Provide a clear answer stating which item has more tickets, give both counts,
and mention example tickets from each side by ID.
Base your answer strictly on the data provided.
`, question, p.Explanation, filterInfo(filter),
		p.TopicA, len(ticketsA), p.TopicB, len(ticketsB), winner,
		p.TopicA, jsonA, p.TopicB, jsonB)
}

func comparativeSearchTool(base BaseAgent, chatModel string, store TicketSearcher) model.ToolDef {
	handler := func(argsStr string) (string, error) {
		args := struct {
			UserQuestion string `json:"user_question"`
		}{}
		if err := json.Unmarshal([]byte(argsStr), &args); err != nil {
			return "", err
		}
		question := args.UserQuestion

		reply, err := base.complete(chatModel, fmt.Sprintf(comparativeParsePrompt, question))
		if err != nil {
			return parseFailure(question, "comparative", err), nil
		}
		var parsed comparativeParams
		if err := json.Unmarshal([]byte(extractJSON(reply)), &parsed); err != nil {
			return parseFailure(question, "comparative", err), nil
		}

		filter := cleanFilter(parsed.Filter)
		ticketsA, err := store.Search(parsed.TopicA, 50, filter)
		if err != nil {
			return searchFailure(question, err), nil
		}
		ticketsB, err := store.Search(parsed.TopicB, 50, filter)
		if err != nil {
			return searchFailure(question, err), nil
		}
		return buildComparativeAnswer(question, parsed, ticketsA, ticketsB), nil
	}
	return model.ToolDef{FunctionDefinition: comparativeSearchDef, Handler: handler}
}

func NewComparativeAgent(m *model.Model, chatModel string, store TicketSearcher) *Specialist {
	base := NewBaseAgent(m)
	tool := comparativeSearchTool(base, chatModel, store)
	return newSpecialist(base, "comparative_agent", chatModel, comparativeInstructions, &tool)
}
