package agent

import (
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
)

func TestBuildCountAnswer(t *testing.T) {
	tickets := []utils.Ticket{
		{ID: "INC001", Queue: "Human Resources"},
		{ID: "INC002", Queue: "Human Resources"},
		{ID: "INC003", Queue: "Human Resources"},
	}

	t.Run("count with filter", func(t *testing.T) {
		p := countParams{
			Filter:      `queue == "Human Resources"`,
			Explanation: "count HR tickets",
		}
		answer := buildCountAnswer("How many HR tickets?", p, tickets)
		assert.Contains(t, answer, "**Result**: 3 tickets match the criteria.")
		assert.Contains(t, answer, `Applied Filter: queue == "Human Resources"`)
		assert.Contains(t, answer, "INC001")
	})

	t.Run("examples are capped at five", func(t *testing.T) {
		many := make([]utils.Ticket, 8)
		for i := range many {
			many[i] = utils.Ticket{ID: string(rune('A' + i))}
		}
		answer := buildCountAnswer("q", countParams{SearchQuery: "issues"}, many)
		assert.Contains(t, answer, "**Result**: 8 tickets match the criteria.")
		assert.Contains(t, answer, `"Id": "E"`)
		assert.NotContains(t, answer, `"Id": "F"`)
	})

	t.Run("no results", func(t *testing.T) {
		p := countParams{SearchQuery: "mainframe", Filter: "null"}
		answer := buildCountAnswer("q", p, nil)
		assert.Contains(t, answer, "No tickets were found matching the search criteria: 'mainframe'")
		assert.NotContains(t, answer, "with filter")
	})
}
