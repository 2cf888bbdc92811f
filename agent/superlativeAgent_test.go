package agent

import (
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func superlativeFixture() []utils.Ticket {
	return []utils.Ticket{
		{ID: "INC001", Queue: "IT", Priority: "high"},
		{ID: "INC002", Queue: "IT", Priority: "high"},
		{ID: "INC003", Queue: "IT", Priority: "low"},
		{ID: "INC004", Queue: "Human Resources", Priority: "high"},
		{ID: "INC005", Queue: "Finance", Priority: "medium"},
	}
}

func TestRankGroups(t *testing.T) {
	groups := utils.GroupByField(superlativeFixture(), "Queue")

	t.Run("max puts the biggest group first", func(t *testing.T) {
		ranked := rankGroups(groups, "most")
		require.Len(t, ranked, 3)
		assert.Equal(t, groupCount{Value: "IT", Count: 3}, ranked[0])
	})

	t.Run("min puts the smallest group first", func(t *testing.T) {
		ranked := rankGroups(groups, "fewest")
		// Finance and HR both count 1, value order breaks the tie.
		assert.Equal(t, "Finance", ranked[0].Value)
		assert.Equal(t, "Human Resources", ranked[1].Value)
		assert.Equal(t, "IT", ranked[2].Value)
	})

	t.Run("superlative keywords", func(t *testing.T) {
		for _, s := range []string{"most", "Highest", " MAXIMUM ", "greatest", "largest"} {
			assert.True(t, isMaxSuperlative(s), s)
		}
		for _, s := range []string{"least", "fewest", "lowest", "minimum", ""} {
			assert.False(t, isMaxSuperlative(s), s)
		}
	})
}

func TestBuildSuperlativeAnswer(t *testing.T) {
	t.Run("most by queue", func(t *testing.T) {
		p := superlativeParams{
			SuperlativeType: "most",
			SearchQuery:     "incidents",
			GroupByField:    "Queue",
			Aggregation:     "count",
			Explanation:     "count incidents per queue",
		}
		answer := buildSuperlativeAnswer("Which queue has the most incidents?", p, superlativeFixture())
		assert.Contains(t, answer, "**IT** with 3 tickets")
		assert.Contains(t, answer, "1. IT: 3 tickets")
		assert.Contains(t, answer, "Total tickets analyzed: 5")
		assert.Contains(t, answer, "No filter applied (semantic search only)")
	})

	t.Run("least by priority with filter", func(t *testing.T) {
		p := superlativeParams{
			SuperlativeType: "least",
			SearchQuery:     "tickets",
			GroupByField:    "Priority",
			Filter:          `type == "Incident"`,
		}
		answer := buildSuperlativeAnswer("q", p, superlativeFixture())
		assert.Contains(t, answer, "**low** with 1 tickets")
		assert.Contains(t, answer, `Applied Filter: type == "Incident"`)
	})

	t.Run("no results", func(t *testing.T) {
		p := superlativeParams{SuperlativeType: "most", SearchQuery: "mainframe", GroupByField: "Queue"}
		answer := buildSuperlativeAnswer("q", p, nil)
		assert.Contains(t, answer, "No tickets were found matching the search criteria: 'mainframe'")
	})
}
