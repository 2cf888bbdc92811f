package agent

import (
	"strings"
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// targetBlock slices the analysis prompt down to the ticket at the requested
// position, without the full-context dump that follows it.
func targetBlock(t *testing.T, answer string) string {
	t.Helper()
	start := strings.Index(answer, "The ticket at the requested position:")
	end := strings.Index(answer, "All retrieved tickets for context:")
	require.True(t, start >= 0 && end > start, "analysis prompt layout changed")
	return answer[start:end]
}

func ordinalFixture() []utils.Ticket {
	return []utils.Ticket{
		{ID: "INC001", CreateDate: "2024-01-10", Queue: "Human Resources", Subject: "onboarding portal"},
		{ID: "INC002", CreateDate: "2024-02-20", Queue: "Human Resources", Subject: "payroll access"},
		{ID: "INC003", CreateDate: "2024-03-05", Queue: "Human Resources", Subject: "badge reader"},
	}
}

func TestBuildOrdinalAnswer(t *testing.T) {
	t.Run("last under desc sort is the newest ticket", func(t *testing.T) {
		p := ordinalParams{
			OrdinalType:   "last",
			SearchQuery:   "issues",
			Filter:        `queue == "Human Resources"`,
			SortOrder:     "desc",
			PositionIndex: float64(0),
			Explanation:   "most recent HR issue",
		}
		answer := buildOrdinalAnswer("What is the last issue for HR?", p, ordinalFixture())
		assert.Contains(t, answer, "Position index: 0 (0-based)")
		assert.Contains(t, answer, "Total results found: 3")
		assert.Contains(t, answer, `Applied Filter: queue == "Human Resources"`)
		assert.Contains(t, targetBlock(t, answer), "INC003")
	})

	t.Run("first under asc sort is the oldest ticket", func(t *testing.T) {
		p := ordinalParams{OrdinalType: "first", SearchQuery: "issues", SortOrder: "asc", PositionIndex: float64(0)}
		answer := buildOrdinalAnswer("What was the first issue?", p, ordinalFixture())
		assert.Contains(t, targetBlock(t, answer), "INC001")
		assert.Contains(t, answer, "No filter applied (semantic search only)")
	})

	t.Run("position index -1 means last", func(t *testing.T) {
		p := ordinalParams{OrdinalType: "3rd", SearchQuery: "issues", SortOrder: "asc", PositionIndex: float64(-1)}
		answer := buildOrdinalAnswer("q", p, ordinalFixture())
		assert.Contains(t, targetBlock(t, answer), "INC003")
	})

	t.Run("position past the result set", func(t *testing.T) {
		p := ordinalParams{OrdinalType: "5th", SearchQuery: "issues", SortOrder: "desc", PositionIndex: float64(4)}
		answer := buildOrdinalAnswer("Show me the 5th issue", p, ordinalFixture())
		assert.Contains(t, answer, "Only 3 tickets were found, but position 5 was requested.")
		assert.Contains(t, answer, "Available positions: 1 to 3")
	})

	t.Run("no results", func(t *testing.T) {
		p := ordinalParams{OrdinalType: "last", SearchQuery: "mainframe issues", Filter: `queue == "IT"`}
		answer := buildOrdinalAnswer("q", p, nil)
		assert.Contains(t, answer, "No tickets were found matching the search criteria: 'mainframe issues'")
		assert.Contains(t, answer, `with filter: queue == "IT"`)
	})

	t.Run("null filter is treated as absent", func(t *testing.T) {
		p := ordinalParams{OrdinalType: "last", SearchQuery: "issues", Filter: "null", SortOrder: "desc"}
		answer := buildOrdinalAnswer("q", p, ordinalFixture())
		assert.Contains(t, answer, "No filter applied (semantic search only)")
	})

	t.Run("quoted position index is tolerated", func(t *testing.T) {
		p := ordinalParams{OrdinalType: "2nd", SearchQuery: "issues", SortOrder: "asc", PositionIndex: "1"}
		answer := buildOrdinalAnswer("q", p, ordinalFixture())
		assert.Contains(t, targetBlock(t, answer), "INC002")
	})
}
