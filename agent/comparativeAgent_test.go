package agent

import (
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
)

func TestBuildComparativeAnswer(t *testing.T) {
	p := comparativeParams{
		TopicA:      "MacBook Air issues",
		TopicB:      "Dell XPS issues",
		Explanation: "compare match counts",
	}
	macTickets := []utils.Ticket{
		{ID: "INC001", Subject: "MacBook Air will not charge"},
		{ID: "INC002", Subject: "MacBook Air kernel panic"},
	}
	dellTickets := []utils.Ticket{
		{ID: "INC003", Subject: "Dell XPS screen flicker"},
	}

	t.Run("side with more matches wins", func(t *testing.T) {
		answer := buildComparativeAnswer("More MacBook Air or Dell XPS issues?", p, macTickets, dellTickets)
		assert.Contains(t, answer, `"MacBook Air issues": 2 tickets`)
		assert.Contains(t, answer, `"Dell XPS issues": 1 tickets`)
		assert.Contains(t, answer, "More matches: MacBook Air issues")
	})

	t.Run("tie", func(t *testing.T) {
		answer := buildComparativeAnswer("q", p, macTickets[:1], dellTickets)
		assert.Contains(t, answer, "More matches: neither - both match the same number of tickets")
	})

	t.Run("one empty side still compares", func(t *testing.T) {
		answer := buildComparativeAnswer("q", p, nil, dellTickets)
		assert.Contains(t, answer, `"MacBook Air issues": 0 tickets`)
		assert.Contains(t, answer, "More matches: Dell XPS issues")
	})

	t.Run("both sides empty", func(t *testing.T) {
		answer := buildComparativeAnswer("q", p, nil, nil)
		assert.Contains(t, answer,
			"No tickets were found matching the search criteria: 'MacBook Air issues / Dell XPS issues'")
	})
}
