package agent

import (
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
)

func TestBuildMultiHopAnswer(t *testing.T) {
	tickets := []utils.Ticket{
		{ID: "INC001", Queue: "IT", Subject: "consultant login issue"},
		{ID: "INC002", Queue: "IT", Subject: "consultant cannot log in"},
		{ID: "INC003", Queue: "Human Resources", Subject: "login problem for contractor"},
	}
	p := multiHopParams{
		SearchQuery:  "consultant login issues",
		ExtractField: "Queue",
		Explanation:  "extract the queue of the matching tickets",
	}

	t.Run("dominant field value is named", func(t *testing.T) {
		answer := buildMultiHopAnswer("What department had consultants with login issues?", p, tickets)
		assert.Contains(t, answer, "Field extracted: Queue")
		assert.Contains(t, answer, "Total matches: 3")
		assert.Contains(t, answer, "1. IT: 2 tickets")
		assert.Contains(t, answer, "2. Human Resources: 1 tickets")
		assert.Contains(t, answer, "the dominant value is IT")
	})

	t.Run("no results", func(t *testing.T) {
		answer := buildMultiHopAnswer("q", p, nil)
		assert.Contains(t, answer, "No tickets were found matching the search criteria: 'consultant login issues'")
	})
}
