package agent

import (
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
)

func TestMentionsTerm(t *testing.T) {
	ticket := utils.Ticket{
		Subject: "Dell XPS boot loop",
		Body:    "The laptop restarts after the Windows logo.",
		Answer:  "Reinstall the graphics driver.",
	}

	assert.True(t, mentionsTerm(&ticket, "windows"))
	assert.True(t, mentionsTerm(&ticket, " GRAPHICS "))
	assert.True(t, mentionsTerm(&ticket, "boot loop"))
	assert.False(t, mentionsTerm(&ticket, "macbook"))
	assert.False(t, mentionsTerm(&ticket, ""))
}

func TestBuildDifferenceAnswer(t *testing.T) {
	tickets := []utils.Ticket{
		{ID: "INC001", Subject: "Dell XPS screen flicker", Body: "Happens on Windows 11"},
		{ID: "INC002", Subject: "Dell XPS battery drain", Body: "Drains overnight"},
		{ID: "INC003", Subject: "Dell XPS fan noise", Answer: "Update the Windows power plan"},
	}
	p := differenceParams{
		SearchQuery: "Dell XPS issues",
		ExcludeTerm: "Windows",
		Explanation: "Dell XPS issues not mentioning Windows",
	}

	t.Run("excluded tickets are dropped", func(t *testing.T) {
		answer := buildDifferenceAnswer("Which Dell XPS issue does not mention Windows?", p, tickets)
		assert.Contains(t, answer, "Matches before exclusion: 3, after exclusion: 1")
		assert.Contains(t, answer, "INC002")
		assert.NotContains(t, answer, "INC001")
		assert.NotContains(t, answer, "INC003")
	})

	t.Run("everything excluded", func(t *testing.T) {
		all := []utils.Ticket{
			{ID: "INC001", Subject: "Windows update stuck"},
			{ID: "INC002", Body: "Windows activation failed"},
		}
		q := differenceParams{SearchQuery: "update issues", ExcludeTerm: "Windows"}
		answer := buildDifferenceAnswer("q", q, all)
		assert.Contains(t, answer,
			"All 2 tickets matching 'update issues' mention 'Windows' - nothing is left after the exclusion.")
	})

	t.Run("no results", func(t *testing.T) {
		answer := buildDifferenceAnswer("q", p, nil)
		assert.Contains(t, answer, "No tickets were found matching the search criteria: 'Dell XPS issues'")
	})
}
