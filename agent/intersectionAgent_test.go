package agent

import (
	"testing"
	"ticket_rag/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectTickets(t *testing.T) {
	a := []utils.Ticket{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	b := []utils.Ticket{{ID: "3"}, {ID: "4"}, {ID: "1"}}

	both := intersectTickets(a, b)
	require.Len(t, both, 2)
	assert.Equal(t, "1", both[0].ID)
	assert.Equal(t, "3", both[1].ID)

	assert.Empty(t, intersectTickets(a, nil))
	assert.Empty(t, intersectTickets(nil, b))
}

func TestBuildIntersectionAnswer(t *testing.T) {
	p := comparativeParams{
		TopicA:      "Dell XPS laptop issues",
		TopicB:      "Win + Ctrl + Shift + B",
		Explanation: "tickets matching both topics",
	}
	a := []utils.Ticket{
		{ID: "INC001", Subject: "Dell XPS black screen"},
		{ID: "INC002", Subject: "Dell XPS slow boot"},
	}
	b := []utils.Ticket{
		{ID: "INC001", Subject: "Dell XPS black screen"},
		{ID: "INC007", Subject: "Graphics driver reset"},
	}

	t.Run("overlap is reported", func(t *testing.T) {
		answer := buildIntersectionAnswer("q", p, a, b)
		assert.Contains(t, answer, "Topic A: Dell XPS laptop issues (2 matches)")
		assert.Contains(t, answer, "Topic B: Win + Ctrl + Shift + B (2 matches)")
		assert.Contains(t, answer, "Tickets matching both: 1")
		assert.Contains(t, answer, "INC001")
		assert.NotContains(t, answer, "INC007")
	})

	t.Run("empty overlap", func(t *testing.T) {
		answer := buildIntersectionAnswer("q", p, a, b[1:])
		assert.Contains(t, answer,
			"No tickets match both 'Dell XPS laptop issues' (2 matches) and 'Win + Ctrl + Shift + B' (1 matches).")
	})
}
