package utils

import (
	"os"
	"testing"
	"ticket_rag/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Live round-trip against a running Milvus and an OpenAI-compatible endpoint.
// Set TICKET_RAG_LIVE_TEST=1 (plus TICKET_RAG_API_KEY) to run it.
func TestTicketStoreLive(t *testing.T) {
	if os.Getenv("TICKET_RAG_LIVE_TEST") == "" {
		t.Skip("live backend test, set TICKET_RAG_LIVE_TEST=1 to run")
	}
	apikey := os.Getenv("TICKET_RAG_API_KEY")
	if apikey == "" {
		apikey = os.Getenv("OPENAI_API_KEY")
	}
	require.NotEmpty(t, apikey)

	m := model.NewModel("https://openrouter.ai/api/v1", apikey)
	embedder := NewEmbedder(m, "openai/text-embedding-3-small")
	store, err := NewTicketStore("172.17.0.1:19530", "support_tickets_test", embedder)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.InitCollection())
	require.NoError(t, store.InsertTickets([]Ticket{
		{
			ID:         "INC900",
			CreateDate: "2024-05-01 10:00:00",
			Subject:    "VPN connection drops",
			Body:       "The VPN disconnects every few minutes on the office wifi.",
			Type:       "Incident",
			Queue:      "IT",
			Priority:   "high",
		},
	}))

	t.Run("vector search", func(t *testing.T) {
		tickets, err := store.Search("VPN problems", 5, "")
		require.NoError(t, err)
		assert.NotEmpty(t, tickets)
		t.Log(tickets)
	})

	t.Run("filter query", func(t *testing.T) {
		tickets, err := store.Query(`queue == "IT" and priority == "high"`, 10)
		require.NoError(t, err)
		assert.NotEmpty(t, tickets)
		t.Log(tickets)
	})
}
