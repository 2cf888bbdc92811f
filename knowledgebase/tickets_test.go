package knowledgebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "tickets.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadDataset(t *testing.T) {
	t.Run("records map to tickets", func(t *testing.T) {
		file := writeDataset(t, `[
  {
    "Id": "INC001",
    "Create_Date": "2024-01-15 09:30:00",
    "Subject": "VPN down",
    "Body": "Cannot connect since monday",
    "Answer": "Reset the VPN profile",
    "Type": "Incident",
    "Queue": "IT",
    "Priority": "high",
    "Language": "en",
    "Business_Type": "B2B",
    "Tags": ["vpn", "network"]
  },
  {
    "Id": "REQ002",
    "Subject": "New laptop",
    "Type": "Request",
    "Queue": "IT",
    "Priority": "low",
    "Tags": []
  }
]`)
		tickets, err := LoadDataset(file)
		require.NoError(t, err)
		require.Len(t, tickets, 2)

		assert.Equal(t, "INC001", tickets[0].ID)
		assert.Equal(t, "2024-01-15 09:30:00", tickets[0].CreateDate)
		assert.Equal(t, "Incident", tickets[0].Type)
		assert.Equal(t, "B2B", tickets[0].BusinessType)
		assert.Equal(t, "vpn,network", tickets[0].Tags)

		assert.Equal(t, "REQ002", tickets[1].ID)
		assert.Equal(t, "", tickets[1].Tags)
	})

	t.Run("empty dataset", func(t *testing.T) {
		tickets, err := LoadDataset(writeDataset(t, `[]`))
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadDataset(writeDataset(t, `{"not": "an array"`))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
