package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessages(t *testing.T) {
	t.Run("parse failure embeds the error", func(t *testing.T) {
		msg := parseFailure("How many tickets?", "counting", errors.New("unexpected end of JSON input"))
		assert.Contains(t, msg, "Question: How many tickets?")
		assert.Contains(t, msg, "Unable to parse the counting question. Please rephrase your question.")
		assert.Contains(t, msg, "Details: unexpected end of JSON input")
	})

	t.Run("search failure embeds the error", func(t *testing.T) {
		msg := searchFailure("q", errors.New("connection refused"))
		assert.Contains(t, msg, "the ticket search failed")
		assert.Contains(t, msg, "Details: connection refused")
	})
}

func TestFilterInfo(t *testing.T) {
	assert.Equal(t, "\nNo filter applied (semantic search only)", filterInfo(""))
	assert.Equal(t, "\nApplied Filter: queue == \"IT\"", filterInfo(`queue == "IT"`))
}

func TestNoResults(t *testing.T) {
	t.Run("without filter", func(t *testing.T) {
		msg := noResults("q", "printer problems", "")
		assert.Contains(t, msg, "No tickets were found matching the search criteria: 'printer problems'")
		assert.NotContains(t, msg, "with filter")
	})

	t.Run("with filter", func(t *testing.T) {
		msg := noResults("q", "printer problems", `priority == "high"`)
		assert.Contains(t, msg, `'printer problems' with filter: priority == "high"`)
	})
}
