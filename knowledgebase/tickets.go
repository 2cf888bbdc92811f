// Package knowledgebase loads the ticket dataset and feeds it into the
// search backend.
package knowledgebase

import (
	"encoding/json"
	"os"
	"strings"
	"ticket_rag/utils"

	"github.com/rs/zerolog/log"
)

type ticketRecord struct {
	ID           string   `json:"Id"`
	CreateDate   string   `json:"Create_Date"`
	Subject      string   `json:"Subject"`
	Body         string   `json:"Body"`
	Answer       string   `json:"Answer"`
	Type         string   `json:"Type"`
	Queue        string   `json:"Queue"`
	Priority     string   `json:"Priority"`
	Language     string   `json:"Language"`
	BusinessType string   `json:"Business_Type"`
	Tags         []string `json:"Tags"`
}

// LoadDataset reads a JSON array of ticket records. Tags are joined to a
// single comma-separated value, matching the collection schema.
func LoadDataset(file string) ([]utils.Ticket, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var records []ticketRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	tickets := make([]utils.Ticket, 0, len(records))
	for _, r := range records {
		tickets = append(tickets, utils.Ticket{
			ID:           r.ID,
			CreateDate:   r.CreateDate,
			Subject:      r.Subject,
			Body:         r.Body,
			Answer:       r.Answer,
			Type:         r.Type,
			Queue:        r.Queue,
			Priority:     r.Priority,
			Language:     r.Language,
			BusinessType: r.BusinessType,
			Tags:         strings.Join(r.Tags, ","),
		})
	}
	return tickets, nil
}

// Ingest creates the collection if needed and inserts the dataset.
func Ingest(store *utils.TicketStore, file string) error {
	if err := store.InitCollection(); err != nil {
		return err
	}
	tickets, err := LoadDataset(file)
	if err != nil {
		return err
	}
	if err := store.InsertTickets(tickets); err != nil {
		return err
	}
	log.Info().Int("tickets", len(tickets)).Str("file", file).Msg("ingest dataset success")
	return nil
}
