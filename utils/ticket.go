package utils

import (
	"sort"
	"strings"
	"time"
)

// Ticket is one IT support ticket as stored in the search backend.
// The JSON tags follow the dataset field names so that tickets embedded
// into analysis prompts read the same as the schema in the instructions.
type Ticket struct {
	ID           string `json:"Id"`
	CreateDate   string `json:"Create_Date"`
	Subject      string `json:"Subject"`
	Body         string `json:"Body"`
	Answer       string `json:"Answer"`
	Type         string `json:"Type"`
	Queue        string `json:"Queue"`
	Priority     string `json:"Priority"`
	Language     string `json:"Language"`
	BusinessType string `json:"Business_Type"`
	Tags         string `json:"Tags"`
}

// SearchText is the text that gets embedded and BM25-indexed.
func (t *Ticket) SearchText() string {
	return t.Subject + "\n" + t.Body
}

// FieldValue returns the value of a ticket field by its schema name.
// Field names are matched ignoring case and underscores, so "Create_Date",
// "create_date" and "CreateDate" all resolve.
func (t *Ticket) FieldValue(field string) (string, bool) {
	key := strings.ToLower(strings.ReplaceAll(field, "_", ""))
	switch key {
	case "id":
		return t.ID, true
	case "createdate":
		return t.CreateDate, true
	case "subject":
		return t.Subject, true
	case "body":
		return t.Body, true
	case "answer":
		return t.Answer, true
	case "type":
		return t.Type, true
	case "queue":
		return t.Queue, true
	case "priority":
		return t.Priority, true
	case "language":
		return t.Language, true
	case "businesstype":
		return t.BusinessType, true
	case "tags":
		return t.Tags, true
	}
	return "", false
}

var createDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseCreateDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range createDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// SortByCreateDate orders tickets by Create_Date. Tickets whose date can not
// be parsed always sort after the parsable ones, regardless of direction.
func SortByCreateDate(tickets []Ticket, desc bool) {
	sort.SliceStable(tickets, func(i, j int) bool {
		ti, oki := parseCreateDate(tickets[i].CreateDate)
		tj, okj := parseCreateDate(tickets[j].CreateDate)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

// GroupByField buckets tickets by the value of the given schema field.
// Tickets with an empty or unknown field value land in "Unknown".
func GroupByField(tickets []Ticket, field string) map[string][]Ticket {
	groups := make(map[string][]Ticket)
	for _, t := range tickets {
		value, ok := t.FieldValue(field)
		if !ok || strings.TrimSpace(value) == "" {
			value = "Unknown"
		}
		groups[value] = append(groups[value], t)
	}
	return groups
}
