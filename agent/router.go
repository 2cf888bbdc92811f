package agent

import (
	"context"
	"strings"
	"ticket_rag/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// specialistLabels in classification priority order: when a decorated
// classifier reply names several labels, the earlier one wins.
var specialistLabels = []string{
	"COUNT_AGENT",
	"DIFFERENCE_AGENT",
	"COMPARATIVE_AGENT",
	"SUPERLATIVE_AGENT",
	"ORDINAL_AGENT",
	"INTERSECTION_AGENT",
	"MULTI_HOP_AGENT",
	"YES_NO_AGENT",
	"SEMANTIC_SEARCH_AGENT",
}

// matchLabel normalizes a classifier reply to a known specialist label.
// Returns "" when no label is found.
func matchLabel(reply string) string {
	upper := strings.ToUpper(strings.TrimSpace(reply))
	for _, label := range specialistLabels {
		if strings.Contains(upper, label) {
			return label
		}
	}
	return ""
}

// Router runs the classifier over an incoming question and dispatches it to
// the matching specialist, falling back to semantic search when the
// classification is ambiguous.
type Router struct {
	classifier  *Specialist
	specialists map[string]*Specialist
	fallback    *Specialist
}

func NewRouter(m *model.Model, chatModel string, store TicketSearcher) *Router {
	semantic := NewSemanticSearchAgent(m, chatModel, store)
	return &Router{
		classifier: NewClassifierAgent(m, chatModel),
		specialists: map[string]*Specialist{
			"COUNT_AGENT":           NewCountAgent(m, chatModel, store),
			"DIFFERENCE_AGENT":      NewDifferenceAgent(m, chatModel, store),
			"COMPARATIVE_AGENT":     NewComparativeAgent(m, chatModel, store),
			"SUPERLATIVE_AGENT":     NewSuperlativeAgent(m, chatModel, store),
			"ORDINAL_AGENT":         NewOrdinalAgent(m, chatModel, store),
			"INTERSECTION_AGENT":    NewIntersectionAgent(m, chatModel, store),
			"MULTI_HOP_AGENT":       NewMultiHopAgent(m, chatModel, store),
			"YES_NO_AGENT":          NewYesNoAgent(m, chatModel, store),
			"SEMANTIC_SEARCH_AGENT": semantic,
		},
		fallback: semantic,
	}
}

// Route classifies the question and picks the specialist for it.
func (r *Router) Route(ctx context.Context, question string) (string, *Specialist) {
	reply := r.classifier.Answer(ctx, question)
	label := matchLabel(reply)
	spec, ok := r.specialists[label]
	if !ok {
		ctxLogger(ctx).Warn().Str("reply", reply).Msg("ambiguous classification, falling back to semantic search")
		return r.fallback.Name, r.fallback
	}
	return label, spec
}

// Answer routes the question and runs the chosen specialist. The per-question
// query_id logger travels in the context so classification and answering log
// under the same id.
func (r *Router) Answer(question string) string {
	logger := log.With().Str("query_id", uuid.NewString()).Logger()
	ctx := logger.WithContext(context.Background())
	label, spec := r.Route(ctx, question)
	logger.Info().Str("label", label).Str("agent", spec.Name).Msg("route question")
	answer := spec.Answer(ctx, question)
	logger.Info().Str("agent", spec.Name).Int("answer_len", len(answer)).Msg("question answered")
	return answer
}
