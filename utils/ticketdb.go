package utils

import (
	"context"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/rs/zerolog/log"
)

const embeddingDim = 1536

// ticketFields are the scalar output fields decoded back into Ticket.
var ticketFields = []string{
	"ticket_id", "create_date", "subject", "body", "answer",
	"type", "queue", "priority", "language", "business_type", "tags",
}

// TicketStore wraps the milvus client for the support ticket collection.
type TicketStore struct {
	client     *milvusclient.Client
	collection string
	embedder   *Embedder
}

func NewTicketStore(addr string, collection string, embedder *Embedder) (*TicketStore, error) {
	client, err := milvusclient.New(context.TODO(), &milvusclient.ClientConfig{
		Address: addr,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("address", addr).Str("collection", collection).Msg("create milvus client success")
	return &TicketStore{client: client, collection: collection, embedder: embedder}, nil
}

func (db *TicketStore) Close() {
	if db.client != nil {
		db.client.Close(context.TODO())
		log.Info().Msg("close milvus client success")
	}
}

// InitCollection creates the ticket collection if it does not exist:
// a dense vector over subject+body, a BM25 sparse vector generated from the
// same text, and the scalar ticket fields for filter expressions.
func (db *TicketStore) InitCollection() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exist, err := db.client.HasCollection(ctx, milvusclient.NewDescribeCollectionOption(db.collection))
	if err != nil {
		return err
	}
	if exist {
		return nil
	}

	function := entity.NewFunction().
		WithName("search_text_bm25_emb").
		WithInputFields("search_text").
		WithOutputFields("text_sparse").
		WithType(entity.FunctionTypeBM25)

	schema := entity.NewSchema()
	schema.WithField(entity.NewField().
		WithName("id").
		WithDataType(entity.FieldTypeInt64).
		WithIsPrimaryKey(true).
		WithIsAutoID(true),
	).WithField(entity.NewField().
		WithName("search_text").
		WithDataType(entity.FieldTypeVarChar).
		WithEnableAnalyzer(true).
		WithMaxLength(8192),
	).WithField(entity.NewField().
		WithName("text_dense").
		WithDataType(entity.FieldTypeFloatVector).
		WithDim(embeddingDim),
	).WithField(entity.NewField().
		WithName("text_sparse").
		WithDataType(entity.FieldTypeSparseVector),
	).WithField(entity.NewField().
		WithName("ticket_id").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(64),
	).WithField(entity.NewField().
		WithName("create_date").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(64),
	).WithField(entity.NewField().
		WithName("subject").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(1024),
	).WithField(entity.NewField().
		WithName("body").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(8192),
	).WithField(entity.NewField().
		WithName("answer").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(8192),
	).WithField(entity.NewField().
		WithName("type").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(64),
	).WithField(entity.NewField().
		WithName("queue").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(128),
	).WithField(entity.NewField().
		WithName("priority").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(32),
	).WithField(entity.NewField().
		WithName("language").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(32),
	).WithField(entity.NewField().
		WithName("business_type").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(128),
	).WithField(entity.NewField().
		WithName("tags").
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(1024),
	).WithFunction(function)

	indexOption1 := milvusclient.NewCreateIndexOption(db.collection, "text_dense",
		index.NewAutoIndex(index.MetricType(entity.IP)))
	indexOption2 := milvusclient.NewCreateIndexOption(db.collection, "text_sparse",
		index.NewSparseInvertedIndex(entity.BM25, 0.2))

	return db.client.CreateCollection(ctx,
		milvusclient.NewCreateCollectionOption(db.collection, schema).
			WithIndexOptions(indexOption1, indexOption2))
}

// InsertTickets embeds the tickets and writes them column-wise.
func (db *TicketStore) InsertTickets(tickets []Ticket) error {
	const batchSize = 64
	for start := 0; start < len(tickets); start += batchSize {
		end := min(start+batchSize, len(tickets))
		batch := tickets[start:end]

		searchText := make([]string, 0, len(batch))
		for i := range batch {
			searchText = append(searchText, batch[i].SearchText())
		}
		embedding, err := db.embedder.EmbedText(searchText)
		if err != nil {
			return err
		}

		cols := []column.Column{
			column.NewColumnVarChar("search_text", searchText),
			column.NewColumnFloatVector("text_dense", embeddingDim, embedding),
			column.NewColumnVarChar("ticket_id", fieldColumn(batch, "Id")),
			column.NewColumnVarChar("create_date", fieldColumn(batch, "Create_Date")),
			column.NewColumnVarChar("subject", fieldColumn(batch, "Subject")),
			column.NewColumnVarChar("body", fieldColumn(batch, "Body")),
			column.NewColumnVarChar("answer", fieldColumn(batch, "Answer")),
			column.NewColumnVarChar("type", fieldColumn(batch, "Type")),
			column.NewColumnVarChar("queue", fieldColumn(batch, "Queue")),
			column.NewColumnVarChar("priority", fieldColumn(batch, "Priority")),
			column.NewColumnVarChar("language", fieldColumn(batch, "Language")),
			column.NewColumnVarChar("business_type", fieldColumn(batch, "Business_Type")),
			column.NewColumnVarChar("tags", fieldColumn(batch, "Tags")),
		}
		_, err = db.client.Insert(context.TODO(),
			milvusclient.NewColumnBasedInsertOption(db.collection).WithColumns(cols...))
		if err != nil {
			return err
		}
		log.Info().Int("count", len(batch)).Msg("insert ticket batch success")
	}
	return nil
}

func fieldColumn(tickets []Ticket, field string) []string {
	data := make([]string, 0, len(tickets))
	for i := range tickets {
		value, _ := tickets[i].FieldValue(field)
		data = append(data, value)
	}
	return data
}

// Query runs a scalar filter over the collection, no vector search involved.
func (db *TicketStore) Query(filter string, limit int) ([]Ticket, error) {
	resultSet, err := db.client.Query(context.TODO(), milvusclient.NewQueryOption(db.collection).
		WithFilter(filter).
		WithOutputFields(ticketFields...).
		WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return ticketsFromResultSet(&resultSet), nil
}

// Search embeds the query text and runs a dense vector search, passing any
// filter expression through to the backend unchanged.
func (db *TicketStore) Search(text string, topK int, filter string) ([]Ticket, error) {
	embedding, err := db.embedder.EmbedText([]string{text})
	if err != nil {
		return nil, err
	}

	opt := milvusclient.NewSearchOption(
		db.collection,
		topK,
		[]entity.Vector{entity.FloatVector(embedding[0])},
	).WithOutputFields(ticketFields...).
		WithANNSField("text_dense")
	if filter != "" {
		opt = opt.WithFilter(filter)
	}

	resultSets, err := db.client.Search(context.TODO(), opt)
	if err != nil {
		return nil, err
	}
	if len(resultSets) != 1 {
		return nil, nil
	}
	return ticketsFromResultSet(&resultSets[0]), nil
}

func varcharData(result *milvusclient.ResultSet, name string) []string {
	col, ok := result.GetColumn(name).(*column.ColumnVarChar)
	if !ok {
		return nil
	}
	return col.Data()
}

func ticketsFromResultSet(result *milvusclient.ResultSet) []Ticket {
	ids := varcharData(result, "ticket_id")
	tickets := make([]Ticket, len(ids))
	for i := range tickets {
		tickets[i].ID = ids[i]
	}
	assign := func(name string, set func(t *Ticket, v string)) {
		data := varcharData(result, name)
		for i := range data {
			if i < len(tickets) {
				set(&tickets[i], data[i])
			}
		}
	}
	assign("create_date", func(t *Ticket, v string) { t.CreateDate = v })
	assign("subject", func(t *Ticket, v string) { t.Subject = v })
	assign("body", func(t *Ticket, v string) { t.Body = v })
	assign("answer", func(t *Ticket, v string) { t.Answer = v })
	assign("type", func(t *Ticket, v string) { t.Type = v })
	assign("queue", func(t *Ticket, v string) { t.Queue = v })
	assign("priority", func(t *Ticket, v string) { t.Priority = v })
	assign("language", func(t *Ticket, v string) { t.Language = v })
	assign("business_type", func(t *Ticket, v string) { t.BusinessType = v })
	assign("tags", func(t *Ticket, v string) { t.Tags = v })
	return tickets
}
