package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elevate-digital/bizdesk/internal/core/ports"
)

const (
	collectionCounters = "counters"
	counterQuoteNumber = "quoteNumber"

	// quoteNumberSeed is the value the counter starts from when the document
	// is absent; the first issued number is quoteNumberSeed+1.
	quoteNumberSeed = 10000
)

// QuoteCounter issues sequential quote numbers from a singleton counter
// document. The read-increment-write runs as a single atomic FindOneAndUpdate
// on that document, so two concurrent callers can never observe the same
// lastQuoteNumber and both commit; the store serialises the increments.
// Nothing is consumed when the call fails.
type QuoteCounter struct {
	col   *mongo.Collection
	owner string
}

func NewQuoteCounter(db *mongo.Database, owner string) *QuoteCounter {
	return &QuoteCounter{col: db.Collection(collectionCounters), owner: owner}
}

// Next returns the next quote number, strictly greater than every previously
// issued value.
func (c *QuoteCounter) Next(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Pipeline update so the absent-document default and the increment are
	// one atomic step: last = ifNull(last, seed) + 1.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"lastQuoteNumber": bson.M{
				"$add": bson.A{
					bson.M{"$ifNull": bson.A{"$lastQuoteNumber", quoteNumberSeed}},
					1,
				},
			},
		}}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		LastQuoteNumber int64 `bson:"lastQuoteNumber"`
	}
	err := c.col.FindOneAndUpdate(ctx,
		bson.M{"_id": counterQuoteNumber, "owner": c.owner},
		update, opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next quote number: %w", err)
	}
	return doc.LastQuoteNumber, nil
}

var _ ports.QuoteSequence = (*QuoteCounter)(nil)
