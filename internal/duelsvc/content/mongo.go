package content

import (
	"context"
	"errors"
	"strconv"

	"github.com/duelhub/duel-services/internal/duelsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNoContent = errors.New("no content available for variant")

// question is the question-bank document shape.
type question struct {
	Variant      string   `bson:"variant"`
	Prompt       string   `bson:"prompt"`
	Choices      []string `bson:"choices"`
	CorrectIndex int      `bson:"correct_index"`
	Explanation  string   `bson:"explanation"`
}

// Bank draws quiz rounds at random from the mongo question bank and chains
// word rounds off the previous one.
type Bank struct {
	questions *mongo.Collection
	chain     *Chain
}

func NewBank(db *mongo.Database) *Bank {
	return &Bank{
		questions: db.Collection("questions"),
		chain:     NewChain(),
	}
}

func (b *Bank) Round(ctx context.Context, variant string, number int, prev *models.RoundPayload) (models.RoundPayload, error) {
	if variant == "word-chain" {
		return b.chain.Round(ctx, variant, number, prev)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"variant": variant}}},
		bson.D{{Key: "$sample", Value: bson.M{"size": 1}}},
	}

	cursor, err := b.questions.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RoundPayload{}, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return models.RoundPayload{}, ErrNoContent
	}

	var q question
	if err := cursor.Decode(&q); err != nil {
		return models.RoundPayload{}, err
	}

	return models.RoundPayload{
		Prompt:      q.Prompt,
		Choices:     q.Choices,
		Answer:      strconv.Itoa(q.CorrectIndex),
		Explanation: q.Explanation,
	}, nil
}
