package memory

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"decision-analysis/internal/model"
)

// MongoClient wraps a connected database handle, adapted from the service's
// general-purpose Mongo wrapper for the Memory Layer's narrower needs.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoClient connects and pings within a bounded startup window.
func NewMongoClient(uri, dbName string) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Info().Str("db", dbName).Msg("connected to mongo for memory layer persistence")
	return &MongoClient{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the client.
func (c *MongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// historyDoc is the persisted shape for one HistoricalOutcome, scoped by
// context id so a single collection serves every context.
type historyDoc struct {
	ContextID string                 `bson:"contextId"`
	Outcome   model.DecisionOutcome  `bson:"outcome"`
	Stage     model.StageAssessment  `bson:"stage"`
	Fix       string                 `bson:"fix"`
	Timestamp time.Time              `bson:"timestamp"`
}

// MongoStore is the persistent Store implementation: the interface the
// Memory Layer depends on is unchanged, so the in-process default and this
// collaborator are interchangeable (spec.md §4.7).
type MongoStore struct {
	collection  *mongo.Collection
	ringSize    int
	unavailable atomic.Bool
}

// NewMongoStore opens (without creating) the history collection.
func NewMongoStore(client *MongoClient, ringSize int) *MongoStore {
	if ringSize <= 0 {
		ringSize = defaultRingSize
	}
	return &MongoStore{collection: client.db.Collection("decision_history"), ringSize: ringSize}
}

// Record inserts a new document and trims the oldest documents for this
// context beyond the ring size.
func (s *MongoStore) Record(contextID string, outcome model.HistoricalOutcome) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := historyDoc{
		ContextID: contextID,
		Outcome:   outcome.Outcome,
		Stage:     outcome.Stage,
		Fix:       outcome.Fix,
		Timestamp: outcome.Timestamp,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		log.Warn().Err(err).Str("contextId", contextID).Msg("memory layer: failed to persist history record")
		s.unavailable.Store(true)
		return
	}
	s.unavailable.Store(false)
	s.trim(ctx, contextID)
}

func (s *MongoStore) trim(ctx context.Context, contextID string) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"contextId": contextID})
	if err != nil || count <= int64(s.ringSize) {
		return
	}

	excess := count - int64(s.ringSize)
	cursor, err := s.collection.Find(ctx, bson.M{"contextId": contextID},
		options.Find().SetSort(bson.M{"timestamp": 1}).SetLimit(excess))
	if err != nil {
		return
	}
	defer cursor.Close(ctx)

	var toDelete []interface{}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err == nil {
			toDelete = append(toDelete, raw["_id"])
		}
	}
	if len(toDelete) > 0 {
		_, _ = s.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": toDelete}})
	}
}

// History returns the chronological record list for a context.
func (s *MongoStore) History(contextID string) []model.HistoricalOutcome {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"contextId": contextID},
		options.Find().SetSort(bson.M{"timestamp": 1}))
	if err != nil {
		log.Warn().Err(err).Str("contextId", contextID).Msg("memory layer: failed to read history, degrading to empty")
		s.unavailable.Store(true)
		return nil
	}
	defer cursor.Close(ctx)
	s.unavailable.Store(false)

	var out []model.HistoricalOutcome
	for cursor.Next(ctx) {
		var doc historyDoc
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		out = append(out, model.HistoricalOutcome{
			ContextID: doc.ContextID,
			Outcome:   doc.Outcome,
			Stage:     doc.Stage,
			Fix:       doc.Fix,
			Timestamp: doc.Timestamp,
		})
	}
	return out
}

// Unavailable reports whether the most recent Record/History call failed to
// reach Mongo.
func (s *MongoStore) Unavailable() bool { return s.unavailable.Load() }
