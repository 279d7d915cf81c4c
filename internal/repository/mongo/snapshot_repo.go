// Package mongo persists the AppState as a single document and uses a
// change stream to push writes from other devices back into the store.
// The document body is stored as JSON text so the wire shape matches the
// other backends exactly.
package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotID = "appstate"

type snapshotDoc struct {
	ID       string `bson:"_id"`
	Origin   string `bson:"origin"`
	Document string `bson:"document"`
}

// SnapshotRepository stores the AppState in a single MongoDB document.
type SnapshotRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	origin     string
}

// NewSnapshotRepository connects to MongoDB and pings it.
func NewSnapshotRepository(ctx context.Context, uri, dbName, collName string) (*SnapshotRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &SnapshotRepository{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
		origin:     uuid.New().String(),
	}, nil
}

// Close disconnects from MongoDB.
func (r *SnapshotRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// Load reads and decodes the snapshot document.
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.AppState, error) {
	var doc snapshotDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot: %w", err)
	}

	return decodeState([]byte(doc.Document))
}

// Save replaces the snapshot document, creating it on first write.
func (r *SnapshotRepository) Save(ctx context.Context, state *domain.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	doc := snapshotDoc{ID: snapshotID, Origin: r.origin, Document: string(data)}
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Subscribe watches the collection's change stream and invokes the
// callback with every externally written state. Requires a replica-set
// deployment, as all change streams do. The returned function cancels the
// subscription.
func (r *SnapshotRepository) Subscribe(ctx context.Context, onExternalUpdate func(*domain.AppState)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	stream, err := r.collection.Watch(subCtx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch snapshot collection: %w", err)
	}

	go func() {
		defer stream.Close(context.Background())

		for stream.Next(subCtx) {
			var change struct {
				FullDocument snapshotDoc `bson:"fullDocument"`
			}
			if err := stream.Decode(&change); err != nil {
				log.Warn().Err(err).Msg("Failed to decode change stream event")
				continue
			}

			if change.FullDocument.Origin == r.origin {
				// Our own write echoed back.
				continue
			}

			state, err := decodeState([]byte(change.FullDocument.Document))
			if err != nil {
				log.Warn().Err(err).Msg("Failed to decode externally updated snapshot")
				continue
			}

			log.Debug().Str("origin", change.FullDocument.Origin).Msg("Received external snapshot update")
			onExternalUpdate(state)
		}

		if err := stream.Err(); err != nil && subCtx.Err() == nil {
			log.Error().Err(err).Msg("Snapshot change stream ended")
		}
	}()

	return cancel, nil
}

func decodeState(data []byte) (*domain.AppState, error) {
	var state domain.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	state.Normalize()
	return &state, nil
}
