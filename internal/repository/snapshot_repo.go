package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campuspulse/internal/model"
)

// The collection holds exactly one document, keyed by a fixed id, so a
// restart can reload the last computed snapshot without Redis.
const snapshotDocID = "latest"

// SnapshotRepo persists the computed analytics snapshot in MongoDB as a
// durable backstop behind the Redis cache.
type SnapshotRepo interface {
	Save(ctx context.Context, snapshot *model.Snapshot) error
	Get(ctx context.Context) (*model.Snapshot, error)
}

type snapshotRepo struct {
	collection *mongo.Collection
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(db *mongo.Database) SnapshotRepo {
	return &snapshotRepo{
		collection: db.Collection("analytics_snapshots"),
	}
}

type snapshotDoc struct {
	ID       string          `bson:"_id"`
	Snapshot *model.Snapshot `bson:"snapshot"`
}

func (r *snapshotRepo) Save(ctx context.Context, snapshot *model.Snapshot) error {
	opts := options.Replace().SetUpsert(true)
	doc := snapshotDoc{ID: snapshotDocID, Snapshot: snapshot}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": snapshotDocID}, doc, opts)
	return err
}

func (r *snapshotRepo) Get(ctx context.Context) (*model.Snapshot, error) {
	var doc snapshotDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": snapshotDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Snapshot, nil
}
