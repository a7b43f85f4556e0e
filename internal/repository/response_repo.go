package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campuspulse/internal/model"
)

// ResponseRepo handles MongoDB operations for raw survey responses.
type ResponseRepo interface {
	ListAll(ctx context.Context) ([]model.Response, error)
	GetByID(ctx context.Context, id int) (*model.Response, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, responses []model.Response) error
	DeleteAll(ctx context.Context) error
	DistinctCourses(ctx context.Context) ([]string, error)
	DistinctYears(ctx context.Context) ([]string, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository.
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) ListAll(ctx context.Context) ([]model.Response, error) {
	opts := options.Find().SetSort(bson.M{"id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) GetByID(ctx context.Context, id int) (*model.Response, error) {
	var response model.Response
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *responseRepo) InsertMany(ctx context.Context, responses []model.Response) error {
	if len(responses) == 0 {
		return nil
	}
	docs := make([]interface{}, len(responses))
	for i := range responses {
		docs[i] = responses[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *responseRepo) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

func (r *responseRepo) DistinctCourses(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "course")
}

func (r *responseRepo) DistinctYears(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "year")
}

func (r *responseRepo) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{field: bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
