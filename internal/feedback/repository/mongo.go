package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepo stores feedback in a single MongoDB collection keyed by ObjectID.
type MongoRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// recordDoc is the stored shape of a feedback record.
type recordDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	PersonType string             `bson:"personType"`
	JobRole    string             `bson:"jobRole,omitempty"`
	Location   string             `bson:"location,omitempty"`
	Rating     float64            `bson:"rating"`
	Comment    string             `bson:"comment,omitempty"`
	Answers    feedback.Answers   `bson:"answers"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func toDoc(r *feedback.Record) recordDoc {
	answers := r.Answers
	if answers == nil {
		answers = feedback.Answers{}
	}
	return recordDoc{
		Name:       r.Name,
		PersonType: string(r.PersonType),
		JobRole:    r.JobRole,
		Location:   r.Location,
		Rating:     r.Rating,
		Comment:    r.Comment,
		Answers:    answers,
		CreatedAt:  r.CreatedAt,
	}
}

func (d recordDoc) toDomain() *feedback.Record {
	answers := d.Answers
	if answers == nil {
		answers = feedback.Answers{}
	}
	return &feedback.Record{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		PersonType: feedback.PersonType(d.PersonType),
		JobRole:    d.JobRole,
		Location:   d.Location,
		Rating:     d.Rating,
		Comment:    d.Comment,
		Answers:    answers,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// NewMongoRepo wraps col and ensures the listing indexes exist.
func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	m := &MongoRepo{col: col, now: time.Now}
	if err := m.EnsureIndexes(ctx); err != nil {
		logger.Warnf("feedback indexes not created: %v", err)
	}
	return m
}

// EnsureIndexes creates the indexes used by sorting and filtering.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "personType", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := m.col.Indexes().CreateMany(ctx, models)
	return err
}

func (m *MongoRepo) Create(ctx context.Context, r *feedback.Record) error {
	doc := toDoc(r)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = m.now().UTC().Truncate(time.Millisecond)
	if _, err := m.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	r.ID = doc.ID.Hex()
	r.CreatedAt = doc.CreatedAt
	r.Answers = doc.Answers
	return nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*feedback.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var d recordDoc
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return d.toDomain(), nil
}

func (m *MongoRepo) List(ctx context.Context, q feedback.ListQuery) ([]*feedback.Record, int64, error) {
	filter := buildFilter(q)
	total, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}
	if q.Skip() >= total {
		return []*feedback.Record{}, total, nil
	}

	opts := options.Find().
		SetSort(sortSpec(q)).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find feedback: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]*feedback.Record, 0, q.Limit)
	for cur.Next(ctx) {
		var d recordDoc
		if err := cur.Decode(&d); err != nil {
			return nil, 0, fmt.Errorf("decode feedback: %w", err)
		}
		out = append(out, d.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate feedback: %w", err)
	}
	return out, total, nil
}

func (m *MongoRepo) Each(ctx context.Context, fn func(*feedback.Record) error) error {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("scan feedback: %w", err)
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var d recordDoc
		if err := cur.Decode(&d); err != nil {
			return fmt.Errorf("decode feedback: %w", err)
		}
		if err := fn(d.toDomain()); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, readpref.Primary())
}

// buildFilter translates the list query into a Mongo filter document.
func buildFilter(q feedback.ListQuery) bson.M {
	filter := bson.M{}
	if q.PersonType != "" {
		filter["personType"] = string(q.PersonType)
	}
	if q.From != nil || q.To != nil {
		rng := bson.M{}
		if q.From != nil {
			rng["$gte"] = *q.From
		}
		if q.To != nil {
			rng["$lte"] = *q.To
		}
		filter["createdAt"] = rng
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		fields := []string{"name", "comment", "jobRole", "location"}
		for _, k := range feedback.SearchableAnswerKeys {
			fields = append(fields, "answers."+k)
		}
		or := make(bson.A, 0, len(fields))
		for _, f := range fields {
			or = append(or, bson.M{f: re})
		}
		filter["$or"] = or
	}
	return filter
}

// sortSpec sorts by the requested key; _id ascending keeps insertion order for ties.
func sortSpec(q feedback.ListQuery) bson.D {
	dir := 1
	if q.Descending {
		dir = -1
	}
	field := "createdAt"
	if q.SortBy == feedback.SortByRating {
		field = "rating"
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: 1}}
}
