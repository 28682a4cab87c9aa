package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrExportNotFound is returned by Log.Load for unknown ids.
var ErrExportNotFound = errors.New("export not found")

// Export is the metadata of one snapshot uploaded to object storage.
type Export struct {
	ID        string    `bson:"exportId" json:"id"`
	Key       string    `bson:"key" json:"key"`
	Count     int       `bson:"count" json:"count"`
	Size      int64     `bson:"size" json:"size"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	// URL is presigned on every read and never persisted.
	URL string `bson:"-" json:"url,omitempty"`
}

// Log persists export metadata.
type Log interface {
	Save(ctx context.Context, e *Export) error
	Load(ctx context.Context, id string) (*Export, error)
}

// MongoLog stores export metadata in a collection, upserting by export id.
type MongoLog struct {
	col *mongo.Collection
}

func NewMongoLog(col *mongo.Collection) *MongoLog {
	return &MongoLog{col: col}
}

func (l *MongoLog) Save(ctx context.Context, e *Export) error {
	filter := bson.M{"exportId": e.ID}
	opts := options.Update().SetUpsert(true)
	if _, err := l.col.UpdateOne(ctx, filter, bson.M{"$set": e}, opts); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

func (l *MongoLog) Load(ctx context.Context, id string) (*Export, error) {
	var e Export
	if err := l.col.FindOne(ctx, bson.M{"exportId": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return &e, nil
}

// MemoryLog keeps export metadata in process.
type MemoryLog struct {
	mu      sync.RWMutex
	exports map[string]Export
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{exports: make(map[string]Export)}
}

func (l *MemoryLog) Save(ctx context.Context, e *Export) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *e
	cp.URL = ""
	l.exports[e.ID] = cp
	return nil
}

func (l *MemoryLog) Load(ctx context.Context, id string) (*Export, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.exports[id]
	if !ok {
		return nil, ErrExportNotFound
	}
	return &e, nil
}
