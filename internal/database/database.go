package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoDatabase = "dhrms"
	mongoCollection      = "profile_store"
)

// ConnectMongo connects and pings. The database name comes from the URI path,
// falling back to "dhrms".
func ConnectMongo(ctx context.Context, mongoURI string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	return client, client.Database(mongoDatabaseName(mongoURI)), nil
}

func DisconnectMongo(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// Format: mongodb://.../database_name?...
func mongoDatabaseName(mongoURI string) string {
	parts := strings.Split(mongoURI, "/")
	if len(parts) > 3 {
		dbPart := strings.Split(parts[len(parts)-1], "?")[0]
		if dbPart != "" {
			return dbPart
		}
	}
	return defaultMongoDatabase
}

// MaskURI hides the password of a connection string for logging.
func MaskURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	scheme := strings.Index(uri, "://")
	if at == -1 || scheme == -1 || scheme+3 > at {
		return uri
	}
	userInfo := uri[scheme+3 : at]
	colon := strings.Index(userInfo, ":")
	if colon == -1 {
		return uri
	}
	return uri[:scheme+3] + userInfo[:colon] + ":***" + uri[at:]
}

type storeDocument struct {
	ProfileID string    `bson:"profile_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per (profile, key).
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll, now: time.Now}
}

// EnsureIndexes creates the unique (profile_id, key) index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "profile_id", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *MongoStore) Get(ctx context.Context, profile, key string) ([]byte, bool, error) {
	var doc storeDocument
	err := s.coll.FindOne(ctx, bson.M{"profile_id": profile, "key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (s *MongoStore) Set(ctx context.Context, profile, key string, value []byte) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"profile_id": profile, "key": key},
		bson.M{"$set": bson.M{"value": string(value), "updated_at": s.now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Remove(ctx context.Context, profile, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"profile_id": profile, "key": key})
	return err
}

func (s *MongoStore) Clear(ctx context.Context, profile string) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"profile_id": profile})
	return err
}
