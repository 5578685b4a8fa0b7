package devqueue

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "dev_queues"

// queues are a preview side-channel, never authoritative; let Mongo expire
// abandoned ones
const queueTTL = 24 * time.Hour

// Queue is one developer's staged-number queue for a room. Staged numbers are
// kept entirely apart from the committed called-number history; only a call
// commit ever mutates the history.
type Queue struct {
	GameID    string    `bson:"game_id" json:"game_id"`
	PlayerID  string    `bson:"player_id" json:"player_id"`
	Numbers   []int     `bson:"numbers" json:"numbers"`
	ExpiresAt time.Time `bson:"expires_at" json:"-"`
}

// Connect opens the Mongo database named in MONGODB_URI.
func Connect() (*mongo.Database, context.CancelFunc, error) {
	mongoURI := os.Getenv("MONGODB_URI")

	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing MongoDB URI: %w", err)
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	return client.Database(dbName), cancel, nil
}

type Store struct {
	coll *mongo.Collection
}

// NewStore wraps the dev_queues collection and makes sure the TTL index on
// expires_at exists.
func NewStore(db *mongo.Database) (*Store, error) {
	coll := db.Collection(collectionName)

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0), // expire at the stored timestamp
	}
	if _, err := coll.Indexes().CreateOne(context.TODO(), indexModel); err != nil {
		return nil, fmt.Errorf("failed to create TTL index: %w", err)
	}

	return &Store{coll: coll}, nil
}

func filter(gameID, playerID string) bson.M {
	return bson.M{"game_id": gameID, "player_id": playerID}
}

// Push appends a number to the player's queue, skipping duplicates, and
// refreshes the queue's expiry.
func (s *Store) Push(ctx context.Context, gameID, playerID string, number int) error {
	update := bson.M{
		"$addToSet": bson.M{"numbers": number},
		"$set":      bson.M{"expires_at": time.Now().Add(queueTTL)},
	}
	_, err := s.coll.UpdateOne(ctx, filter(gameID, playerID), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to push to dev queue: %w", err)
	}
	return nil
}

// Pop removes and returns the head of the player's queue. ok is false when
// the queue is empty or absent.
func (s *Store) Pop(ctx context.Context, gameID, playerID string) (int, bool, error) {
	var q Queue
	err := s.coll.FindOne(ctx, filter(gameID, playerID)).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read dev queue: %w", err)
	}
	if len(q.Numbers) == 0 {
		return 0, false, nil
	}

	head := q.Numbers[0]
	update := bson.M{
		"$pop": bson.M{"numbers": -1}, // drop the first element
		"$set": bson.M{"expires_at": time.Now().Add(queueTTL)},
	}
	if _, err := s.coll.UpdateOne(ctx, filter(gameID, playerID), update); err != nil {
		return 0, false, fmt.Errorf("failed to pop dev queue: %w", err)
	}
	return head, true, nil
}

// Get returns the player's queue without mutating it.
func (s *Store) Get(ctx context.Context, gameID, playerID string) (*Queue, error) {
	var q Queue
	err := s.coll.FindOne(ctx, filter(gameID, playerID)).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &Queue{GameID: gameID, PlayerID: playerID, Numbers: []int{}}, nil
		}
		return nil, fmt.Errorf("failed to read dev queue: %w", err)
	}
	if q.Numbers == nil {
		q.Numbers = []int{}
	}
	return &q, nil
}

// Clear drops the player's queue.
func (s *Store) Clear(ctx context.Context, gameID, playerID string) error {
	if _, err := s.coll.DeleteOne(ctx, filter(gameID, playerID)); err != nil {
		return fmt.Errorf("failed to clear dev queue: %w", err)
	}
	return nil
}
