package catalog

import (
	"context"
	"fmt"
	"swiperank/internal/models"
	"swiperank/internal/structures"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoLoader struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoLoader(conf structures.MongoConfig) (*MongoLoader, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoLoader{
		client:     client,
		collection: client.Database(conf.Database).Collection(conf.Collection),
	}, nil
}

// Load returns every product ordered by id so reloads are deterministic.
func (ml *MongoLoader) Load(ctx context.Context) ([]*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := ml.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (ml *MongoLoader) Source() string {
	return "mongo " + ml.collection.Database().Name() + "." + ml.collection.Name()
}

func (ml *MongoLoader) Close(ctx context.Context) error {
	return ml.client.Disconnect(ctx)
}
