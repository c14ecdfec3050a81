package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
)

// MongoArchiveRepository stores raw provider documents in MongoDB
type MongoArchiveRepository struct {
	collection *mongo.Collection
}

// NewMongoArchiveRepository creates a new MongoDB archive repository
func NewMongoArchiveRepository(db *mongo.Database) repository.DocumentArchiveRepository {
	return &MongoArchiveRepository{
		collection: db.Collection("provider_documents"),
	}
}

// Archive inserts one raw provider response
func (r *MongoArchiveRepository) Archive(ctx context.Context, doc *entity.ArchivedDocument) error {
	doc.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
