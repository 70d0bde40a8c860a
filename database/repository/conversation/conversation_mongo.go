package conversationRepo

import (
	"context"
	"fmt"
	"time"

	"zmina/database"
	"zmina/models"
	"zmina/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoConversationRepo implements ConversationRepository using MongoDB.
type MongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo creates a new instance of ConversationRepository using MongoDB.
func NewMongoConversationRepo() ConversationRepository {
	repo := &MongoConversationRepo{coll: database.DB().Collection("conversations")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create conversation indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoConversationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lastUpdated", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create conversation indexes: %w", err)
	}
	return nil
}

// Load returns the user's state or a fresh empty one when absent.
func (r *MongoConversationRepo) Load(ctx context.Context, userID string) (*models.ConversationState, error) {
	var state models.ConversationState
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&state)
	if err == mongo.ErrNoDocuments {
		return &models.ConversationState{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state for %s: %w", userID, err)
	}
	return &state, nil
}

// Save upserts the user's record, bumping the message counter.
func (r *MongoConversationRepo) Save(ctx context.Context, userID, lastMessage string, lastContext *models.ConversationContext) error {
	update := bson.M{
		"$set": bson.M{
			"lastMessage": lastMessage,
			"lastContext": lastContext,
			"lastUpdated": time.Now(),
		},
		"$inc": bson.M{"messageCount": 1},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update, opts); err != nil {
		return fmt.Errorf("failed to save conversation state for %s: %w", userID, err)
	}
	return nil
}

// Reset drops the user's record.
func (r *MongoConversationRepo) Reset(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to reset conversation state for %s: %w", userID, err)
	}
	return nil
}

// Prune deletes records idle since before olderThan.
func (r *MongoConversationRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"lastUpdated": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune conversation states: %w", err)
	}
	return res.DeletedCount, nil
}
