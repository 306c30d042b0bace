package sessions

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSessionMongoRepository(db *mongo.Client, dbName string) contracts.SessionRepository {
	return &SessionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSessions),
	}
}

func (r *SessionMongoRepository) InsertSession(ctx context.Context, session *models.Session) error {
	_, err := r.Collection.InsertOne(ctx, session)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *SessionMongoRepository) FindSessionByID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := r.Collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &session, nil
}

func (r *SessionMongoRepository) FindSessionByResumeTokenID(ctx context.Context, tokenID string) (*models.Session, error) {
	var session models.Session
	err := r.Collection.FindOne(ctx, bson.M{"resumeTokenId": tokenID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &session, nil
}

// SaveSession replaces the whole aggregate so a turn's mutations land
// atomically or not at all.
func (r *SessionMongoRepository) SaveSession(ctx context.Context, session *models.Session) error {
	filter := bson.M{"_id": session.ID}
	_, err := r.Collection.ReplaceOne(ctx, filter, session, options.Replace().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// SweepExpired runs the two lifecycle transitions the sweeper owns: paused
// sessions past expiry become expired, active sessions untouched for longer
// than staleActiveAge become abandoned. Both updates match nothing on a
// second run over the same data.
func (r *SessionMongoRepository) SweepExpired(ctx context.Context, now time.Time, staleActiveAge time.Duration) (int64, error) {
	expiredFilter := bson.M{
		"status":    models.SessionStatusPaused,
		"expiresAt": bson.M{"$lt": now},
	}
	expiredUpdate := bson.M{"$set": bson.M{
		"status":    models.SessionStatusExpired,
		"updatedAt": now,
	}}
	expiredResult, err := r.Collection.UpdateMany(ctx, expiredFilter, expiredUpdate)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}

	staleFilter := bson.M{
		"status":    models.SessionStatusActive,
		"updatedAt": bson.M{"$lt": now.Add(-staleActiveAge)},
	}
	staleUpdate := bson.M{"$set": bson.M{
		"status":    models.SessionStatusAbandoned,
		"updatedAt": now,
	}}
	staleResult, err := r.Collection.UpdateMany(ctx, staleFilter, staleUpdate)
	if err != nil {
		return expiredResult.ModifiedCount, exceptions.ErrMongoDBUpdateDocument(err)
	}

	return expiredResult.ModifiedCount + staleResult.ModifiedCount, nil
}
