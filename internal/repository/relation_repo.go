package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	"github.com/whereaboutapp/api-whereabout/internal/apperr"
	"github.com/whereaboutapp/api-whereabout/internal/model"
)

// firestoreRelationRepository is the Firestore-backed RelationRepository
type firestoreRelationRepository struct {
	client *firestore.Client
}

func NewRelationRepository(client *firestore.Client) RelationRepository {
	return &firestoreRelationRepository{client: client}
}

// Find looks up the directed relation userID -> recipientID
func (r *firestoreRelationRepository) Find(ctx context.Context, userID, recipientID string) (*model.Relation, error) {
	iter := r.client.Collection(ColRelations).
		Where("userId", "==", userID).
		Where("recipientId", "==", recipientID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query relations: %w", err)
	}

	var relation model.Relation
	if err := snap.DataTo(&relation); err != nil {
		return nil, fmt.Errorf("failed to decode relation %s: %w", snap.Ref.ID, err)
	}
	relation.RelationID = snap.Ref.ID
	return &relation, nil
}

// Create inserts a relation document with a store-assigned id
func (r *firestoreRelationRepository) Create(ctx context.Context, relation *model.Relation) (*model.Relation, error) {
	ref, _, err := r.client.Collection(ColRelations).Add(ctx, relation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	relation.RelationID = ref.ID
	return relation, nil
}

// Delete removes a relation by document id. Deleting an absent document
// is a no-op at the store level.
func (r *firestoreRelationRepository) Delete(ctx context.Context, relationID string) error {
	_, err := r.client.Collection(ColRelations).Doc(relationID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStoreWrite, err)
	}
	return nil
}

// ListByUser pages a user's outgoing relations with offset/limit
func (r *firestoreRelationRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.Relation, error) {
	iter := r.client.Collection(ColRelations).
		Where("userId", "==", userID).
		Offset(offset).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	relations := []model.Relation{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query relations: %w", err)
		}
		var relation model.Relation
		if err := snap.DataTo(&relation); err != nil {
			return nil, fmt.Errorf("failed to decode relation %s: %w", snap.Ref.ID, err)
		}
		relation.RelationID = snap.Ref.ID
		relations = append(relations, relation)
	}
	return relations, nil
}

func (r *firestoreRelationRepository) Count(ctx context.Context) (int64, error) {
	return countCollection(ctx, r.client.Collection(ColRelations))
}

// countCollection runs a server-side count aggregation over a collection
func countCollection(ctx context.Context, col *firestore.CollectionRef) (int64, error) {
	results, err := col.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", col.ID, err)
	}
	value, ok := results["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation result for %s", col.ID)
	}
	return value.GetIntegerValue(), nil
}
