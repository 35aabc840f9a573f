package interests

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type I_InterestRepo interface {
	LoadInterests(owner string) ([]string, error)
	FindInterestsByOwner(owner string) ([]*DBInterest, error)
	ReplaceInterests(owner string, hashes []string) error
	FindAdmirers(targetHash string) ([]*DBInterest, error)
}

type InterestService struct {
	interestCollection *mongo.Collection
	ctx                context.Context
}

func NewInterestService(interestCollection *mongo.Collection, ctx context.Context) I_InterestRepo {
	return &InterestService{interestCollection, ctx}
}

// LoadInterests returns the owner's full target hash set.
func (me *InterestService) LoadInterests(owner string) ([]string, error) {
	edges, err := me.FindInterestsByOwner(owner)
	if err != nil {
		return nil, err
	}

	hashes := make([]string, 0, len(edges))
	for _, e := range edges {
		hashes = append(hashes, e.TargetHash)
	}

	return hashes, nil
}

func (me *InterestService) FindInterestsByOwner(owner string) ([]*DBInterest, error) {
	query := bson.M{"owner": owner}

	cursor, err := me.interestCollection.Find(me.ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var edges []*DBInterest
	for cursor.Next(me.ctx) {
		e := &DBInterest{}
		if err := cursor.Decode(e); err != nil {
			return nil, err
		}

		edges = append(edges, e)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(edges) == 0 {
		return []*DBInterest{}, nil
	}

	return edges, nil
}

// ReplaceInterests swaps the owner's whole edge set for the given one,
// as delete-all then insert-all. There is no transaction around the
// two steps: when the insert fails the owner is left with an empty
// ledger and the caller gets told, so it can re-save.
func (me *InterestService) ReplaceInterests(owner string, hashes []string) error {
	opt := options.Index()
	opt.SetUnique(true)

	index := mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "target_hash", Value: 1}}, Options: opt}

	if _, err := me.interestCollection.Indexes().CreateOne(me.ctx, index); err != nil {
		return err
	}

	if _, err := me.interestCollection.DeleteMany(me.ctx, bson.M{"owner": owner}); err != nil {
		return err
	}

	if len(hashes) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(hashes))
	for _, h := range hashes {
		docs = append(docs, &DBInterest{
			Owner:      owner,
			TargetHash: h,
			CreatedAt:  now,
		})
	}

	if _, err := me.interestCollection.InsertMany(me.ctx, docs); err != nil {
		return fmt.Errorf("interests were cleared but re-insert failed, ledger is empty, save again: %w", err)
	}

	return nil
}

// FindAdmirers returns every edge pointing at the given hash,
// whichever user owns it.
func (me *InterestService) FindAdmirers(targetHash string) ([]*DBInterest, error) {
	query := bson.M{"target_hash": targetHash}

	cursor, err := me.interestCollection.Find(me.ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var edges []*DBInterest
	for cursor.Next(me.ctx) {
		e := &DBInterest{}
		if err := cursor.Decode(e); err != nil {
			return nil, err
		}

		edges = append(edges, e)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(edges) == 0 {
		return []*DBInterest{}, nil
	}

	return edges, nil
}
