package contacts

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type I_ContactRepo interface {
	CreateContacts(owner string, contacts []*CreateContact) (inserted []*DBContact, duplicates int, err error)
	FindContactsByOwner(owner string, page, limit int) ([]*DBContact, error)
	FindContactsByOwnerAndHashes(owner string, hashes []string) ([]*DBContact, error)
	DeleteContact(owner string, id primitive.ObjectID) error
}

type ContactService struct {
	contactCollection *mongo.Collection
	ctx               context.Context
}

func NewContactService(contactCollection *mongo.Collection, ctx context.Context) I_ContactRepo {
	return &ContactService{contactCollection, ctx}
}

// CreateContacts inserts a parsed batch. Rows violating the
// (owner, phone_hash) unique index are counted and skipped while the
// rest of the batch still lands; any other write error aborts.
func (me *ContactService) CreateContacts(owner string, contacts []*CreateContact) ([]*DBContact, int, error) {
	if len(contacts) == 0 {
		return []*DBContact{}, 0, nil
	}

	opt := options.Index()
	opt.SetUnique(true)

	index := mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "phone_hash", Value: 1}}, Options: opt}

	if _, err := me.contactCollection.Indexes().CreateOne(me.ctx, index); err != nil {
		return nil, 0, err
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(contacts))
	for _, c := range contacts {
		c.Owner = owner
		c.CreatedAt = now
		docs = append(docs, c)
	}

	duplicates := 0
	insertOpt := options.InsertMany().SetOrdered(false)
	res, err := me.contactCollection.InsertMany(me.ctx, docs, insertOpt)
	if err != nil {
		bwe, ok := err.(mongo.BulkWriteException)
		if !ok {
			return nil, 0, err
		}
		for _, we := range bwe.WriteErrors {
			if we.Code != 11000 {
				return nil, 0, err
			}
			duplicates++
		}
	}

	if res == nil || len(res.InsertedIDs) == 0 {
		return []*DBContact{}, duplicates, nil
	}

	query := bson.M{"_id": bson.M{"$in": res.InsertedIDs}}
	cursor, err := me.contactCollection.Find(me.ctx, query)
	if err != nil {
		return nil, duplicates, err
	}
	defer cursor.Close(me.ctx)

	var inserted []*DBContact
	for cursor.Next(me.ctx) {
		c := &DBContact{}
		if err := cursor.Decode(c); err != nil {
			return nil, duplicates, err
		}
		inserted = append(inserted, c)
	}

	if err := cursor.Err(); err != nil {
		return nil, duplicates, err
	}

	return inserted, duplicates, nil
}

func (me *ContactService) FindContactsByOwner(owner string, page, limit int) ([]*DBContact, error) {
	if page == 0 {
		page = 1
	}

	if limit == 0 {
		limit = 100
	}

	skip := (page - 1) * limit

	opt := options.FindOptions{}
	opt.SetLimit(int64(limit))
	opt.SetSkip(int64(skip))
	opt.SetSort(bson.M{"name": 1})

	query := bson.M{"owner": owner}

	cursor, err := me.contactCollection.Find(me.ctx, query, &opt)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var found []*DBContact
	for cursor.Next(me.ctx) {
		c := &DBContact{}
		err := cursor.Decode(c)

		if err != nil {
			return nil, err
		}

		found = append(found, c)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return []*DBContact{}, nil
	}

	return found, nil
}

func (me *ContactService) FindContactsByOwnerAndHashes(owner string, hashes []string) ([]*DBContact, error) {
	query := bson.M{"owner": owner, "phone_hash": bson.M{"$in": hashes}}

	cursor, err := me.contactCollection.Find(me.ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var found []*DBContact
	for cursor.Next(me.ctx) {
		c := &DBContact{}
		if err := cursor.Decode(c); err != nil {
			return nil, err
		}

		found = append(found, c)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(found) == 0 {
		return []*DBContact{}, nil
	}

	return found, nil
}

func (me *ContactService) DeleteContact(owner string, id primitive.ObjectID) error {
	query := bson.M{"_id": id, "owner": owner}

	res, err := me.contactCollection.DeleteOne(me.ctx, query)
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return errors.New("no contact with that Id exists")
	}

	return nil
}
