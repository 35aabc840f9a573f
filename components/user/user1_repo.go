package user

import (
	"context"
	"errors"
	"time"

	"mutuals/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type I_UserRepo interface {
	CreateUser(*CreateUser) (*DBUser, error)
	UpdateUser(primitive.ObjectID, *DBUser) (*DBUser, error)
	FindUserById(string) (*DBUser, error)
	FindUserByEmail(string) (*DBUser, error)
	FindUserByPhoneHash(string) (*DBUser, error)
	FindUsersByIds([]string) ([]*DBUser, error)
	DeleteUserData(uid string) error
	GetCollection() *mongo.Collection
}

type UserService struct {
	userCollection     *mongo.Collection
	contactCollection  *mongo.Collection
	interestCollection *mongo.Collection
	ctx                context.Context
}

func NewUserService(userCollection, contactCollection, interestCollection *mongo.Collection, ctx context.Context) I_UserRepo {
	return &UserService{userCollection, contactCollection, interestCollection, ctx}
}

func (me *UserService) GetCollection() *mongo.Collection {
	return me.userCollection
}

func (me *UserService) CreateUser(user *CreateUser) (*DBUser, error) {
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	res, err := me.userCollection.InsertOne(me.ctx, user)
	if err != nil {
		if er, ok := err.(mongo.WriteException); ok && len(er.WriteErrors) > 0 && er.WriteErrors[0].Code == 11000 {
			return nil, errors.New("account already exists")
		}
		return nil, err
	}

	opt := options.Index()
	opt.SetUnique(true)

	index := mongo.IndexModel{Keys: bson.M{"uid": 1}, Options: opt}

	if _, err := me.userCollection.Indexes().CreateOne(me.ctx, index); err != nil {
		return nil, err
	}

	// phone_hash must be unique across accounts but most profiles
	// start without one, hence the sparse index
	phopt := options.Index()
	phopt.SetUnique(true)
	phopt.SetSparse(true)

	index = mongo.IndexModel{Keys: bson.M{"phone_hash": 1}, Options: phopt}

	if _, err := me.userCollection.Indexes().CreateOne(me.ctx, index); err != nil {
		return nil, err
	}

	var newUser *DBUser
	query := bson.M{"_id": res.InsertedID}
	if err = me.userCollection.FindOne(me.ctx, query).Decode(&newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (me *UserService) UpdateUser(obId primitive.ObjectID, user *DBUser) (*DBUser, error) {
	user.UpdatedAt = time.Now().UTC()
	doc, err := utils.ToDoc(user)
	if err != nil {
		return nil, err
	}

	query := bson.D{{Key: "_id", Value: obId}}
	update := bson.D{{Key: "$set", Value: doc}}
	res := me.userCollection.FindOneAndUpdate(me.ctx, query, update, options.FindOneAndUpdate().SetReturnDocument(1))

	var updatedUser *DBUser

	if err := res.Decode(&updatedUser); err != nil {
		return nil, errors.New("no user with that Id exists")
	}

	return updatedUser, nil
}

func (me *UserService) FindUserById(uid string) (*DBUser, error) {
	query := bson.M{"uid": uid}

	var user *DBUser

	if err := me.userCollection.FindOne(me.ctx, query).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("no account with that UID exists")
		}
		return nil, err
	}

	return user, nil
}

func (me *UserService) FindUserByEmail(email string) (*DBUser, error) {
	query := bson.M{"email": email}

	var user *DBUser

	if err := me.userCollection.FindOne(me.ctx, query).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("no account with that email exists")
		}
		return nil, err
	}

	return user, nil
}

func (me *UserService) FindUserByPhoneHash(hash string) (*DBUser, error) {
	query := bson.M{"phone_hash": hash}

	var user *DBUser

	if err := me.userCollection.FindOne(me.ctx, query).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("no account with that phone exists")
		}
		return nil, err
	}

	return user, nil
}

func (me *UserService) FindUsersByIds(uids []string) ([]*DBUser, error) {
	query := bson.M{"uid": bson.M{"$in": uids}}

	cursor, err := me.userCollection.Find(me.ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(me.ctx)

	var users []*DBUser
	for cursor.Next(me.ctx) {
		u := &DBUser{}
		err := cursor.Decode(u)

		if err != nil {
			return nil, err
		}

		users = append(users, u)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return []*DBUser{}, nil
	}

	return users, nil
}

// DeleteUserData removes the profile together with everything the user
// ever uploaded: contacts and interest edges. Order matters, the
// profile goes last so a failed wipe stays retryable.
func (me *UserService) DeleteUserData(uid string) error {
	if _, err := me.contactCollection.DeleteMany(me.ctx, bson.M{"owner": uid}); err != nil {
		return err
	}

	if _, err := me.interestCollection.DeleteMany(me.ctx, bson.M{"owner": uid}); err != nil {
		return err
	}

	res, err := me.userCollection.DeleteOne(me.ctx, bson.M{"uid": uid})
	if err != nil {
		return err
	}

	if res.DeletedCount == 0 {
		return errors.New("no account with that UID exists")
	}

	return nil
}
