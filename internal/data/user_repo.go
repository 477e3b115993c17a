package data

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
)

// UserRepo provides document operations over the user collection. It is the
// Role Store: the authoritative source of each identity's current role.
type UserRepo struct {
	col          *mongo.Collection
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		col:          db.Collection("users"),
		timeProvider: &RealTimeProvider{},
	}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider.
func NewUserRepoWithTimeProvider(db *mongo.Database, tp TimeProvider) *UserRepo {
	return &UserRepo{col: db.Collection("users"), timeProvider: tp}
}

// FindByEmail returns the user with the given email. Email matching is
// case-sensitive; it is the unique key across the platform.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// FindByID returns the user with the given object ID.
func (r *UserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, ErrInvalidID
	}
	var user model.User
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

// RoleByEmail reads only the current role for an email. Both the session
// issuer and the role gate use this; it must stay a fresh read, never a
// cached value.
func (r *UserRepo) RoleByEmail(ctx context.Context, email string) (domainauth.Role, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// FindOrCreate registers a user if the email is unseen and returns the
// stored record. Re-registration of an existing email is a no-op returning
// the existing user, keeping registration idempotent per email.
func (r *UserRepo) FindOrCreate(ctx context.Context, user model.User) (model.User, bool, error) {
	existing, err := r.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return model.User{}, false, err
	}

	if user.Role == "" {
		user.Role = domainauth.DefaultRole
	}
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}
	user.CreatedAt = r.timeProvider.Now()

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return model.User{}, false, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = oid
	}
	return user, true, nil
}

// UpdateRole sets the role for the user with the given email.
func (r *UserRepo) UpdateRole(ctx context.Context, email string, role domainauth.Role) error {
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role}}}},
	)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	DisplayName string
	PhotoURL    string
}

// UpdateProfile sets profile fields for the user with the given email.
// Empty fields are left untouched.
func (r *UserRepo) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) error {
	set := bson.D{}
	if update.DisplayName != "" {
		set = append(set, bson.E{Key: "displayName", Value: update.DisplayName})
	}
	if update.PhotoURL != "" {
		set = append(set, bson.E{Key: "photoURL", Value: update.PhotoURL})
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IncrementLoginCount bumps the login counter after a successful exchange.
func (r *UserRepo) IncrementLoginCount(ctx context.Context, email string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "loginCount", Value: 1}}}},
	)
	if err != nil {
		return fmt.Errorf("increment login count: %w", err)
	}
	return nil
}

// Search lists users whose name or email matches the search term,
// excluding the caller's own account.
func (r *UserRepo) Search(ctx context.Context, search, skipEmail string) ([]model.User, error) {
	cur, err := r.col.Find(ctx, userSearchFilter(search, skipEmail))
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// ListByRole lists all users holding the given role.
func (r *UserRepo) ListByRole(ctx context.Context, role domainauth.Role) ([]model.User, error) {
	cur, err := r.col.Find(ctx, bson.D{{Key: "role", Value: role}})
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// CountByRole counts users holding the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role domainauth.Role) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{{Key: "role", Value: role}})
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// userSearchFilter builds the search query. The term is regex-quoted so
// user input matches literally.
func userSearchFilter(search, skipEmail string) bson.D {
	pattern := regexp.QuoteMeta(search)
	return bson.D{
		{Key: "email", Value: bson.D{{Key: "$ne", Value: skipEmail}}},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "displayName", Value: bson.D{
				{Key: "$regex", Value: pattern},
				{Key: "$options", Value: "i"},
			}}},
			bson.D{{Key: "email", Value: bson.D{
				{Key: "$regex", Value: pattern},
				{Key: "$options", Value: "i"},
			}}},
		}},
	}
}
