package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
)

const accountCollection = "users"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

// accountDoc is the BSON shape of an account. Field names match the documents
// written by earlier deployments of this system, so the collection stays
// readable by both.
type accountDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Password      string             `bson:"password"`
	Name          string             `bson:"name,omitempty"`
	Phone         string             `bson:"phone,omitempty"`
	Role          string             `bson:"role"`
	Rating        float64            `bson:"rating,omitempty"`
	CompletedJobs int                `bson:"completedJobs,omitempty"`
	Skills        []string           `bson:"skills,omitempty"`
	Experience    string             `bson:"experience,omitempty"`
	HourlyRate    float64            `bson:"hourlyRate,omitempty"`
	ResponseTime  string             `bson:"responseTime,omitempty"`
}

func toDoc(a *domain.Account) accountDoc {
	doc := accountDoc{
		Email:         a.Email,
		Password:      a.PasswordHash,
		Name:          a.Name,
		Phone:         a.Phone,
		Role:          a.Role,
		Rating:        a.Rating,
		CompletedJobs: a.CompletedJobs,
	}
	if a.Worker != nil {
		doc.Skills = a.Worker.Skills
		doc.Experience = a.Worker.Experience
		doc.HourlyRate = a.Worker.HourlyRate
		doc.ResponseTime = a.Worker.ResponseTime
	}
	return doc
}

// toAccount maps a document to the domain type. Worker attributes present on
// a customer document are treated as absent.
func toAccount(doc accountDoc) *domain.Account {
	a := &domain.Account{
		ID:            doc.ID.Hex(),
		Email:         doc.Email,
		PasswordHash:  doc.Password,
		Name:          doc.Name,
		Phone:         doc.Phone,
		Role:          doc.Role,
		Rating:        doc.Rating,
		CompletedJobs: doc.CompletedJobs,
	}
	if doc.Role == domain.RoleWorker {
		a.Worker = &domain.WorkerProfile{
			Skills:       doc.Skills,
			Experience:   doc.Experience,
			HourlyRate:   doc.HourlyRate,
			ResponseTime: doc.ResponseTime,
		}
	}
	return a
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert account: unexpected id type %T", res.InsertedID)
	}

	created := *account
	created.ID = oid.Hex()
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return toAccount(doc), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return toAccount(doc), nil
}

func (r *AccountRepository) ListWorkers(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"role": domain.RoleWorker})
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []*domain.Account
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode worker: %w", err)
		}
		workers = append(workers, toAccount(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	return workers, nil
}

// Update applies the non-nil fields of in as a partial $set and returns the
// updated document. Email and role have no corresponding $set entry here, so
// they cannot be written through this method.
func (r *AccountRepository) Update(ctx context.Context, id string, in ports.ProfileUpdate) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.Skills != nil {
		set["skills"] = *in.Skills
	}
	if in.Experience != nil {
		set["experience"] = *in.Experience
	}
	if in.HourlyRate != nil {
		set["hourlyRate"] = *in.HourlyRate
	}
	if in.ResponseTime != nil {
		set["responseTime"] = *in.ResponseTime
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if len(set) == 0 {
		// Nothing to merge; still report NotFound for unknown ids.
		return r.findByObjectID(ctx, oid)
	}

	var doc accountDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return toAccount(doc), nil
}

func (r *AccountRepository) findByObjectID(ctx context.Context, oid primitive.ObjectID) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return toAccount(doc), nil
}

// EnsureIndexes creates the account indexes. The unique email index backs the
// duplicate-registration invariant even under concurrent registrations.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
