package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

const sweetsCollection = "sweets"

type SweetRepository struct {
	coll *mongo.Collection
}

func NewSweetRepository(db *mongo.Database) *SweetRepository {
	return &SweetRepository{coll: db.Collection(sweetsCollection)}
}

type mongoSweet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	NameLower   string             `bson:"name_lower"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	Description string             `bson:"description"`
	Image       string             `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoSweet) toDomain() *domain.Sweet {
	return &domain.Sweet{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Description: m.Description,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// parseSweetID converts an external id into an ObjectID, mapping malformed
// input to domain.ErrInvalidSweetID so the boundary can answer 400.
func parseSweetID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidSweetID
	}
	return oid, nil
}

func (r *SweetRepository) Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoSweet{
		Name:        s.Name,
		NameLower:   strings.ToLower(s.Name),
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		Image:       s.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSweetExists
		}
		return nil, fmt.Errorf("insert sweet: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := parseSweetID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoSweet
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("find sweet: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByName performs a case-insensitive exact-name lookup via the stored
// name_lower field. excludeID, when set, skips that record (rename checks).
func (r *SweetRepository) FindByName(ctx context.Context, name, excludeID string) (*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"name_lower": strings.ToLower(name)}
	if excludeID != "" {
		oid, err := parseSweetID(excludeID)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	var doc mongoSweet
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("find sweet by name: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SweetRepository) List(ctx context.Context) ([]*domain.Sweet, error) {
	return r.find(ctx, bson.M{})
}

func (r *SweetRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	query := bson.M{}

	if filter.Name != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.MaxPrice != nil {
		query["price"] = bson.M{"$lte": *filter.MaxPrice}
	}

	return r.find(ctx, query)
}

func (r *SweetRepository) find(ctx context.Context, query bson.M) ([]*domain.Sweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find sweets: %w", err)
	}
	defer cursor.Close(ctx)

	sweets := make([]*domain.Sweet, 0)
	for cursor.Next(ctx) {
		var doc mongoSweet
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode sweet: %w", err)
		}
		sweets = append(sweets, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate sweets: %w", err)
	}
	return sweets, nil
}

func (r *SweetRepository) Update(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	oid, err := parseSweetID(s.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        s.Name,
		"name_lower":  strings.ToLower(s.Name),
		"category":    s.Category,
		"price":       s.Price,
		"quantity":    s.Quantity,
		"description": s.Description,
		"image":       s.Image,
		"updated_at":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoSweet
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSweetExists
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseSweetID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

// AdjustQuantity applies delta to the stored quantity in one conditional
// update. For a negative delta the filter requires quantity >= -delta, so the
// stock check and the decrement are atomic at the database; two concurrent
// purchases of the last unit cannot both pass.
func (r *SweetRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*domain.Sweet, error) {
	oid, err := parseSweetID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoSweet
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the record is gone or the stock could not cover the
			// decrement. Look again to answer with the exact available count.
			current, findErr := r.FindByID(ctx, id)
			if findErr != nil {
				return nil, findErr
			}
			return nil, &domain.InsufficientStockError{Available: current.Quantity}
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing name uniqueness and search.
func (r *SweetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_lower", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
