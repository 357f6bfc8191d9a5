package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type postDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID           string             `bson:"postAuthorId"`
	Title              string             `bson:"postTitle"`
	Content            any                `bson:"postContent"`
	PreviewImage       string             `bson:"postPreviewImage,omitempty"`
	PreviewTitle       string             `bson:"postPreviewTitle,omitempty"`
	PreviewDescription string             `bson:"postPreviewDescription,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func (d *postDocument) toDomain() *domain.Post {
	return &domain.Post{
		ID:                 d.ID.Hex(),
		AuthorID:           d.AuthorID,
		Title:              d.Title,
		Content:            d.Content,
		PreviewImage:       d.PreviewImage,
		PreviewTitle:       d.PreviewTitle,
		PreviewDescription: d.PreviewDescription,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDocument{
		AuthorID:           post.AuthorID,
		Title:              post.Title,
		Content:            post.Content,
		PreviewImage:       post.PreviewImage,
		PreviewTitle:       post.PreviewTitle,
		PreviewDescription: post.PreviewDescription,
		CreatedAt:          post.CreatedAt,
		UpdatedAt:          post.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching posts sorted by createdAt descending.
func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, buildPostFilter(filter), listOptions())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": postPatchSet(patch, time.Now().UTC())})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the feed and dashboard listings.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "postAuthorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func listOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// buildPostFilter translates a listing filter into a query document.
// postAuthorId holds the author's id as a plain string.
func buildPostFilter(filter ports.ListPostsFilter) bson.M {
	query := bson.M{}
	if filter.AuthorID != "" {
		query["postAuthorId"] = filter.AuthorID
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"postTitle": re},
			bson.M{"postContent": re},
			bson.M{"postContent.blocks.data.text": re},
		}
	}
	return query
}

// postPatchSet builds the $set document for a partial update. The author
// is never part of it.
func postPatchSet(patch domain.PostPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["postTitle"] = *patch.Title
	}
	if patch.Content != nil {
		set["postContent"] = patch.Content
	}
	if patch.PreviewImage != nil {
		set["postPreviewImage"] = *patch.PreviewImage
	}
	if patch.PreviewTitle != nil {
		set["postPreviewTitle"] = *patch.PreviewTitle
	}
	if patch.PreviewDescription != nil {
		set["postPreviewDescription"] = *patch.PreviewDescription
	}
	return set
}
