// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post content types.
const (
	ContentTypeHTML     = "html"
	ContentTypeMarkdown = "markdown"
	ContentTypeText     = "text"
)

// Post is an authored article. Slug is unique across all posts. The vote,
// view, and comment counters are denormalized caches; the votes, views,
// and comments collections hold the per-user records they are derived
// from, and every counter change happens in the same transaction as the
// record change.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author        primitive.ObjectID `bson:"author" json:"author"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	ContentType   string             `bson:"content_type" json:"contentType"`
	Content       string             `bson:"content" json:"content"`
	CoverImage    string             `bson:"cover_image" json:"coverImage"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	Tags          []string           `bson:"tags" json:"tags"`
	IsPremium     bool               `bson:"is_premium" json:"isPremium"`
	UpVotes       int64              `bson:"up_votes" json:"upVotes"`
	DownVotes     int64              `bson:"down_votes" json:"downVotes"`
	TotalComments int64              `bson:"total_comments" json:"totalComments"`
	TotalViews    int64              `bson:"total_views" json:"totalViews"`
	IsDeleted     bool               `bson:"is_deleted" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
