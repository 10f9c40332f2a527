// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User statuses.
const (
	StatusActive  = "Active"
	StatusBlocked = "Blocked"
)

// SocialLink is a single external profile link on a user.
type SocialLink struct {
	Platform string `bson:"platform" json:"platform"` // facebook | twitter | linkedin | github | youtube | instagram
	URL      string `bson:"url" json:"url"`
}

// User represents both regular members and admins.
//
// Password is stored bcrypt-hashed and excluded from JSON. Follower and
// following counts are denormalized; the followers collection is the
// source of truth.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName          string             `bson:"full_name" json:"fullName"`
	Username          string             `bson:"username" json:"username"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio               string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Designation       string             `bson:"designation,omitempty" json:"designation,omitempty"`
	Location          string             `bson:"location,omitempty" json:"location,omitempty"`
	Password          string             `bson:"password" json:"-"`
	PasswordChangedAt *time.Time         `bson:"password_changed_at,omitempty" json:"-"`
	ProfilePicture    string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	Gender            string             `bson:"gender" json:"gender"` // male | female | other
	DateOfBirth       *time.Time         `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Role              string             `bson:"role" json:"role"`
	Status            string             `bson:"status" json:"status"`
	SocialLinks       []SocialLink       `bson:"social_links,omitempty" json:"socialLinks,omitempty"`
	IsVerified        bool               `bson:"is_verified" json:"isVerified"`
	IsPremiumUser     bool               `bson:"is_premium_user" json:"isPremiumUser"`
	TotalFollowers    int64              `bson:"total_followers" json:"totalFollowers"`
	TotalFollowing    int64              `bson:"total_following" json:"totalFollowing"`
	IsDeleted         bool               `bson:"is_deleted" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
