package db

import (
	"time"

	"gastos/shared"

	"github.com/lib/pq"
)

// The models below should only be used server-side. Models sent to clients
// have a ToApi() method that converts to the corresponding shared model, so
// server-only data (password hashes, token hashes) doesn't leak out.

type User struct {
	Id              string    `db:"id"`
	Name            string    `db:"name"`
	Phone           string    `db:"phone"`
	Email           string    `db:"email"`
	PasswordHash    string    `db:"password_hash"`
	ProfileImageUrl *string   `db:"profile_image_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:              user.Id,
		Name:            user.Name,
		Phone:           user.Phone,
		Email:           user.Email,
		ProfileImageUrl: user.ProfileImageUrl,
	}
}

type AuthToken struct {
	Id        string     `db:"id"`
	UserId    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type PasswordReset struct {
	Id        string     `db:"id"`
	Email     string     `db:"email"`
	PinHash   string     `db:"pin_hash"`
	UserId    *string    `db:"user_id"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

type Expense struct {
	Id          string    `db:"id"`
	UserId      string    `db:"user_id"`
	Description string    `db:"description"`
	Value       float64   `db:"value"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (expense *Expense) ToApi() *shared.Expense {
	return &shared.Expense{
		Id:          expense.Id,
		Description: expense.Description,
		Value:       expense.Value,
		Date:        expense.Date,
	}
}

type Post struct {
	Id           string         `db:"id"`
	UserId       string         `db:"user_id"`
	UserName     string         `db:"user_name"`
	Description  string         `db:"description"`
	ImageUrl     *string        `db:"image_url"`
	Location     *string        `db:"location"`
	CommentCount int            `db:"comment_count"`
	Likes        pq.StringArray `db:"likes"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (post *Post) ToApi() *shared.Post {
	likes := []string{}
	likes = append(likes, post.Likes...)

	return &shared.Post{
		Id:           post.Id,
		UserId:       post.UserId,
		UserName:     post.UserName,
		Description:  post.Description,
		ImageUrl:     post.ImageUrl,
		Location:     post.Location,
		Likes:        likes,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
	}
}

type Comment struct {
	Id                  string    `db:"id"`
	PostId              string    `db:"post_id"`
	UserId              string    `db:"user_id"`
	UserName            string    `db:"user_name"`
	UserProfileImageUrl *string   `db:"user_profile_image_url"`
	Text                string    `db:"text"`
	CreatedAt           time.Time `db:"created_at"`
}

func (comment *Comment) ToApi() *shared.Comment {
	return &shared.Comment{
		Id:                  comment.Id,
		PostId:              comment.PostId,
		UserId:              comment.UserId,
		UserName:            comment.UserName,
		UserProfileImageUrl: comment.UserProfileImageUrl,
		Text:                comment.Text,
		CreatedAt:           comment.CreatedAt,
	}
}
