package shared

import "time"

// Client-side models. Field names match the original document fields so that
// stored data round-trips without renaming.

type User struct {
	Id              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	ProfileImageUrl *string `json:"profileImageUrl"`
}

type Expense struct {
	Id          string    `json:"id"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Date        time.Time `json:"date"`
}

type Post struct {
	Id           string    `json:"id"`
	UserId       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Description  string    `json:"description"`
	ImageUrl     *string   `json:"imageUrl"`
	Location     *string   `json:"location"`
	Likes        []string  `json:"likes"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Comment struct {
	Id                  string    `json:"id"`
	PostId              string    `json:"postId"`
	UserId              string    `json:"userId"`
	UserName            string    `json:"userName"`
	UserProfileImageUrl *string   `json:"userProfileImageUrl"`
	Text                string    `json:"text"`
	CreatedAt           time.Time `json:"createdAt"`
}

// AuthorId/ApplyAuthor let the live collection view annotate records with
// denormalized author fields resolved through the author cache. Expenses are
// per-user and carry no author fields, so ApplyAuthor is a no-op there.

func (e *Expense) AuthorId() string       { return "" }
func (e *Expense) ApplyAuthor(AuthorInfo) {}
func (p *Post) AuthorId() string          { return p.UserId }
func (p *Post) ApplyAuthor(info AuthorInfo) {
	p.UserName = info.Name
}
func (c *Comment) AuthorId() string { return c.UserId }
func (c *Comment) ApplyAuthor(info AuthorInfo) {
	c.UserName = info.Name
	c.UserProfileImageUrl = info.ProfileImageUrl
}

// AuthorInfo is the denormalized display record cached per author id.
type AuthorInfo struct {
	Name            string  `json:"name"`
	ProfileImageUrl *string `json:"profileImageUrl"`
}
