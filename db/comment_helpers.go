package db

import "fmt"

func CreateComment(comment *Comment) error {
	query := `INSERT INTO comments (post_id, user_id, user_name, user_profile_image_url, text) VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

	err := Conn.QueryRow(query, comment.PostId, comment.UserId, comment.UserName, comment.UserProfileImageUrl, comment.Text).Scan(&comment.Id, &comment.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting new comment: %v", err)
	}

	return nil
}

// ListComments returns a post's comments in chronological order.
func ListComments(postId string) ([]*Comment, error) {
	var comments []*Comment

	query := `SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at ASC`

	err := Conn.Select(&comments, query, postId)

	if err != nil {
		return nil, fmt.Errorf("error fetching comments: %v", err)
	}

	return comments, nil
}
