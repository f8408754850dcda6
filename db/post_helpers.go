package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func CreatePost(post *Post) error {
	query := `INSERT INTO posts (user_id, user_name, description, image_url, location) VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at`

	err := Conn.QueryRow(query, post.UserId, post.UserName, post.Description, post.ImageUrl, post.Location).Scan(&post.Id, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("error inserting new post: %v", err)
	}

	return nil
}

// ListPosts returns all posts ordered by creation time descending, with the
// likes set aggregated per post.
func ListPosts() ([]*Post, error) {
	var posts []*Post

	query := `SELECT p.id, p.user_id, p.user_name, p.description, p.image_url, p.location, p.comment_count, p.created_at,
	COALESCE(ARRAY_AGG(pl.user_id) FILTER (WHERE pl.user_id IS NOT NULL), '{}') AS likes
	FROM posts p
	LEFT JOIN post_likes pl ON pl.post_id = p.id
	GROUP BY p.id
	ORDER BY p.created_at DESC`

	err := Conn.Select(&posts, query)

	if err != nil {
		return nil, fmt.Errorf("error fetching posts: %v", err)
	}

	return posts, nil
}

// ListPostsByUser returns one user's posts, newest first, with the likes set
// aggregated per post. Backs the other-user profile view.
func ListPostsByUser(userId string) ([]*Post, error) {
	var posts []*Post

	query := `SELECT p.id, p.user_id, p.user_name, p.description, p.image_url, p.location, p.comment_count, p.created_at,
	COALESCE(ARRAY_AGG(pl.user_id) FILTER (WHERE pl.user_id IS NOT NULL), '{}') AS likes
	FROM posts p
	LEFT JOIN post_likes pl ON pl.post_id = p.id
	WHERE p.user_id = $1
	GROUP BY p.id
	ORDER BY p.created_at DESC`

	err := Conn.Select(&posts, query, userId)

	if err != nil {
		return nil, fmt.Errorf("error fetching posts for user: %v", err)
	}

	return posts, nil
}

func PostExists(postId string) (bool, error) {
	var count int
	err := Conn.Get(&count, "SELECT COUNT(*) FROM posts WHERE id = $1", postId)

	if err != nil {
		return false, fmt.Errorf("error checking post: %v", err)
	}

	return count > 0, nil
}

// ToggleLike adds the user to the post's likes set if absent, removes them if
// present. Two consecutive toggles restore the original state. The toggle and
// the read of the resulting likes set run in one transaction, so the caller
// sees the state its own toggle produced even under concurrent toggles.
func ToggleLike(ctx context.Context, postId, userId string) (liked bool, likes []string, err error) {
	likes = []string{}

	err = WithTx(ctx, "toggle like", func(tx *sqlx.Tx) error {
		res, err := tx.Exec("INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT (post_id, user_id) DO NOTHING", postId, userId)
		if err != nil {
			return fmt.Errorf("error adding like: %v", err)
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error getting rows affected: %v", err)
		}

		if rowsAffected > 0 {
			liked = true
		} else {
			// already in the set -- toggle off
			_, err = tx.Exec("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postId, userId)
			if err != nil {
				return fmt.Errorf("error removing like: %v", err)
			}

			liked = false
		}

		err = tx.Select(&likes, "SELECT user_id FROM post_likes WHERE post_id = $1", postId)
		if err != nil {
			return fmt.Errorf("error fetching post likes: %v", err)
		}

		return nil
	})

	return liked, likes, err
}

// IncrementCommentCount bumps the post's best-effort comment counter with the
// backend's atomic-increment primitive. It runs as a separate statement from
// the comment insert, so the counter can drift from the true comment count if
// this update fails after the insert succeeded.
func IncrementCommentCount(postId string) error {
	_, err := Conn.Exec("UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1", postId)

	if err != nil {
		return fmt.Errorf("error incrementing comment count: %v", err)
	}

	return nil
}
