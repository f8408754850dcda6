package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func GetUser(userId string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE id = $1", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func GetUserByEmail(email string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE email = $1", email)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func CreateUser(user *User, tx *sqlx.Tx) error {
	err := tx.QueryRow("INSERT INTO users (name, phone, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id", user.Name, user.Phone, user.Email, user.PasswordHash).Scan(&user.Id)

	if err != nil {
		return err
	}

	return nil
}

func UpdateUserProfile(userId, name, phone string, profileImageUrl *string) error {
	_, err := Conn.Exec("UPDATE users SET name = $1, phone = $2, profile_image_url = $3 WHERE id = $4", name, phone, profileImageUrl, userId)

	if err != nil {
		return fmt.Errorf("error updating user profile: %v", err)
	}

	return nil
}

func UpdateUserPassword(userId, passwordHash string, tx *sqlx.Tx) error {
	_, err := tx.Exec("UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, userId)

	if err != nil {
		return fmt.Errorf("error updating user password: %v", err)
	}

	return nil
}
