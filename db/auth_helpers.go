package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const tokenExpirationDays = 90

func CreateAuthToken(userId string, tx *sqlx.Tx) (token, id string, err error) {
	uid := uuid.New()
	bytes := uid[:]
	hashBytes := sha256.Sum256(bytes)
	hash := hex.EncodeToString(hashBytes[:])

	err = tx.QueryRow("INSERT INTO auth_tokens (user_id, token_hash) VALUES ($1, $2) RETURNING id", userId, hash).Scan(&id)

	if err != nil {
		return "", "", fmt.Errorf("error creating auth token: %v", err)
	}

	return uid.String(), id, nil
}

func ValidateAuthToken(token string) (*AuthToken, error) {
	uid, err := uuid.Parse(token)

	if err != nil {
		return nil, errors.New("invalid token")
	}

	bytes := uid[:]
	hashBytes := sha256.Sum256(bytes)
	tokenHash := hex.EncodeToString(hashBytes[:])

	var authToken AuthToken
	err = Conn.Get(&authToken, "SELECT * FROM auth_tokens WHERE token_hash = $1 AND created_at > $2 AND deleted_at IS NULL", tokenHash, time.Now().AddDate(0, 0, -tokenExpirationDays))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("invalid token")
		}

		return nil, fmt.Errorf("error validating token: %v", err)
	}

	return &authToken, nil
}

func DeleteAuthToken(tokenHash string) error {
	_, err := Conn.Exec("UPDATE auth_tokens SET deleted_at = NOW() WHERE token_hash = $1", tokenHash)

	if err != nil {
		return fmt.Errorf("error deleting auth token: %v", err)
	}

	return nil
}

// password reset pins expire in 5 minutes
const passwordResetExpirationMinutes = 5

func CreatePasswordReset(email, pinHash string) error {
	_, err := Conn.Exec("INSERT INTO password_resets (email, pin_hash) VALUES ($1, $2)", email, pinHash)

	if err != nil {
		return fmt.Errorf("error creating password reset: %v", err)
	}

	return nil
}

func ValidatePasswordReset(email, pin string) (id string, err error) {
	pinHashBytes := sha256.Sum256([]byte(pin))
	pinHash := hex.EncodeToString(pinHashBytes[:])

	var usedAt *time.Time

	query := `SELECT id, used_at
              FROM password_resets
              WHERE pin_hash = $1
              AND email = $2
              AND created_at > $3`

	err = Conn.QueryRow(query, pinHash, email, time.Now().Add(-passwordResetExpirationMinutes*time.Minute)).Scan(&id, &usedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.New("invalid or expired pin")
		}
		return "", fmt.Errorf("error validating password reset: %v", err)
	}

	if usedAt != nil {
		return "", errors.New("pin already used")
	}

	return id, nil
}

func MarkPasswordResetUsed(id, userId string, tx *sqlx.Tx) error {
	_, err := tx.Exec("UPDATE password_resets SET used_at = NOW(), user_id = $1 WHERE id = $2", userId, id)

	if err != nil {
		return fmt.Errorf("error marking password reset used: %v", err)
	}

	return nil
}
