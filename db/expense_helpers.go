package db

import (
	"database/sql"
	"fmt"
	"time"
)

func CreateExpense(expense *Expense) error {
	query := `INSERT INTO expenses (user_id, description, value, date) VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at`

	err := Conn.QueryRow(query, expense.UserId, expense.Description, expense.Value, expense.Date).Scan(&expense.Id, &expense.CreatedAt, &expense.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error inserting new expense: %v", err)
	}

	return nil
}

// ListExpenses returns the user's expenses ordered by date descending (most
// recent first).
func ListExpenses(userId string) ([]*Expense, error) {
	var expenses []*Expense

	query := `SELECT * FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC`

	err := Conn.Select(&expenses, query, userId)

	if err != nil {
		return nil, fmt.Errorf("error fetching expenses: %v", err)
	}

	return expenses, nil
}

func GetExpense(userId, expenseId string) (*Expense, error) {
	var expense Expense
	err := Conn.Get(&expense, "SELECT * FROM expenses WHERE id = $1 AND user_id = $2", expenseId, userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting expense: %v", err)
	}

	return &expense, nil
}

// UpdateExpense replaces the full field set. Last writer wins.
func UpdateExpense(userId, expenseId, description string, value float64, date time.Time) (bool, error) {
	res, err := Conn.Exec("UPDATE expenses SET description = $1, value = $2, date = $3 WHERE id = $4 AND user_id = $5", description, value, date, expenseId, userId)

	if err != nil {
		return false, fmt.Errorf("error updating expense: %v", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %v", err)
	}

	return rowsAffected > 0, nil
}

func DeleteExpense(userId, expenseId string) (bool, error) {
	res, err := Conn.Exec("DELETE FROM expenses WHERE id = $1 AND user_id = $2", expenseId, userId)

	if err != nil {
		return false, fmt.Errorf("error deleting expense: %v", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %v", err)
	}

	return rowsAffected > 0, nil
}
