package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"gastos/db"
	"gastos/live"
	"gastos/shared"

	"github.com/gorilla/mux"
)

func expensesPath(userId string) string {
	return "users/" + userId + "/expenses"
}

// parseExpenseDate accepts the YYYY-MM-DD form the app's date inputs use and
// truncates to day granularity.
func parseExpenseDate(s string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// validateExpense re-checks the client-side rules server-side: all fields
// present, a positive value, a parseable date.
func validateExpense(description string, value float64, dateStr string) (time.Time, *shared.ApiError) {
	if description == "" || dateStr == "" {
		return time.Time{}, &shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "All fields are required",
		}
	}

	if value <= 0 {
		return time.Time{}, &shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Value must be greater than zero",
		}
	}

	date, ok := parseExpenseDate(dateStr)
	if !ok {
		return time.Time{}, &shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Invalid date format, expected YYYY-MM-DD",
		}
	}

	return date, nil
}

func CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateExpenseHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateExpenseRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	date, validationErr := validateExpense(req.Description, req.Value, req.Date)
	if validationErr != nil {
		writeApiError(w, *validationErr)
		return
	}

	expense := db.Expense{
		UserId:      auth.User.Id,
		Description: req.Description,
		Value:       req.Value,
		Date:        date,
	}

	err = db.CreateExpense(&expense)

	if err != nil {
		log.Printf("Error creating expense: %v\n", err)
		http.Error(w, "Error creating expense: "+err.Error(), http.StatusInternalServerError)
		return
	}

	live.Publish(expensesPath(auth.User.Id))

	bytes, err := json.Marshal(expense.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created expense")

	w.Write(bytes)
}

func ListExpensesHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListExpensesHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	apiExpenses, err := fetchApiExpenses(auth.User.Id)

	if err != nil {
		log.Printf("Error listing expenses: %v\n", err)
		http.Error(w, "Error listing expenses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	bytes, err := json.Marshal(apiExpenses)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(bytes)
}

func GetExpenseHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetExpenseHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	expenseId := vars["expenseId"]

	expense, err := db.GetExpense(auth.User.Id, expenseId)

	if err != nil {
		log.Printf("Error getting expense: %v\n", err)
		http.Error(w, "Error getting expense: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if expense == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Expense not found",
		})
		return
	}

	bytes, err := json.Marshal(expense.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(bytes)
}

func UpdateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateExpenseHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	expenseId := vars["expenseId"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.UpdateExpenseRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	date, validationErr := validateExpense(req.Description, req.Value, req.Date)
	if validationErr != nil {
		writeApiError(w, *validationErr)
		return
	}

	updated, err := db.UpdateExpense(auth.User.Id, expenseId, req.Description, req.Value, date)

	if err != nil {
		log.Printf("Error updating expense: %v\n", err)
		http.Error(w, "Error updating expense: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !updated {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Expense not found",
		})
		return
	}

	live.Publish(expensesPath(auth.User.Id))

	expense, err := db.GetExpense(auth.User.Id, expenseId)

	if err != nil || expense == nil {
		log.Printf("Error getting updated expense: %v\n", err)
		http.Error(w, "Error getting updated expense", http.StatusInternalServerError)
		return
	}

	bytes, err := json.Marshal(expense.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully updated expense")

	w.Write(bytes)
}

func DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteExpenseHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	expenseId := vars["expenseId"]

	deleted, err := db.DeleteExpense(auth.User.Id, expenseId)

	if err != nil {
		log.Printf("Error deleting expense: %v\n", err)
		http.Error(w, "Error deleting expense: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !deleted {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Expense not found",
		})
		return
	}

	live.Publish(expensesPath(auth.User.Id))

	log.Println("Successfully deleted expense")
}

func ExpensesStreamHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ExpensesStreamHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	userId := auth.User.Id

	startCollectionStream(w, r, expensesPath(userId), func() (json.RawMessage, error) {
		apiExpenses, err := fetchApiExpenses(userId)
		if err != nil {
			return nil, err
		}
		return json.Marshal(apiExpenses)
	})
}

func fetchApiExpenses(userId string) ([]*shared.Expense, error) {
	expenses, err := db.ListExpenses(userId)
	if err != nil {
		return nil, err
	}

	apiExpenses := make([]*shared.Expense, 0, len(expenses))
	for _, expense := range expenses {
		apiExpenses = append(apiExpenses, expense.ToApi())
	}
	return apiExpenses, nil
}
