package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"gastos/db"
	"gastos/email"
	"gastos/shared"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateAccountHandler")

	// read the request body
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateAccountRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(req.Email)

	if req.UserName == "" || req.Phone == "" || req.Email == "" || req.Password == "" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "All fields are required",
		})
		return
	}

	if !shared.IsValidEmail(req.Email) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Invalid email",
		})
		return
	}

	if !shared.IsValidPassword(req.Password) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Password does not meet the strength policy",
		})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v\n", err)
		http.Error(w, "Error hashing password: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user := db.User{
		Name:         req.UserName,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}

	var token string

	err = db.WithTx(r.Context(), "create account", func(tx *sqlx.Tx) error {
		err := db.CreateUser(&user, tx)

		if err != nil {
			return err
		}

		token, _, err = db.CreateAuthToken(user.Id, tx)

		return err
	})

	if err != nil {
		if db.IsNonUniqueErr(err) {
			log.Printf("User already exists for email: %v\n", req.Email)
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeEmailAlreadyInUse,
				Status: http.StatusConflict,
				Msg:    "Email already in use",
			})
			return
		}

		log.Printf("Error creating user: %v\n", err)
		http.Error(w, "Error creating user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := shared.SessionResponse{
		UserId:   user.Id,
		Token:    token,
		Email:    user.Email,
		UserName: user.Name,
	}

	bytes, err := json.Marshal(resp)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created account")

	w.Write(bytes)
}

func SignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignInHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.SignInRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(req.Email)

	user, err := db.GetUserByEmail(req.Email)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// a missing user and a wrong password produce the same error code so the
	// response doesn't reveal which emails have accounts
	if user == nil {
		writeInvalidCredential(w)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		writeInvalidCredential(w)
		return
	}

	var token string

	err = db.WithTx(r.Context(), "sign in", func(tx *sqlx.Tx) error {
		token, _, err = db.CreateAuthToken(user.Id, tx)
		return err
	})

	if err != nil {
		log.Printf("Error creating auth token: %v\n", err)
		http.Error(w, "Error creating auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := shared.SessionResponse{
		UserId:   user.Id,
		Token:    token,
		Email:    user.Email,
		UserName: user.Name,
	}

	bytes, err := json.Marshal(resp)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully signed in")

	w.Write(bytes)
}

func SignOutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignOutHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	err := db.DeleteAuthToken(auth.AuthToken.TokenHash)

	if err != nil {
		log.Printf("Error deleting auth token: %v\n", err)
		http.Error(w, "Error deleting auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully signed out")
}

func CreatePasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePasswordResetHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreatePasswordResetRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(req.Email)

	// create pin - 6 alphanumeric characters
	pinBytes, err := shared.GetRandomAlphanumeric(6)
	if err != nil {
		log.Printf("Error generating random pin: %v\n", err)
		http.Error(w, "Error generating random pin: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// get sha256 hash of pin
	hashBytes := sha256.Sum256(pinBytes)
	pinHash := hex.EncodeToString(hashBytes[:])

	err = db.CreatePasswordReset(req.Email, pinHash)

	if err != nil {
		log.Printf("Error creating password reset: %v\n", err)
		http.Error(w, "Error creating password reset: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = email.SendPasswordResetEmail(req.Email, string(pinBytes))

	if err != nil {
		log.Printf("Error sending password reset email: %v\n", err)
		http.Error(w, "Error sending password reset email: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created password reset")
}

func ConfirmPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ConfirmPasswordResetHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.ConfirmPasswordResetRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(req.Email)

	if !shared.IsValidPassword(req.NewPassword) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Password does not meet the strength policy",
		})
		return
	}

	resetId, err := db.ValidatePasswordReset(req.Email, req.Pin)

	if err != nil {
		log.Printf("Error validating password reset: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidCredential,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid or expired pin",
		})
		return
	}

	user, err := db.GetUserByEmail(req.Email)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if user == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "No account for email",
		})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v\n", err)
		http.Error(w, "Error hashing password: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = db.WithTx(r.Context(), "confirm password reset", func(tx *sqlx.Tx) error {
		err := db.UpdateUserPassword(user.Id, string(passwordHash), tx)

		if err != nil {
			return err
		}

		return db.MarkPasswordResetUsed(resetId, user.Id, tx)
	})

	if err != nil {
		log.Printf("Error resetting password: %v\n", err)
		http.Error(w, "Error resetting password: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully reset password")
}

func writeInvalidCredential(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeInvalidCredential,
		Status: http.StatusUnauthorized,
		Msg:    "Invalid credentials",
	})
}
