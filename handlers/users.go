package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"gastos/db"
	"gastos/shared"

	"github.com/gorilla/mux"
)

// GetUserHandler is the author-lookup endpoint consulted by the client's
// author cache: it resolves a userId to the denormalized display record.
func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetUserHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	userId := vars["userId"]

	user, err := db.GetUser(userId)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if user == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "User not found",
		})
		return
	}

	bytes, err := json.Marshal(user.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(bytes)
}

// ListUserPostsHandler returns one user's posts for the profile view.
func ListUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListUserPostsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	userId := vars["userId"]

	user, err := db.GetUser(userId)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if user == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "User not found",
		})
		return
	}

	posts, err := db.ListPostsByUser(userId)

	if err != nil {
		log.Printf("Error listing user posts: %v\n", err)
		http.Error(w, "Error listing user posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiPosts := make([]*shared.Post, 0, len(posts))
	for _, post := range posts {
		apiPosts = append(apiPosts, post.ToApi())
	}

	bytes, err := json.Marshal(apiPosts)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(bytes)
}

func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateProfileHandler")

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

	var req shared.UpdateProfileRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if req.Name == "" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Name is required",
		})
		return
	}

	err = db.UpdateUserProfile(auth.User.Id, req.Name, req.Phone, req.ProfileImageUrl)

	if err != nil {
		log.Printf("Error updating profile: %v\n", err)
		http.Error(w, "Error updating profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user, err := db.GetUser(auth.User.Id)

	if err != nil || user == nil {
		log.Printf("Error getting updated user: %v\n", err)
		http.Error(w, "Error getting updated user", http.StatusInternalServerError)
		return
	}

	bytes, err := json.Marshal(user.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully updated profile")

	w.Write(bytes)
}
