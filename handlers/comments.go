package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"gastos/db"
	"gastos/live"
	"gastos/shared"

	"github.com/gorilla/mux"
)

func commentsPath(postId string) string {
	return "posts/" + postId + "/comments"
}

func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateCommentHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateCommentRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Comment text is required",
		})
		return
	}

	exists, err := db.PostExists(postId)

	if err != nil {
		log.Printf("Error checking post: %v\n", err)
		http.Error(w, "Error checking post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !exists {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Post not found",
		})
		return
	}

	comment := db.Comment{
		PostId:              postId,
		UserId:              auth.User.Id,
		UserName:            auth.User.Name,
		UserProfileImageUrl: auth.User.ProfileImageUrl,
		Text:                req.Text,
	}

	err = db.CreateComment(&comment)

	if err != nil {
		log.Printf("Error creating comment: %v\n", err)
		http.Error(w, "Error creating comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// best-effort counter bump, deliberately outside any transaction with the
	// insert above -- if it fails the count drifts, which is accepted
	err = db.IncrementCommentCount(postId)

	if err != nil {
		log.Printf("Error incrementing comment count: %v\n", err)
	}

	live.Publish(commentsPath(postId))
	live.Publish(postsPath)

	bytes, err := json.Marshal(comment.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created comment")

	w.Write(bytes)
}

func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListCommentsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	apiComments, err := fetchApiComments(postId)

	if err != nil {
		log.Printf("Error listing comments: %v\n", err)
		http.Error(w, "Error listing comments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	bytes, err := json.Marshal(apiComments)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(bytes)
}

func CommentsStreamHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CommentsStreamHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	startCollectionStream(w, r, commentsPath(postId), func() (json.RawMessage, error) {
		apiComments, err := fetchApiComments(postId)
		if err != nil {
			return nil, err
		}
		return json.Marshal(apiComments)
	})
}

func fetchApiComments(postId string) ([]*shared.Comment, error) {
	comments, err := db.ListComments(postId)
	if err != nil {
		return nil, err
	}

	apiComments := make([]*shared.Comment, 0, len(comments))
	for _, comment := range comments {
		apiComments = append(apiComments, comment.ToApi())
	}
	return apiComments, nil
}
