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

const postsPath = "posts"

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreatePostHandler")

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

	var req shared.CreatePostRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidInput,
			Status: http.StatusBadRequest,
			Msg:    "Description is required",
		})
		return
	}

	// userName is a denormalized snapshot of the author's display name at
	// creation time
	post := db.Post{
		UserId:      auth.User.Id,
		UserName:    auth.User.Name,
		Description: req.Description,
		ImageUrl:    req.ImageUrl,
		Location:    req.Location,
	}

	err = db.CreatePost(&post)

	if err != nil {
		log.Printf("Error creating post: %v\n", err)
		http.Error(w, "Error creating post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	live.Publish(postsPath)

	bytes, err := json.Marshal(post.ToApi())

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully created post")

	w.Write(bytes)
}

func ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListPostsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	apiPosts, err := fetchApiPosts()

	if err != nil {
		log.Printf("Error listing posts: %v\n", err)
		http.Error(w, "Error listing posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	bytes, err := json.Marshal(apiPosts)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Write(bytes)
}

func ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ToggleLikeHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

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

	liked, likes, err := db.ToggleLike(r.Context(), postId, auth.User.Id)

	if err != nil {
		log.Printf("Error toggling like: %v\n", err)
		http.Error(w, "Error toggling like: "+err.Error(), http.StatusInternalServerError)
		return
	}

	live.Publish(postsPath)

	resp := shared.ToggleLikeResponse{
		Liked: liked,
		Likes: likes,
	}

	bytes, err := json.Marshal(resp)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully toggled like")

	w.Write(bytes)
}

func PostsStreamHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for PostsStreamHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	startCollectionStream(w, r, postsPath, func() (json.RawMessage, error) {
		apiPosts, err := fetchApiPosts()
		if err != nil {
			return nil, err
		}
		return json.Marshal(apiPosts)
	})
}

func fetchApiPosts() ([]*shared.Post, error) {
	posts, err := db.ListPosts()
	if err != nil {
		return nil, err
	}

	apiPosts := make([]*shared.Post, 0, len(posts))
	for _, post := range posts {
		apiPosts = append(apiPosts, post.ToApi())
	}
	return apiPosts, nil
}
