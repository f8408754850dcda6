package routes

import (
	"fmt"
	"net/http"

	"gastos/handlers"

	"github.com/gorilla/mux"
)

const ApiVersion = "1.0.0"

func AddRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ApiVersion)
	})

	r.HandleFunc("/accounts", handlers.CreateAccountHandler).Methods("POST")
	r.HandleFunc("/accounts/sign_in", handlers.SignInHandler).Methods("POST")
	r.HandleFunc("/accounts/sign_out", handlers.SignOutHandler).Methods("POST")
	r.HandleFunc("/accounts/password_resets", handlers.CreatePasswordResetHandler).Methods("POST")
	r.HandleFunc("/accounts/password_resets/confirm", handlers.ConfirmPasswordResetHandler).Methods("POST")

	r.HandleFunc("/users/profile", handlers.UpdateProfileHandler).Methods("PUT")
	r.HandleFunc("/users/{userId}", handlers.GetUserHandler).Methods("GET")
	r.HandleFunc("/users/{userId}/posts", handlers.ListUserPostsHandler).Methods("GET")

	r.HandleFunc("/expenses", handlers.CreateExpenseHandler).Methods("POST")
	r.HandleFunc("/expenses", handlers.ListExpensesHandler).Methods("GET")
	r.HandleFunc("/expenses/stream", handlers.ExpensesStreamHandler).Methods("GET")
	r.HandleFunc("/expenses/{expenseId}", handlers.GetExpenseHandler).Methods("GET")
	r.HandleFunc("/expenses/{expenseId}", handlers.UpdateExpenseHandler).Methods("PUT")
	r.HandleFunc("/expenses/{expenseId}", handlers.DeleteExpenseHandler).Methods("DELETE")

	r.HandleFunc("/posts", handlers.CreatePostHandler).Methods("POST")
	r.HandleFunc("/posts", handlers.ListPostsHandler).Methods("GET")
	r.HandleFunc("/posts/stream", handlers.PostsStreamHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}/like", handlers.ToggleLikeHandler).Methods("POST")

	r.HandleFunc("/posts/{postId}/comments", handlers.CreateCommentHandler).Methods("POST")
	r.HandleFunc("/posts/{postId}/comments", handlers.ListCommentsHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}/comments/stream", handlers.CommentsStreamHandler).Methods("GET")
}
