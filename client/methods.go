package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gastos/shared"
)

func apiErr(err error) *shared.ApiError {
	return &shared.ApiError{Type: shared.ApiErrorTypeOther, Status: http.StatusInternalServerError, Msg: err.Error()}
}

func invalidInput(msg string) *shared.ApiError {
	return &shared.ApiError{Type: shared.ApiErrorTypeInvalidInput, Status: http.StatusBadRequest, Msg: msg}
}

// CreateAccount registers a new user and stores the returned session on the
// client. Email and password are validated locally before any request is made.
func (c *Client) CreateAccount(req shared.CreateAccountRequest) (*shared.SessionResponse, *shared.ApiError) {
	if req.Email == "" || req.Password == "" || req.UserName == "" || req.Phone == "" {
		return nil, invalidInput("Todos os campos são obrigatórios.")
	}
	if !shared.IsValidEmail(req.Email) {
		return nil, invalidInput("E-mail inválido.")
	}
	if !shared.IsValidPassword(req.Password) {
		return nil, invalidInput("A senha deve ter no mínimo 8 caracteres, com letra maiúscula, minúscula, número e caractere especial.")
	}

	session, apiError := c.postForSession("/accounts", req, c.unauthenticatedClient)
	if apiError != nil {
		return nil, apiError
	}

	c.auth = &ClientAuth{
		UserId:   session.UserId,
		Token:    session.Token,
		Email:    session.Email,
		UserName: session.UserName,
	}

	return session, nil
}

// SignIn authenticates with email and password and stores the returned
// session on the client.
func (c *Client) SignIn(req shared.SignInRequest) (*shared.SessionResponse, *shared.ApiError) {
	if req.Email == "" || req.Password == "" {
		return nil, invalidInput("Informe e-mail e senha.")
	}

	session, apiError := c.postForSession("/accounts/sign_in", req, c.unauthenticatedClient)
	if apiError != nil {
		return nil, apiError
	}

	c.auth = &ClientAuth{
		UserId:   session.UserId,
		Token:    session.Token,
		Email:    session.Email,
		UserName: session.UserName,
	}

	return session, nil
}

func (c *Client) postForSession(endpoint string, req interface{}, httpClient *http.Client) (*shared.SessionResponse, *shared.ApiError) {
	var session shared.SessionResponse
	apiError := c.doJson(httpClient, http.MethodPost, endpoint, req, &session)
	if apiError != nil {
		return nil, apiError
	}
	return &session, nil
}

// SignOut invalidates the session server-side and clears it on the client.
func (c *Client) SignOut() *shared.ApiError {
	apiError := c.doJson(c.authenticatedClient, http.MethodPost, "/accounts/sign_out", nil, nil)
	if apiError != nil {
		return apiError
	}
	c.auth = nil
	return nil
}

func (c *Client) CreatePasswordReset(email string) *shared.ApiError {
	if !shared.IsValidEmail(email) {
		return invalidInput("E-mail inválido.")
	}
	return c.doJson(c.unauthenticatedClient, http.MethodPost, "/accounts/password_resets", shared.CreatePasswordResetRequest{Email: email}, nil)
}

func (c *Client) ConfirmPasswordReset(req shared.ConfirmPasswordResetRequest) *shared.ApiError {
	if !shared.IsValidPassword(req.NewPassword) {
		return invalidInput("A senha deve ter no mínimo 8 caracteres, com letra maiúscula, minúscula, número e caractere especial.")
	}
	return c.doJson(c.unauthenticatedClient, http.MethodPost, "/accounts/password_resets/confirm", req, nil)
}

// GetUser fetches a user's public profile. Returns (nil, nil) when the user
// doesn't exist, so callers can distinguish not-found from failure.
func (c *Client) GetUser(userId string) (*shared.User, *shared.ApiError) {
	resp, err := c.authenticatedClient.Get(c.host + "/users/" + userId)
	if err != nil {
		return nil, apiErr(fmt.Errorf("error fetching user: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, handleApiError(resp, errorBody)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apiErr(fmt.Errorf("error reading response body: %v", err))
	}

	var user shared.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, apiErr(fmt.Errorf("error unmarshalling user: %v", err))
	}

	return &user, nil
}

func (c *Client) UpdateProfile(req shared.UpdateProfileRequest) (*shared.User, *shared.ApiError) {
	var user shared.User
	apiError := c.doJson(c.authenticatedClient, http.MethodPut, "/users/profile", req, &user)
	if apiError != nil {
		return nil, apiError
	}
	if c.auth != nil {
		c.auth.UserName = user.Name
	}
	return &user, nil
}

func (c *Client) CreateExpense(req shared.CreateExpenseRequest) (*shared.Expense, *shared.ApiError) {
	var expense shared.Expense
	apiError := c.doJson(c.authenticatedClient, http.MethodPost, "/expenses", req, &expense)
	if apiError != nil {
		return nil, apiError
	}
	return &expense, nil
}

func (c *Client) ListExpenses() ([]*shared.Expense, *shared.ApiError) {
	var expenses []*shared.Expense
	apiError := c.doJson(c.authenticatedClient, http.MethodGet, "/expenses", nil, &expenses)
	if apiError != nil {
		return nil, apiError
	}
	return expenses, nil
}

func (c *Client) GetExpense(expenseId string) (*shared.Expense, *shared.ApiError) {
	var expense shared.Expense
	apiError := c.doJson(c.authenticatedClient, http.MethodGet, "/expenses/"+expenseId, nil, &expense)
	if apiError != nil {
		return nil, apiError
	}
	return &expense, nil
}

func (c *Client) UpdateExpense(expenseId string, req shared.UpdateExpenseRequest) (*shared.Expense, *shared.ApiError) {
	var expense shared.Expense
	apiError := c.doJson(c.authenticatedClient, http.MethodPut, "/expenses/"+expenseId, req, &expense)
	if apiError != nil {
		return nil, apiError
	}
	return &expense, nil
}

func (c *Client) DeleteExpense(expenseId string) *shared.ApiError {
	return c.doJson(c.authenticatedClient, http.MethodDelete, "/expenses/"+expenseId, nil, nil)
}

func (c *Client) CreatePost(req shared.CreatePostRequest) (*shared.Post, *shared.ApiError) {
	var post shared.Post
	apiError := c.doJson(c.authenticatedClient, http.MethodPost, "/posts", req, &post)
	if apiError != nil {
		return nil, apiError
	}
	return &post, nil
}

func (c *Client) ListPosts() ([]*shared.Post, *shared.ApiError) {
	var posts []*shared.Post
	apiError := c.doJson(c.authenticatedClient, http.MethodGet, "/posts", nil, &posts)
	if apiError != nil {
		return nil, apiError
	}
	return posts, nil
}

// ListUserPosts fetches one user's posts, newest first. Backs the other-user
// profile view.
func (c *Client) ListUserPosts(userId string) ([]*shared.Post, *shared.ApiError) {
	var posts []*shared.Post
	apiError := c.doJson(c.authenticatedClient, http.MethodGet, "/users/"+userId+"/posts", nil, &posts)
	if apiError != nil {
		return nil, apiError
	}
	return posts, nil
}

func (c *Client) ToggleLike(postId string) (*shared.ToggleLikeResponse, *shared.ApiError) {
	var res shared.ToggleLikeResponse
	apiError := c.doJson(c.authenticatedClient, http.MethodPost, "/posts/"+postId+"/like", nil, &res)
	if apiError != nil {
		return nil, apiError
	}
	return &res, nil
}

func (c *Client) CreateComment(postId string, req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError) {
	var comment shared.Comment
	apiError := c.doJson(c.authenticatedClient, http.MethodPost, "/posts/"+postId+"/comments", req, &comment)
	if apiError != nil {
		return nil, apiError
	}
	return &comment, nil
}

func (c *Client) ListComments(postId string) ([]*shared.Comment, *shared.ApiError) {
	var comments []*shared.Comment
	apiError := c.doJson(c.authenticatedClient, http.MethodGet, "/posts/"+postId+"/comments", nil, &comments)
	if apiError != nil {
		return nil, apiError
	}
	return comments, nil
}

// doJson sends an optional JSON body and decodes an optional JSON response.
// Every non-2xx status comes back as a structured ApiError.
func (c *Client) doJson(httpClient *http.Client, method, endpoint string, reqBody, resBody interface{}) *shared.ApiError {
	var bodyReader io.Reader
	if reqBody != nil {
		reqBytes, err := json.Marshal(reqBody)
		if err != nil {
			return apiErr(fmt.Errorf("error marshalling request: %v", err))
		}
		bodyReader = bytes.NewBuffer(reqBytes)
	}

	req, err := http.NewRequest(method, c.host+endpoint, bodyReader)
	if err != nil {
		return apiErr(fmt.Errorf("error creating request: %v", err))
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return apiErr(fmt.Errorf("error sending request: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		return handleApiError(resp, errorBody)
	}

	if resBody == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr(fmt.Errorf("error reading response body: %v", err))
	}

	if err := json.Unmarshal(body, resBody); err != nil {
		return apiErr(fmt.Errorf("error unmarshalling response: %v", err))
	}

	return nil
}
