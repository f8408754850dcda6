// Package client is the app's access layer to the gastos API: typed mutation
// methods, session management, and live collection subscriptions.
package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"gastos/shared"
)

const dialTimeout = 10 * time.Second
const fastReqTimeout = 30 * time.Second

// Client holds the session explicitly rather than reading it from ambient
// global state, so a handler can't race a listener mutating a shared
// principal.
type Client struct {
	host string
	auth *ClientAuth

	unauthenticatedClient *http.Client
	authenticatedClient   *http.Client
	streamingClient       *http.Client
}

func NewClient(host string) *Client {
	c := &Client{host: host}

	netDialer := &net.Dialer{
		Timeout: dialTimeout,
	}

	c.unauthenticatedClient = &http.Client{
		Transport: &http.Transport{
			Dial: netDialer.Dial,
		},
		Timeout: fastReqTimeout,
	}

	c.authenticatedClient = &http.Client{
		Transport: &authenticatedTransport{
			client:              c,
			underlyingTransport: &http.Transport{Dial: netDialer.Dial},
		},
		Timeout: fastReqTimeout,
	}

	c.streamingClient = &http.Client{
		Transport: &authenticatedTransport{
			client:              c,
			underlyingTransport: &http.Transport{Dial: netDialer.Dial},
		},
		// No global timeout set for the streaming client
	}

	return c
}

func (c *Client) Host() string {
	return c.host
}

func (c *Client) Auth() *ClientAuth {
	return c.auth
}

func (c *Client) SetAuth(auth *ClientAuth) {
	c.auth = auth
}

type authenticatedTransport struct {
	client              *Client
	underlyingTransport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and adds the auth header
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.client.setAuthHeader(req); err != nil {
		return nil, err
	}
	return t.underlyingTransport.RoundTrip(req)
}

func (c *Client) setAuthHeader(req *http.Request) error {
	if c.auth == nil {
		return fmt.Errorf("error setting auth header: not signed in")
	}

	authHeader := shared.AuthHeader{
		Token: c.auth.Token,
	}

	bytes, err := json.Marshal(authHeader)

	if err != nil {
		return fmt.Errorf("error marshalling auth header: %v", err)
	}

	// base64 encode
	token := base64.URLEncoding.EncodeToString(bytes)

	req.Header.Set("Authorization", "Bearer "+token)

	return nil
}
