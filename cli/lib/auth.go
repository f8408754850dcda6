package lib

import (
	"os"

	"gastos/cli/term"
	"gastos/client"
)

const defaultApiHost = "http://localhost:8099"

// Client is the API client shared by all commands. The session, when one is
// stored, is loaded onto it by MustResolveAuth.
var Client *client.Client

func init() {
	host := os.Getenv("GASTOS_API_HOST")
	if host == "" {
		host = defaultApiHost
	}
	Client = client.NewClient(host)
}

// MustResolveAuth loads the persisted session onto the client, exiting with
// a sign-in hint when none is stored.
func MustResolveAuth() {
	auth, err := client.LoadAuth(client.HomeDir())
	if err != nil {
		term.OutputErrorAndExit("Error loading session: %v", err)
	}

	if auth == nil {
		term.OutputNotSignedInErrorAndExit()
	}

	Client.SetAuth(auth)
}

// StoreSession persists the client's current session.
func StoreSession() {
	auth := Client.Auth()
	if auth == nil {
		return
	}
	if err := client.StoreAuth(client.HomeDir(), auth); err != nil {
		term.OutputErrorAndExit("Error storing session: %v", err)
	}
}

// ClearSession removes the persisted session.
func ClearSession() {
	if err := client.ClearAuth(client.HomeDir()); err != nil {
		term.OutputErrorAndExit("Error clearing session: %v", err)
	}
}
