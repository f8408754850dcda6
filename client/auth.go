package client

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ClientAuth is the locally persisted session state.
type ClientAuth struct {
	UserId   string `json:"userId"`
	Token    string `json:"token"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("error getting user home dir: %v", err)
		return ".gastos"
	}
	return filepath.Join(home, ".gastos")
}

func authFilePath(dir string) string {
	return filepath.Join(dir, "auth.json")
}

// LoadAuth reads the persisted session from dir, returning nil if no
// session is stored.
func LoadAuth(dir string) (*ClientAuth, error) {
	bytes, err := os.ReadFile(authFilePath(dir))

	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading auth.json: %v", err)
	}

	var auth ClientAuth
	err = json.Unmarshal(bytes, &auth)

	if err != nil {
		return nil, fmt.Errorf("error unmarshalling auth.json: %v", err)
	}

	return &auth, nil
}

// StoreAuth persists the session to dir, creating the directory if needed.
func StoreAuth(dir string, auth *ClientAuth) error {
	err := os.MkdirAll(dir, os.ModePerm)

	if err != nil {
		return fmt.Errorf("error creating config dir: %v", err)
	}

	bytes, err := json.Marshal(auth)

	if err != nil {
		return fmt.Errorf("error marshalling auth: %v", err)
	}

	err = os.WriteFile(authFilePath(dir), bytes, 0600)

	if err != nil {
		return fmt.Errorf("error writing auth.json: %v", err)
	}

	return nil
}

// ClearAuth removes the persisted session from dir.
func ClearAuth(dir string) error {
	err := os.Remove(authFilePath(dir))

	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing auth.json: %v", err)
	}

	return nil
}
