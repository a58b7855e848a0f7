// Package gcp loads the service-account credentials shared by the Drive,
// Sheets and Firestore clients.
package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// ErrMissingCredentials is returned when neither credential variable is set.
var ErrMissingCredentials = errors.New("neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set")

// Credentials returns the service-account JSON from the file named by
// GOOGLE_APPLICATION_CREDENTIALS, or inline from GOOGLE_CREDENTIALS.
func Credentials() ([]byte, error) {
	const op = "Credentials"

	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err := os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
		return creds, nil
	}
	if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		return []byte(credsJSON), nil
	}
	return nil, fmt.Errorf("%s: %w", op, ErrMissingCredentials)
}

// HTTPClient returns an OAuth2 client authorised for the given scopes.
func HTTPClient(ctx context.Context, scopes ...string) (*http.Client, error) {
	const op = "HTTPClient"

	creds, err := Credentials()
	if err != nil {
		return nil, err
	}

	config, err := google.JWTConfigFromJSON(creds, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}
	return config.Client(ctx), nil
}

// ClientOption returns credentials for clients built on option.ClientOption.
func ClientOption() (option.ClientOption, error) {
	creds, err := Credentials()
	if err != nil {
		return nil, err
	}
	return option.WithCredentialsJSON(creds), nil
}
