package gcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)
	t.Setenv("GOOGLE_CREDENTIALS", `{"inline":true}`)

	creds, err := Credentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(creds))
}

func TestCredentialsInline(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("GOOGLE_CREDENTIALS", `{"inline":true}`)

	creds, err := Credentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"inline":true}`, string(creds))
}

func TestCredentialsMissing(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("GOOGLE_CREDENTIALS", "")

	_, err := Credentials()
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = ClientOption()
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestCredentialsUnreadableFile(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(t.TempDir(), "missing.json"))

	_, err := Credentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read credentials file")
}
