// ABOUTME: Tests for profile persistence and first-run id generation

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FirstRunGeneratesAndSaves(t *testing.T) {
	dir := t.TempDir()

	p, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, len(p.UserID) > len("user_"), "user id not generated: %q", p.UserID)
	assert.Equal(t, "user_", p.UserID[:5])

	// The generated id is persisted and stable across loads.
	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, again.UserID)
}

func TestLoad_ExistingProfile(t *testing.T) {
	dir := t.TempDir()
	content := `user_id = "user_abc"
name = "Asha"
phone = "+91-99999"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.toml"), []byte(content), 0o644))

	p, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", p.UserID)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, "+91-99999", p.Phone)
}

func TestLoad_MissingUserIDRegenerated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.toml"), []byte(`name = "Asha"`), 0o644))

	p, err := Load(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, p.UserID)
	assert.Equal(t, "Asha", p.Name)

	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, again.UserID)
}

func TestLoad_MalformedProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.toml"), []byte(`user_id = [`), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{UserID: "user_xyz", Name: "Ravi", Phone: "+91-88888"}
	require.NoError(t, p.Save(dir))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
