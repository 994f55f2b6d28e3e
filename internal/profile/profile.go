// ABOUTME: User profile persisted as TOML in the config directory
// ABOUTME: First run generates a stable random user id and saves it

package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Profile identifies the user to the backend. UserID is generated on
// first run and reused forever after; Name and Phone are optional and
// prefill appointment bookings and ambulance requests.
type Profile struct {
	UserID string `toml:"user_id"`
	Name   string `toml:"name"`
	Phone  string `toml:"phone"`
}

// Load reads the profile from dir/profile.toml. If the file does not
// exist, a new profile with a generated user id is created and saved.
func Load(dir string) (*Profile, error) {
	path := filepath.Join(dir, "profile.toml")

	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parsing profile: %w", err)
		}
		p = Profile{UserID: "user_" + uuid.New().String()}
		if err := p.Save(dir); err != nil {
			return nil, err
		}
		return &p, nil
	}

	// A hand-edited file may drop the id; regenerate rather than send
	// an empty user id to the backend.
	if p.UserID == "" {
		p.UserID = "user_" + uuid.New().String()
		if err := p.Save(dir); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// Save writes the profile to dir/profile.toml.
func (p *Profile) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "profile.toml"))
	if err != nil {
		return fmt.Errorf("creating profile file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}
