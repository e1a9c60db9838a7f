// ABOUTME: Remembers the usernames that signed in most recently
// ABOUTME: Stored as JSON in the data directory to prefill login forms

package recent

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// MaxUsers is the maximum number of usernames kept.
const MaxUsers = 5

// FileName is the file under the data directory holding the list.
const FileName = "recent.json"

// Users manages the recently used usernames.
type Users struct {
	dir   string
	names []string
}

type recentData struct {
	Users []string `json:"users"`
}

func New(dir string) *Users {
	return &Users{dir: dir}
}

func (u *Users) path() string {
	return filepath.Join(u.dir, FileName)
}

// Load reads the list from disk. A missing or corrupt file yields an empty list.
func (u *Users) Load() ([]string, error) {
	data, err := os.ReadFile(u.path())
	if errors.Is(err, os.ErrNotExist) {
		u.names = []string{}
		return u.names, nil
	}
	if err != nil {
		return nil, err
	}

	var rd recentData
	if err := json.Unmarshal(data, &rd); err != nil {
		u.names = []string{}
		return u.names, nil
	}

	u.names = make([]string, 0, len(rd.Users))
	for _, name := range rd.Users {
		if name = strings.TrimSpace(name); name != "" {
			u.names = append(u.names, name)
		}
	}
	return u.names, nil
}

// Save writes names to disk, trimmed to MaxUsers.
func (u *Users) Save(names []string) error {
	if err := os.MkdirAll(u.dir, 0o700); err != nil {
		return err
	}
	if len(names) > MaxUsers {
		names = names[:MaxUsers]
	}
	u.names = names

	data, err := json.MarshalIndent(recentData{Users: names}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(u.path(), data, 0o600)
}

// Add moves name to the front of the list.
func (u *Users) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if u.names == nil {
		if _, err := u.Load(); err != nil {
			u.names = []string{}
		}
	}

	names := make([]string, 0, len(u.names)+1)
	names = append(names, name)
	for _, n := range u.names {
		if n != name {
			names = append(names, n)
		}
	}
	return u.Save(names)
}

// List returns the remembered usernames, most recent first.
func (u *Users) List() []string {
	if u.names == nil {
		u.Load()
	}
	return u.names
}

// Last returns the most recent username or "".
func (u *Users) Last() string {
	if names := u.List(); len(names) > 0 {
		return names[0]
	}
	return ""
}
