// ABOUTME: Durable storage for the session record
// ABOUTME: Reads and writes proptrack-auth.json in the config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vitoteks-art/property-rental-platform/internal/client"
)

// FileName is the session file name inside the config directory.
// The name and field layout are stable; older CLI versions must keep
// restoring sessions written by newer ones and vice versa.
const FileName = "proptrack-auth.json"

// Record is the durable portion of the session
type Record struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *client.User `json:"user"`
}

// File persists the session record in a config directory
type File struct {
	configDir string
}

// NewFile creates a session file handle rooted at configDir
func NewFile(configDir string) *File {
	return &File{configDir: configDir}
}

func (f *File) path() string {
	return filepath.Join(f.configDir, FileName)
}

// Load reads the session record from disk.
// A missing or unreadable file yields an empty record so the CLI starts
// logged out rather than failing.
func (f *File) Load() (Record, error) {
	data, err := os.ReadFile(f.path())
	if os.IsNotExist(err) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Invalid JSON, start fresh
		return Record{}, nil
	}
	return rec, nil
}

// Save writes the session record to disk. The file holds bearer tokens,
// so it is created owner-readable only.
func (f *File) Save(rec Record) error {
	if err := os.MkdirAll(f.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(f.path(), data, 0600)
}
