// =============================================================================
// Relatório de Visitas - Draft Store
// =============================================================================
//
// The Store is the "local draft" collaborator of the form state engine: a
// small key-value-style persistence surface holding at most one draft. The
// persisted payload is a JSON object mirroring the Draft shape with the four
// attachment lists always empty; the engine strips attachments before
// handing the draft over.
//
// The file-backed implementation enforces a size quota, which plays the role
// of the browser storage quota: a draft that has somehow grown past the limit
// is rejected and the save reports failure instead of writing a truncated
// payload.
//
// =============================================================================

package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrQuotaExceeded is returned by Save when the serialized draft is larger
// than the store's quota.
var ErrQuotaExceeded = errors.New("draft exceeds storage quota")

// Store persists and rehydrates a single draft.
type Store interface {
	// Save persists the draft, replacing any previously stored one.
	Save(d Draft) error

	// Load returns the stored draft and whether one was found.
	Load() (Draft, bool, error)

	// Clear removes the stored draft, if any.
	Clear() error
}

// FileStore is a Store backed by one JSON file.
type FileStore struct {
	// Path is the location of the draft file.
	Path string

	// MaxBytes is the storage quota. Zero means no limit.
	MaxBytes int64
}

// NewFileStore creates a file-backed store at path with the given quota.
func NewFileStore(path string, maxBytes int64) *FileStore {
	return &FileStore{Path: path, MaxBytes: maxBytes}
}

// Save writes the draft as indented JSON. The write goes through a temporary
// file and a rename so a crash mid-save never leaves a half-written draft.
func (s *FileStore) Save(d Draft) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}

	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQuotaExceeded, len(data), s.MaxBytes)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create draft directory: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace draft: %w", err)
	}
	return nil
}

// Load reads the draft file. A missing file is not an error; it simply means
// no draft has been saved yet.
func (s *FileStore) Load() (Draft, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Draft{}, false, nil
		}
		return Draft{}, false, fmt.Errorf("failed to read draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, false, fmt.Errorf("failed to parse draft: %w", err)
	}
	return d, true, nil
}

// Clear removes the draft file. Clearing an absent draft is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove draft: %w", err)
	}
	return nil
}

// ReadDraftFile parses a draft JSON file from an arbitrary path. This is the
// entry point the batch pipeline uses to pick up drafts submitted by the
// front end; attachment lists are forced to the engine's invariants.
func ReadDraftFile(path string) (Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to read draft file: %w", err)
	}

	d := New()
	if err := json.Unmarshal(data, &d); err != nil {
		return Draft{}, fmt.Errorf("failed to parse draft file %s: %w", filepath.Base(path), err)
	}

	if d.Banks == nil {
		d.Banks = []BankEntry{}
	}
	if d.Participants == nil {
		d.Participants = []string{}
	}
	stripAttachments(&d)
	return d, nil
}
