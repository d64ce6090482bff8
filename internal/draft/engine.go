// =============================================================================
// Relatório de Visitas - Form State Engine
// =============================================================================
//
// The Engine owns one draft and exposes the field-level and list-level
// mutation operations the form is built on, plus draft persistence. The form
// itself is single-threaded, but the autosaver runs on a timer goroutine, so
// every operation takes the engine lock; saves are therefore serialized even
// if a manual save races the autosave tick.
//
// ADDRESSING ERRORS:
//   The web front end silently ignored updates addressed to a missing bank id
//   or participant index. Here those are reported as errors; only removal of
//   an absent bank entry stays a deliberate no-op, matching the remove
//   contract the form relies on (remove twice is fine).
//
// =============================================================================

package draft

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the form state engine: one mutable draft plus its persistence
// collaborator.
type Engine struct {
	mu    sync.Mutex
	draft Draft
	store Store
	dirty bool
	log   *zap.Logger
}

// NewEngine creates an engine holding a fresh, all-empty draft.
func NewEngine(store Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		draft: New(),
		store: store,
		log:   log,
	}
}

// Draft returns a snapshot copy of the current draft. Slices are copied so
// the caller cannot mutate engine state through the snapshot.
func (e *Engine) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneDraft(e.draft)
}

// Dirty reports whether the draft has been touched since the last successful
// save (or load).
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// =============================================================================
// SCALAR FIELD OPERATIONS
// =============================================================================

// UpdateField replaces the value of one scalar field. It performs no
// validation; validation is the caller's concern.
func (e *Engine) UpdateField(f Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.draft.Set(f, value); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// ApplyProfile copies the auth-context identity into the three read-only
// identity fields.
func (e *Engine) ApplyProfile(p Profile) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft.Name = p.Name
	e.draft.Email = p.Email
	e.draft.Role = p.Role
	e.dirty = true
}

// =============================================================================
// BANK LIST OPERATIONS
// =============================================================================

// AddBank appends a new bank entry with a freshly generated id and all
// default fields, and returns it.
func (e *Engine) AddBank() BankEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := BankEntry{ID: uuid.NewString()}
	e.draft.Banks = append(e.draft.Banks, entry)
	e.dirty = true
	return entry
}

// RemoveBank removes the entry with the given id. Removing an id that is not
// present is a no-op.
func (e *Engine) RemoveBank(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.draft.Banks {
		if e.draft.Banks[i].ID == id {
			e.draft.Banks = append(e.draft.Banks[:i], e.draft.Banks[i+1:]...)
			e.dirty = true
			return
		}
	}
}

// UpdateBankField replaces one string sub-field of the bank entry addressed
// by id.
func (e *Engine) UpdateBankField(id string, sub BankField, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.bankByID(id)
	if err != nil {
		return err
	}

	switch sub {
	case BankFieldName:
		entry.Bank = value
	case BankFieldTotalLiability:
		entry.TotalLiability = value
	default:
		return fmt.Errorf("unknown bank field %q", sub)
	}
	e.dirty = true
	return nil
}

// SetBankService sets one boolean service flag of the bank entry addressed
// by id.
func (e *Engine) SetBankService(id string, service BankService, on bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, err := e.bankByID(id)
	if err != nil {
		return err
	}

	switch service {
	case ServicePension:
		entry.Pension = on
	case ServiceInvestments:
		entry.Investments = on
	case ServiceCollections:
		entry.Collections = on
	case ServiceInsurance:
		entry.Insurance = on
	default:
		return fmt.Errorf("unknown bank service %q", service)
	}
	e.dirty = true
	return nil
}

// bankByID returns a pointer to the entry with the given id. Callers must
// hold the engine lock.
func (e *Engine) bankByID(id string) (*BankEntry, error) {
	for i := range e.draft.Banks {
		if e.draft.Banks[i].ID == id {
			return &e.draft.Banks[i], nil
		}
	}
	return nil, fmt.Errorf("bank entry %q not found", id)
}

// =============================================================================
// PARTICIPANT LIST OPERATIONS
// =============================================================================

// AddParticipant appends a participant name. Adding a name already present
// (case-sensitive exact match) is a no-op; the return value reports whether
// the list changed.
func (e *Engine) AddParticipant(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, existing := range e.draft.Participants {
		if existing == name {
			return false
		}
	}
	e.draft.Participants = append(e.draft.Participants, name)
	e.dirty = true
	return true
}

// UpdateParticipant replaces the participant name at the given position.
func (e *Engine) UpdateParticipant(index int, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.draft.Participants) {
		return fmt.Errorf("participant index %d out of range", index)
	}
	e.draft.Participants[index] = name
	e.dirty = true
	return nil
}

// RemoveParticipant removes the participant at the given position.
func (e *Engine) RemoveParticipant(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.draft.Participants) {
		return fmt.Errorf("participant index %d out of range", index)
	}
	e.draft.Participants = append(e.draft.Participants[:index], e.draft.Participants[index+1:]...)
	e.dirty = true
	return nil
}

// =============================================================================
// ATTACHMENT OPERATIONS
// =============================================================================

// AddAttachment appends a photo to one of the four attachment lists.
func (e *Engine) AddAttachment(list AttachmentList, a Attachment) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot, err := e.draft.attachments(list)
	if err != nil {
		return err
	}
	*slot = append(*slot, a)
	e.dirty = true
	return nil
}

// RemoveAttachment removes the photo at the given position of one of the
// four attachment lists.
func (e *Engine) RemoveAttachment(list AttachmentList, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot, err := e.draft.attachments(list)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*slot) {
		return fmt.Errorf("attachment index %d out of range for %s", index, list)
	}
	*slot = append((*slot)[:index], (*slot)[index+1:]...)
	e.dirty = true
	return nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Reset restores every field to its empty default, discarding attachments.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.draft = New()
	e.dirty = false
}

// Save persists the current draft minus attachments. The draft stays dirty
// if the store rejects the payload.
func (e *Engine) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveLocked()
}

// SaveIfDirty persists the draft only when it has unsaved changes. It returns
// whether a save was attempted. This is the autosave entry point.
func (e *Engine) SaveIfDirty() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dirty {
		return false, nil
	}
	return true, e.saveLocked()
}

func (e *Engine) saveLocked() error {
	payload := cloneDraft(e.draft)
	stripAttachments(&payload)

	if err := e.store.Save(payload); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	e.dirty = false
	e.log.Debug("draft saved")
	return nil
}

// Load reads the persisted draft, if any, and merges it into the engine with
// all four attachment lists forced empty. It returns whether a stored draft
// was found.
func (e *Engine) Load() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, found, err := e.store.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load draft: %w", err)
	}
	if !found {
		return false, nil
	}

	stripAttachments(&stored)
	if stored.Banks == nil {
		stored.Banks = []BankEntry{}
	}
	if stored.Participants == nil {
		stored.Participants = []string{}
	}

	e.draft = stored
	e.dirty = false
	e.log.Debug("draft loaded")
	return true, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// cloneDraft deep-copies the slice-valued fields of a draft.
func cloneDraft(d Draft) Draft {
	out := d
	out.Banks = append([]BankEntry{}, d.Banks...)
	out.Participants = append([]string{}, d.Participants...)
	out.FacadePhotos = append([]Attachment{}, d.FacadePhotos...)
	out.InteriorPhotos = append([]Attachment{}, d.InteriorPhotos...)
	out.StockPhotos = append([]Attachment{}, d.StockPhotos...)
	out.OtherPhotos = append([]Attachment{}, d.OtherPhotos...)
	return out
}

// stripAttachments forces the four attachment lists to empty.
func stripAttachments(d *Draft) {
	d.FacadePhotos = []Attachment{}
	d.InteriorPhotos = []Attachment{}
	d.StockPhotos = []Attachment{}
	d.OtherPhotos = []Attachment{}
}
