// =============================================================================
// Relatório de Visitas - Form Session
// =============================================================================
//
// This module assembles the interactive form from the configuration: the
// state engine over the configured draft store, the timer-driven autosaver,
// the debounced external lookups, and the participant directory. A front end
// holds one Session for the lifetime of the form.
//
// SESSION LIFECYCLE:
//   1. NewSession wires the collaborators from the configuration
//   2. Start restores the persisted draft and starts the autosaver
//   3. The front end edits fields and schedules lookups as the user types
//   4. Close stops the timers and flushes unsaved edits
//
// =============================================================================

package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/coopvisita/relatorio-visitas/internal/config"
	"github.com/coopvisita/relatorio-visitas/internal/draft"
	"github.com/coopvisita/relatorio-visitas/internal/lookup"
)

// Debounce keys, one per lookup-backed field. Edits to one field never
// cancel the pending lookup of another.
const (
	keyPostalCode = "cep"
	keyTaxID      = "cpfCnpj"
)

// Session is the assembled interactive form.
type Session struct {
	// Engine holds the draft state and applies field edits.
	Engine *draft.Engine

	// Lookups resolves postal codes, municipalities, and CNPJs against the
	// configured service endpoints.
	Lookups *lookup.Client

	autosaver        *draft.Autosaver
	debounce         *lookup.Debouncer
	participantsFile string
	log              *zap.Logger
}

// NewSession wires a Session from the configuration.
func NewSession(cfg *config.Config, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	client := lookup.NewClient(log)
	client.ViaCEPBaseURL = cfg.Lookups.ViaCEPBaseURL
	client.IBGEBaseURL = cfg.Lookups.IBGEBaseURL
	client.ReceitaWSBaseURL = cfg.Lookups.ReceitaWSBaseURL

	store := draft.NewFileStore(cfg.DraftStore.Path, cfg.DraftStore.MaxBytes)
	engine := draft.NewEngine(store, log)

	return &Session{
		Engine:           engine,
		Lookups:          client,
		autosaver:        draft.NewAutosaver(engine, cfg.AutosaveInterval(), log),
		debounce:         lookup.NewDebouncer(cfg.Lookups.Debounce()),
		participantsFile: cfg.ParticipantsFile,
		log:              log,
	}
}

// Start restores the persisted draft, if any, and starts the autosaver. It
// reports whether a draft was restored.
func (s *Session) Start() (bool, error) {
	restored, err := s.Engine.Load()
	if err != nil {
		return false, err
	}
	s.autosaver.Start()
	return restored, nil
}

// Close stops the autosaver and any pending debounced lookups, then flushes
// unsaved edits to the store.
func (s *Session) Close() error {
	s.autosaver.Stop()
	s.debounce.Stop()
	_, err := s.Engine.SaveIfDirty()
	return err
}

// Participants returns the candidate list from the configured participant
// directory file.
func (s *Session) Participants() ([]string, error) {
	return lookup.Participants(s.participantsFile)
}

// =============================================================================
// DEBOUNCED LOOKUPS
// =============================================================================

// SchedulePostalCodeLookup queues a ViaCEP lookup for the edited postal code
// after the quiet period and fills the address fields from the result. A
// lookup failure or miss leaves the address untouched.
func (s *Session) SchedulePostalCodeLookup(ctx context.Context, cep string) {
	s.debounce.Schedule(keyPostalCode, func() {
		addr, found, err := s.Lookups.PostalCode(ctx, cep)
		if err != nil {
			s.log.Warn("Postal code lookup failed", zap.Error(err))
			return
		}
		if !found {
			return
		}
		s.applyAddress(addr)
	})
}

// ScheduleCNPJLookup queues a ReceitaWS lookup for the edited CNPJ after the
// quiet period and pre-fills the registry-backed fields from the result.
func (s *Session) ScheduleCNPJLookup(ctx context.Context, cnpj string) {
	s.debounce.Schedule(keyTaxID, func() {
		company, err := s.Lookups.CNPJ(ctx, cnpj)
		if err != nil {
			s.log.Warn("CNPJ lookup failed", zap.Error(err))
			return
		}
		s.applyCompany(company)
	})
}

// applyAddress writes the lookup result through the engine so the fields are
// masked and the draft is marked dirty like any manual edit.
func (s *Session) applyAddress(addr lookup.Address) {
	fields := []struct {
		field draft.Field
		value string
	}{
		{draft.FieldStreet, addr.Street},
		{draft.FieldComplement, addr.Complement},
		{draft.FieldNeighborhood, addr.Neighborhood},
		{draft.FieldCity, addr.City},
		{draft.FieldState, addr.State},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := s.Engine.UpdateField(f.field, f.value); err != nil {
			s.log.Warn("Failed to apply address field", zap.String("field", string(f.field)), zap.Error(err))
		}
	}
}

func (s *Session) applyCompany(company lookup.Company) {
	fields := []struct {
		field draft.Field
		value string
	}{
		{draft.FieldEntityName, company.Name},
		{draft.FieldFoundingDate, company.Founded},
		{draft.FieldPhone, company.Phone},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := s.Engine.UpdateField(f.field, f.value); err != nil {
			s.log.Warn("Failed to apply company field", zap.String("field", string(f.field)), zap.Error(err))
		}
	}
}
