// =============================================================================
// Relatório de Visitas - Validation Engine
// =============================================================================
//
// This module validates a visit-report draft. It exposes two entry points
// sharing one ordered rule table:
//
//   - ValidateAll: evaluates every rule against the full draft and returns
//     every violation, in rule order, not just the first.
//   - ValidateField: evaluates only the rule for one field, used on
//     blur/change; cross-field conditions read the rest of the draft.
//
// RULE CATEGORIES:
//   1. Required fields (membership flag, tax id, manager, management form,
//      visit date, visit objective, registered-address flag, facade photo).
//   2. Conditional requirements (ownership-change description when the
//      ownership-change flag is "Sim"; visit address when the
//      registered-address flag is "Não").
//   3. Format checks applied only to non-empty values (CEP shape, phone
//      digit count, site URL).
//
// ERROR HANDLING:
//   - Violations are collected as values, never raised; the engine cannot
//     fail for well-typed input.
//   - There is exactly one rule per field, so a caller folding the result
//     into a field -> message map never loses information.
//   - ValidateField on a field without a rule yields no error: most draft
//     fields are legitimately unconstrained.
//
// =============================================================================

package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/coopvisita/relatorio-visitas/internal/draft"
	"github.com/coopvisita/relatorio-visitas/internal/mask"
)

// ValidationError is a single field-level violation.
type ValidationError struct {
	// Field is the identifier of the field that failed validation.
	Field draft.Field

	// Message is the human-readable, user-facing message.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// cepShape is the 8-digit, optionally hyphenated postal-code shape.
var cepShape = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// =============================================================================
// RULE TABLE
// =============================================================================

// rule associates one field with its check. The check returns the violation
// message, or "" when the field is valid.
type rule struct {
	field draft.Field
	check func(d *draft.Draft) string
}

// rules is evaluated in this exact order by ValidateAll.
var rules = []rule{
	{draft.FieldIsMember, func(d *draft.Draft) string {
		if d.IsMember == "" {
			return "Campo obrigatório"
		}
		return ""
	}},
	{draft.FieldTaxID, func(d *draft.Draft) string {
		if d.TaxID == "" {
			return "CPF/CNPJ é obrigatório"
		}
		if !mask.ValidCPFCNPJ(d.TaxID) {
			return "CPF/CNPJ inválido"
		}
		return ""
	}},
	{draft.FieldRelationshipManager, func(d *draft.Draft) string {
		if d.RelationshipManager == "" {
			return "Gerente de Relacionamento é obrigatório"
		}
		return ""
	}},
	{draft.FieldManagementForm, func(d *draft.Draft) string {
		if d.ManagementForm == "" {
			return "Forma de Gestão é obrigatória"
		}
		return ""
	}},
	{draft.FieldOwnershipChangeDesc, func(d *draft.Draft) string {
		if d.OwnershipChange == draft.FlagYes && d.OwnershipChangeDesc == "" {
			return "Descrição da alteração é obrigatória quando há alteração de sócios"
		}
		return ""
	}},
	{draft.FieldVisitDate, func(d *draft.Draft) string {
		if d.VisitDate == "" {
			return "Data da visita é obrigatória"
		}
		return ""
	}},
	{draft.FieldVisitObjective, func(d *draft.Draft) string {
		if d.VisitObjective == "" {
			return "Objetivo da visita é obrigatório"
		}
		return ""
	}},
	{draft.FieldVisitAtRegistered, func(d *draft.Draft) string {
		if d.VisitAtRegisteredAddress == "" {
			return "Campo obrigatório"
		}
		return ""
	}},
	{draft.FieldVisitAddress, func(d *draft.Draft) string {
		if d.VisitAtRegisteredAddress == draft.FlagNo && d.VisitAddress == "" {
			return "Endereço da visita é obrigatório quando a visita não é no endereço cadastrado"
		}
		return ""
	}},
	{draft.FieldFacadePhotos, func(d *draft.Draft) string {
		if len(d.FacadePhotos) == 0 {
			return "Foto da fachada é obrigatória"
		}
		return ""
	}},
	{draft.FieldPostalCode, func(d *draft.Draft) string {
		if d.PostalCode != "" && !cepShape.MatchString(d.PostalCode) {
			return "CEP deve ter formato válido"
		}
		return ""
	}},
	{draft.FieldPhone, func(d *draft.Draft) string {
		if d.Phone != "" && len(mask.Digits(d.Phone)) < 10 {
			return "Telefone deve ter pelo menos 10 dígitos"
		}
		return ""
	}},
	{draft.FieldWebsite, func(d *draft.Draft) string {
		if d.Website != "" && !validURL(d.Website) {
			return "URL do site inválida"
		}
		return ""
	}},
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// ValidateAll evaluates every rule against the draft and returns all
// violations in rule order. An empty result means the draft may be submitted.
func ValidateAll(d draft.Draft) []ValidationError {
	var errs []ValidationError
	for _, r := range rules {
		if msg := r.check(&d); msg != "" {
			errs = append(errs, ValidationError{Field: r.field, Message: msg})
		}
	}
	return errs
}

// ValidateField evaluates only the rule for one field, with value taking the
// place of the draft's current content for that field (the on-change case:
// the candidate value may not have been committed yet). Fields without a
// rule, including unknown fields, produce no error.
func ValidateField(f draft.Field, value string, d draft.Draft) *ValidationError {
	if draft.KnownField(f) {
		// The draft is a by-value copy; committing the candidate value to it
		// does not touch the caller's state.
		_ = d.Set(f, value)
	}

	for _, r := range rules {
		if r.field != f {
			continue
		}
		if msg := r.check(&d); msg != "" {
			return &ValidationError{Field: f, Message: msg}
		}
		return nil
	}
	return nil
}

// ErrorMap folds violations into a field -> message lookup. With one rule
// per field the fold is lossless; if two violations ever shared a field, the
// last one would win.
func ErrorMap(errs []ValidationError) map[draft.Field]string {
	m := make(map[draft.Field]string, len(errs))
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}

// validURL reports whether raw parses as a URL with a hostname, prepending a
// scheme when the input has none. Hostname, not Host: inputs like "://" parse
// with a Host of ":" and no actual name.
func validURL(raw string) bool {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	return err == nil && u.Hostname() != ""
}
