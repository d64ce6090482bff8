// =============================================================================
// Relatório de Visitas - External Lookups
// =============================================================================
//
// This module wraps the three external directories the form consumes:
//
//   - ViaCEP        : postal code -> street/neighborhood/city/state
//   - IBGE          : state (UF) -> alphabetically sorted municipality list
//   - ReceitaWS     : CNPJ -> registered company data
//
// plus the participant directory, which is an internal list loaded from a
// YAML file.
//
// ERROR HANDLING:
//   Lookup failures never block the form. Every call returns an explicit
//   error (or a found=false indicator for a well-formed miss); the caller
//   leaves the dependent fields unchanged and logs the failure.
//
// =============================================================================

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/coopvisita/relatorio-visitas/internal/mask"
)

// Default service endpoints; overridable through configuration (and pointed
// at test servers by the tests).
const (
	DefaultViaCEPBaseURL    = "https://viacep.com.br"
	DefaultIBGEBaseURL      = "https://servicodados.ibge.gov.br"
	DefaultReceitaWSBaseURL = "https://www.receitaws.com.br"
)

// Address is the postal-code lookup result applied to the draft's four
// address fields.
type Address struct {
	Street       string
	Complement   string
	Neighborhood string
	City         string
	State        string
}

// Client performs external lookups.
type Client struct {
	ViaCEPBaseURL    string
	IBGEBaseURL      string
	ReceitaWSBaseURL string

	HTTP *http.Client
	Log  *zap.Logger
}

// NewClient creates a lookup client with the default endpoints and a
// ten-second request timeout.
func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		ViaCEPBaseURL:    DefaultViaCEPBaseURL,
		IBGEBaseURL:      DefaultIBGEBaseURL,
		ReceitaWSBaseURL: DefaultReceitaWSBaseURL,
		HTTP:             &http.Client{Timeout: 10 * time.Second},
		Log:              log,
	}
}

// =============================================================================
// POSTAL CODE (ViaCEP)
// =============================================================================

// viaCEPResponse mirrors the ViaCEP JSON payload. A miss is signaled by the
// "erro" flag on a 200 response, not by the status code.
type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"`
}

// PostalCode resolves an 8-digit postal code to an address. It returns
// found=false for a code ViaCEP does not know, and an error for malformed
// input or an unreachable service.
func (c *Client) PostalCode(ctx context.Context, cep string) (Address, bool, error) {
	digits := mask.Digits(cep)
	if len(digits) != 8 {
		return Address{}, false, fmt.Errorf("postal code must have 8 digits, got %q", cep)
	}

	var payload viaCEPResponse
	url := fmt.Sprintf("%s/ws/%s/json/", c.ViaCEPBaseURL, digits)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return Address{}, false, fmt.Errorf("postal code lookup failed: %w", err)
	}

	if payload.Erro {
		return Address{}, false, nil
	}

	return Address{
		Street:       payload.Street,
		Complement:   payload.Complement,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		State:        payload.State,
	}, true, nil
}

// =============================================================================
// MUNICIPALITIES (IBGE)
// =============================================================================

// Municipalities returns the municipality names of a two-letter state code,
// sorted alphabetically.
func (c *Client) Municipalities(ctx context.Context, uf string) ([]string, error) {
	if len(uf) != 2 {
		return nil, fmt.Errorf("state code must have 2 letters, got %q", uf)
	}

	var payload []struct {
		Name string `json:"nome"`
	}
	url := fmt.Sprintf("%s/api/v1/localidades/estados/%s/municipios", c.IBGEBaseURL, uf)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("municipality lookup failed: %w", err)
	}

	names := make([]string, 0, len(payload))
	for _, m := range payload {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names, nil
}

// =============================================================================
// COMPANY REGISTRY (ReceitaWS)
// =============================================================================

// Company is the subset of the registry payload the form pre-fills from.
type Company struct {
	Name      string `json:"nome"`
	Founded   string `json:"abertura"`
	Phone     string `json:"telefone"`
	Activity  string `json:"atividade_principal_texto"`
	Situation string `json:"situacao"`
}

// CNPJ resolves a 14-digit CNPJ to its registered company data.
func (c *Client) CNPJ(ctx context.Context, cnpj string) (Company, error) {
	digits := mask.Digits(cnpj)
	if len(digits) != 14 {
		return Company{}, fmt.Errorf("CNPJ must have 14 digits, got %q", cnpj)
	}

	var payload Company
	url := fmt.Sprintf("%s/v1/cnpj/%s", c.ReceitaWSBaseURL, digits)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return Company{}, fmt.Errorf("CNPJ lookup failed: %w", err)
	}
	return payload, nil
}

// =============================================================================
// PARTICIPANT DIRECTORY
// =============================================================================

// Participants loads the full participant candidate list from a YAML file:
//
//   participantes:
//     - Nome Um
//     - Nome Dois
//
// A missing file yields an empty list, not an error; the selector simply
// offers no candidates.
func Participants(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read participant directory: %w", err)
	}

	var payload struct {
		Participants []string `yaml:"participantes"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse participant directory: %w", err)
	}
	if payload.Participants == nil {
		payload.Participants = []string{}
	}
	return payload.Participants, nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// getJSON performs one GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
