// =============================================================================
// Relatório de Visitas - Draft Types
// =============================================================================
//
// This package owns the mutable draft of a visit report: the scalar form
// fields, the bank-relationship list, the participant list, and the four
// attachment lists. The JSON tags mirror the field names used by the web
// front end and by the persisted draft, so a draft saved by either side
// rehydrates cleanly on the other.
//
// INVARIANTS:
//   - List-valued fields are never nil, only empty.
//   - Attachments are never persisted; Save strips them and Load forces the
//     four lists back to empty regardless of what the stored payload claims.
//
// =============================================================================

package draft

// Draft is the in-memory, partially filled visit report.
type Draft struct {
	// =========================================================================
	// IDENTITY (pre-filled from the auth context, read-only in the form)
	// =========================================================================

	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"cargo"`

	// =========================================================================
	// COOPERATIVE MEMBER INFORMATION
	// =========================================================================

	IsMember            string `json:"eCooperado"`
	TaxID               string `json:"cpfCnpj"`
	ServicePoint        string `json:"pa"`
	RelationshipManager string `json:"gerenteRelacionamento"`
	EntityName          string `json:"nomeRazaoSocial"`
	PostalCode          string `json:"cep"`
	Street              string `json:"logradouro"`
	Number              string `json:"numero"`
	Complement          string `json:"complemento"`
	Neighborhood        string `json:"bairro"`
	State               string `json:"uf"`
	City                string `json:"municipio"`
	FoundingDate        string `json:"dataNascimentoConstituicao"`
	Income              string `json:"rendaFaturamento"`
	Investments         string `json:"aplicacoes"`
	ShareCapital        string `json:"capitalSocial"`
	Phone               string `json:"telefone"`
	Website             string `json:"site"`
	ManagementForm      string `json:"formaGestao"`
	Assets              string `json:"patrimonio"`
	PropertyType        string `json:"tipoImovel"`
	OwnershipChange     string `json:"alteracaoSocios"`
	OwnershipChangeDesc string `json:"descricaoAlteracaoSocios"`

	// =========================================================================
	// BANKING INFORMATION
	// =========================================================================

	Banks []BankEntry `json:"bancos"`

	// =========================================================================
	// VISIT INFORMATION
	// =========================================================================

	VisitDate                string   `json:"dataVisita"`
	Participants             []string `json:"participantes"`
	VisitObjective           string   `json:"objetivoVisita"`
	VisitAtRegisteredAddress string   `json:"visitaEnderecoRegistrado"`
	VisitAddress             string   `json:"enderecoVisita"`
	Activities               string   `json:"atividadesExercidas"`
	EmployeeCount            string   `json:"numeroFuncionarios"`
	PhysicalCondition        string   `json:"estadoFisicoVisual"`

	// =========================================================================
	// PHOTOS AND ATTACHMENTS
	// =========================================================================

	FacadePhotos   []Attachment `json:"fotosFachada"`
	InteriorPhotos []Attachment `json:"fotosInterior"`
	StockPhotos    []Attachment `json:"fotosEstoque"`
	OtherPhotos    []Attachment `json:"fotosOutros"`
	Notes          string       `json:"observacoes"`
}

// BankEntry is one bank relationship of the member. Entries are addressed by
// a locally generated unique id, not by position, so removing one entry never
// shifts the ids of the others. Duplicate bank names are allowed.
type BankEntry struct {
	ID             string `json:"id"`
	Bank           string `json:"banco"`
	TotalLiability string `json:"responsabilidadeTotal"`
	Pension        bool   `json:"previdencia"`
	Investments    bool   `json:"aplicacoes"`
	Collections    bool   `json:"cobranca"`
	Insurance      bool   `json:"seguros"`
}

// Attachment is one binary photo attachment. Attachments live only in memory;
// they are excluded from the persisted draft for size and security reasons.
type Attachment struct {
	Name string `json:"-"`
	Data []byte `json:"-"`
}

// Profile carries the identity fields supplied by the auth context. The core
// does not authenticate; it only copies these into the three read-only
// identity fields of the draft.
type Profile struct {
	Name  string
	Email string
	Role  string
}

// New returns a draft with all scalar fields empty and every list allocated
// and empty.
func New() Draft {
	return Draft{
		Banks:          []BankEntry{},
		Participants:   []string{},
		FacadePhotos:   []Attachment{},
		InteriorPhotos: []Attachment{},
		StockPhotos:    []Attachment{},
		OtherPhotos:    []Attachment{},
	}
}

// ActiveServices returns the human-readable names of the service flags that
// are set on the entry, in the fixed display order used by the report.
func (b BankEntry) ActiveServices() []string {
	services := []string{}
	if b.Pension {
		services = append(services, "Previdência")
	}
	if b.Investments {
		services = append(services, "Aplicações")
	}
	if b.Collections {
		services = append(services, "Cobrança")
	}
	if b.Insurance {
		services = append(services, "Seguros")
	}
	return services
}
