// =============================================================================
// Relatório de Visitas - Field Identifiers
// =============================================================================
//
// Scalar form fields are addressed by an enumerated Field identifier backed
// by an explicit setter table. The web front end indexed the draft by raw
// field-name strings; the table below replaces that with a closed set the
// compiler and the tests can enumerate, while keeping the same identifiers
// on the wire.
//
// =============================================================================

package draft

import "fmt"

// Field identifies one scalar field of the draft. The string value is the
// wire name used by the persisted draft and the front end.
type Field string

// Scalar field identifiers.
const (
	FieldName                Field = "nome"
	FieldEmail               Field = "email"
	FieldRole                Field = "cargo"
	FieldIsMember            Field = "eCooperado"
	FieldTaxID               Field = "cpfCnpj"
	FieldServicePoint        Field = "pa"
	FieldRelationshipManager Field = "gerenteRelacionamento"
	FieldEntityName          Field = "nomeRazaoSocial"
	FieldPostalCode          Field = "cep"
	FieldStreet              Field = "logradouro"
	FieldNumber              Field = "numero"
	FieldComplement          Field = "complemento"
	FieldNeighborhood        Field = "bairro"
	FieldState               Field = "uf"
	FieldCity                Field = "municipio"
	FieldFoundingDate        Field = "dataNascimentoConstituicao"
	FieldIncome              Field = "rendaFaturamento"
	FieldInvestments         Field = "aplicacoes"
	FieldShareCapital        Field = "capitalSocial"
	FieldPhone               Field = "telefone"
	FieldWebsite             Field = "site"
	FieldManagementForm      Field = "formaGestao"
	FieldAssets              Field = "patrimonio"
	FieldPropertyType        Field = "tipoImovel"
	FieldOwnershipChange     Field = "alteracaoSocios"
	FieldOwnershipChangeDesc Field = "descricaoAlteracaoSocios"
	FieldVisitDate           Field = "dataVisita"
	FieldVisitObjective      Field = "objetivoVisita"
	FieldVisitAtRegistered   Field = "visitaEnderecoRegistrado"
	FieldVisitAddress        Field = "enderecoVisita"
	FieldActivities          Field = "atividadesExercidas"
	FieldEmployeeCount       Field = "numeroFuncionarios"
	FieldPhysicalCondition   Field = "estadoFisicoVisual"
	FieldNotes               Field = "observacoes"
)

// FieldFacadePhotos addresses the facade photo list. It is not a scalar
// field (no setter-table entry); it exists so validation errors for the
// required facade photo can be keyed like any other field.
const FieldFacadePhotos Field = "fotosFachada"

// Flag values used by the conditional rules and the renderer.
const (
	FlagYes = "Sim"
	FlagNo  = "Não"
)

// AttachmentList identifies one of the four photo lists.
type AttachmentList string

// Attachment list identifiers.
const (
	ListFacadePhotos   AttachmentList = "fotosFachada"
	ListInteriorPhotos AttachmentList = "fotosInterior"
	ListStockPhotos    AttachmentList = "fotosEstoque"
	ListOtherPhotos    AttachmentList = "fotosOutros"
)

// BankField identifies one of the string sub-fields of a BankEntry. The four
// boolean service flags are toggled through BankService instead.
type BankField string

// Bank entry sub-field identifiers.
const (
	BankFieldName           BankField = "banco"
	BankFieldTotalLiability BankField = "responsabilidadeTotal"
)

// BankService identifies one of the boolean service flags of a BankEntry.
type BankService string

// Bank service flag identifiers.
const (
	ServicePension     BankService = "previdencia"
	ServiceInvestments BankService = "aplicacoes"
	ServiceCollections BankService = "cobranca"
	ServiceInsurance   BankService = "seguros"
)

// =============================================================================
// SETTER TABLES
// =============================================================================

// fieldSetters maps each scalar field to its setter. The table is the single
// place that knows the field-to-struct-member correspondence.
var fieldSetters = map[Field]func(*Draft, string){
	FieldName:                func(d *Draft, v string) { d.Name = v },
	FieldEmail:               func(d *Draft, v string) { d.Email = v },
	FieldRole:                func(d *Draft, v string) { d.Role = v },
	FieldIsMember:            func(d *Draft, v string) { d.IsMember = v },
	FieldTaxID:               func(d *Draft, v string) { d.TaxID = v },
	FieldServicePoint:        func(d *Draft, v string) { d.ServicePoint = v },
	FieldRelationshipManager: func(d *Draft, v string) { d.RelationshipManager = v },
	FieldEntityName:          func(d *Draft, v string) { d.EntityName = v },
	FieldPostalCode:          func(d *Draft, v string) { d.PostalCode = v },
	FieldStreet:              func(d *Draft, v string) { d.Street = v },
	FieldNumber:              func(d *Draft, v string) { d.Number = v },
	FieldComplement:          func(d *Draft, v string) { d.Complement = v },
	FieldNeighborhood:        func(d *Draft, v string) { d.Neighborhood = v },
	FieldState:               func(d *Draft, v string) { d.State = v },
	FieldCity:                func(d *Draft, v string) { d.City = v },
	FieldFoundingDate:        func(d *Draft, v string) { d.FoundingDate = v },
	FieldIncome:              func(d *Draft, v string) { d.Income = v },
	FieldInvestments:         func(d *Draft, v string) { d.Investments = v },
	FieldShareCapital:        func(d *Draft, v string) { d.ShareCapital = v },
	FieldPhone:               func(d *Draft, v string) { d.Phone = v },
	FieldWebsite:             func(d *Draft, v string) { d.Website = v },
	FieldManagementForm:      func(d *Draft, v string) { d.ManagementForm = v },
	FieldAssets:              func(d *Draft, v string) { d.Assets = v },
	FieldPropertyType:        func(d *Draft, v string) { d.PropertyType = v },
	FieldOwnershipChange:     func(d *Draft, v string) { d.OwnershipChange = v },
	FieldOwnershipChangeDesc: func(d *Draft, v string) { d.OwnershipChangeDesc = v },
	FieldVisitDate:           func(d *Draft, v string) { d.VisitDate = v },
	FieldVisitObjective:      func(d *Draft, v string) { d.VisitObjective = v },
	FieldVisitAtRegistered:   func(d *Draft, v string) { d.VisitAtRegisteredAddress = v },
	FieldVisitAddress:        func(d *Draft, v string) { d.VisitAddress = v },
	FieldActivities:          func(d *Draft, v string) { d.Activities = v },
	FieldEmployeeCount:       func(d *Draft, v string) { d.EmployeeCount = v },
	FieldPhysicalCondition:   func(d *Draft, v string) { d.PhysicalCondition = v },
	FieldNotes:               func(d *Draft, v string) { d.Notes = v },
}

// Set assigns value to the scalar field f. Unknown fields are reported, not
// silently ignored.
func (d *Draft) Set(f Field, value string) error {
	setter, ok := fieldSetters[f]
	if !ok {
		return fmt.Errorf("unknown draft field %q", f)
	}
	setter(d, value)
	return nil
}

// KnownField reports whether f addresses a scalar draft field.
func KnownField(f Field) bool {
	_, ok := fieldSetters[f]
	return ok
}

// Attach appends an attachment to the list it addresses. Unknown lists are
// reported, not silently ignored.
func (d *Draft) Attach(list AttachmentList, a Attachment) error {
	slot, err := d.attachments(list)
	if err != nil {
		return err
	}
	*slot = append(*slot, a)
	return nil
}

// attachments returns a pointer to the slice addressed by list.
func (d *Draft) attachments(list AttachmentList) (*[]Attachment, error) {
	switch list {
	case ListFacadePhotos:
		return &d.FacadePhotos, nil
	case ListInteriorPhotos:
		return &d.InteriorPhotos, nil
	case ListStockPhotos:
		return &d.StockPhotos, nil
	case ListOtherPhotos:
		return &d.OtherPhotos, nil
	default:
		return nil, fmt.Errorf("unknown attachment list %q", list)
	}
}
