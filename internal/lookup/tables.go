// =============================================================================
// Relatório de Visitas - Reference Tables
// =============================================================================
//
// Static selector data for the form: Brazilian states, the bank list, the
// management forms, the property types, the visit objectives, and the
// physical-condition states. These back the selectors directly; they are
// not fetched.
//
// =============================================================================

package lookup

// State is one Brazilian federative unit.
type State struct {
	Code string
	Name string
}

// Bank is one entry of the bank selector.
type Bank struct {
	Code string
	Name string
}

// States lists the federative units in alphabetical order.
var States = []State{
	{"AC", "Acre"},
	{"AL", "Alagoas"},
	{"AP", "Amapá"},
	{"AM", "Amazonas"},
	{"BA", "Bahia"},
	{"CE", "Ceará"},
	{"DF", "Distrito Federal"},
	{"ES", "Espírito Santo"},
	{"GO", "Goiás"},
	{"MA", "Maranhão"},
	{"MT", "Mato Grosso"},
	{"MS", "Mato Grosso do Sul"},
	{"MG", "Minas Gerais"},
	{"PA", "Pará"},
	{"PB", "Paraíba"},
	{"PR", "Paraná"},
	{"PE", "Pernambuco"},
	{"PI", "Piauí"},
	{"RJ", "Rio de Janeiro"},
	{"RN", "Rio Grande do Norte"},
	{"RS", "Rio Grande do Sul"},
	{"RO", "Rondônia"},
	{"RR", "Roraima"},
	{"SC", "Santa Catarina"},
	{"SP", "São Paulo"},
	{"SE", "Sergipe"},
	{"TO", "Tocantins"},
}

// Banks lists the bank selector options by compensation code.
var Banks = []Bank{
	{"001", "Banco do Brasil"},
	{"033", "Banco Santander"},
	{"104", "Caixa Econômica Federal"},
	{"237", "Banco Bradesco"},
	{"341", "Banco Itaú"},
	{"756", "Sicoob"},
	{"748", "Sicredi"},
	{"260", "Nu Pagamentos"},
	{"290", "Pagseguro Internet"},
	{"323", "Mercado Pago"},
	{"077", "Banco Inter"},
	{"212", "Banco Original"},
	{"336", "Banco C6"},
	{"655", "Banco Votorantim"},
	{"041", "Banco do Estado do Rio Grande do Sul"},
	{"070", "Banco de Brasília"},
	{"085", "Cooperativa Central de Crédito Urbano"},
	{"136", "Unicred"},
	{"389", "Banco Mercantil do Brasil"},
	{"422", "Banco Safra"},
}

// ManagementForms lists the management-form selector options.
var ManagementForms = []string{
	"Familiar",
	"LTDA",
	"MEI",
}

// PropertyTypes lists the property-type selector options.
var PropertyTypes = []string{
	"Alugado",
	"Próprio",
}

// VisitObjectives lists the visit-objective selector options.
var VisitObjectives = []string{
	"Acompanhamento de relacionamento",
	"Análise de crédito",
	"Cobrança",
	"Comprovação de Garantia",
	"Capacidade de Pagamento",
	"Prospecção de novos negócios",
	"Renovação de contratos",
	"Visita técnica",
	"Outros",
}

// PhysicalConditions lists the physical/visual condition selector options.
var PhysicalConditions = []string{
	"Excelente",
	"Bom",
	"Regular",
	"Ruim",
}

// ValidState reports whether code is a known two-letter state code.
func ValidState(code string) bool {
	for _, s := range States {
		if s.Code == code {
			return true
		}
	}
	return false
}
