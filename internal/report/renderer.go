// =============================================================================
// Relatório de Visitas - Report Renderer
// =============================================================================
//
// This module renders a validated (or in-progress) draft into the paginated
// visit-report PDF: a branded header band, banner section headers,
// label/value field rows with word wrapping, a block per bank relationship,
// the participant list, bordered photo blocks, and a footer with pagination
// on every page.
//
// PAGE-BREAK RULE:
//   Before emitting any element the renderer computes the element's required
//   vertical extent; if cursor.y + extent would cross the printable bottom
//   (page height minus the margin) a new page is started and the cursor
//   resets to the top margin BEFORE drawing. No field, header, or image is
//   ever split across a break.
//
// FAILURE MODE:
//   The document is rendered fully into memory and only then written out.
//   Any failure (undecodable attachment, font error, disk error) surfaces as
//   a single error and no partial artifact is persisted.
//
// =============================================================================

package report

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/coopvisita/relatorio-visitas/internal/draft"
)

// =============================================================================
// PAGE GEOMETRY AND PALETTE
// =============================================================================

const (
	margin     = 20.0 // printable margin, all four sides
	lineHeight = 7.0  // vertical advance of one text line

	bannerWidth   = 180.0 // section banner box width
	bannerHeight  = 12.0  // section banner box height
	bannerAdvance = 15.0  // cursor advance after a section banner

	imageSize  = 60.0 // photos are drawn as fixed squares
	imageGap   = 8.0  // gap below each photo
	imageSpace = 80.0 // page-break threshold for one photo block

	sectionSpace = 20.0 // page-break threshold for banners and field rows
	bankSpace    = 25.0 // page-break threshold for one bank block heading
)

// rgb is one palette entry.
type rgb struct{ r, g, b int }

// Institutional palette.
var (
	colorBand      = rgb{0, 160, 145}  // turquoise header band and borders
	colorHeading   = rgb{0, 54, 65}    // dark green headings and labels
	colorBodyText  = rgb{64, 64, 64}   // body text gray
	colorPaper     = rgb{255, 255, 255}
)

// placeholders for absent values.
const (
	notInformed = "Não informado"
	noServices  = "Nenhum"
	noBanks     = "Nenhum banco informado"

	reportTitle  = "RELATÓRIO DE VISITAS"
	footerLegend = "Relatório de Visitas Sicoob"
	brandMark    = "SICOOB"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer builds one visit-report document. A renderer is single-use and
// owns its cursor exclusively; concurrent renders each get their own.
type Renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string

	// y is the render cursor: the vertical position on the current page.
	y float64

	pageWidth  float64
	pageHeight float64

	// now stamps the "generated at" line and the output filename.
	now time.Time
}

// New creates a renderer stamped with the current time.
func New() *Renderer {
	return NewAt(time.Now())
}

// NewAt creates a renderer stamped with a fixed time, used by tests.
func NewAt(now time.Time) *Renderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	w, h := pdf.GetPageSize()

	return &Renderer{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		pageWidth:  w,
		pageHeight: h,
		now:        now,
	}
}

// Render produces the complete PDF for the draft and returns its bytes.
func (r *Renderer) Render(d draft.Draft) ([]byte, error) {
	r.pdf.SetAutoPageBreak(false, 0)
	r.pdf.AliasNbPages("")
	r.pdf.SetFooterFunc(r.footer)
	r.pdf.AddPage()

	r.emitHeader()
	r.emitMemberSection(d)
	r.emitBankSection(d)
	r.emitVisitSection(d)
	if err := r.emitPhotoSections(d); err != nil {
		return nil, err
	}
	if d.Notes != "" {
		r.y += 5
		r.emitField("Observações", d.Notes)
	}

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount returns the number of pages produced so far.
func (r *Renderer) PageCount() int {
	return r.pdf.PageCount()
}

// RenderToFile renders the draft and writes the artifact into dir under the
// derived filename. Nothing is written when rendering fails.
func (r *Renderer) RenderToFile(d draft.Draft, dir string) (string, error) {
	data, err := r.Render(d)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(d.EntityName, r.now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// =============================================================================
// CURSOR AND PAGE BREAKS
// =============================================================================

// ensureSpace starts a new page and resets the cursor to the top margin when
// the projected extent would cross the printable bottom. The check happens
// before drawing, so no element straddles a break.
func (r *Renderer) ensureSpace(extent float64) {
	if r.y+extent > r.pageHeight-margin {
		r.pdf.AddPage()
		r.y = margin
	}
}

// =============================================================================
// DOCUMENT HEADER
// =============================================================================

// emitHeader draws the turquoise top band with the report title and brand
// mark, then the generation timestamp.
func (r *Renderer) emitHeader() {
	r.pdf.SetFillColor(colorBand.r, colorBand.g, colorBand.b)
	r.pdf.Rect(0, 0, r.pageWidth, 15, "F")

	r.pdf.SetTextColor(colorPaper.r, colorPaper.g, colorPaper.b)
	r.pdf.SetFont("Helvetica", "B", 16)
	r.pdf.Text(margin, 10, r.tr(reportTitle))

	r.pdf.SetTextColor(colorHeading.r, colorHeading.g, colorHeading.b)
	r.pdf.SetFont("Helvetica", "B", 14)
	r.pdf.Text(r.pageWidth-40, 10, brandMark)

	r.y = 25
	r.bodyFont()
	r.pdf.Text(margin, r.y, r.tr("Gerado em: "+r.now.Format("02/01/2006 15:04:05")))
	r.y += 15
}

// bodyFont resets the font to the 9pt gray body style.
func (r *Renderer) bodyFont() {
	r.pdf.SetTextColor(colorBodyText.r, colorBodyText.g, colorBodyText.b)
	r.pdf.SetFont("Helvetica", "", 9)
}

// =============================================================================
// SECTION BANNERS AND FIELD ROWS
// =============================================================================

// emitSection draws a filled banner box with the section title in bold white
// over the full usable width. A banner always checks for a page break first.
func (r *Renderer) emitSection(title string) {
	r.ensureSpace(sectionSpace)

	r.pdf.SetFillColor(colorHeading.r, colorHeading.g, colorHeading.b)
	r.pdf.Rect(margin-5, r.y-5, bannerWidth, bannerHeight, "F")

	r.pdf.SetTextColor(colorPaper.r, colorPaper.g, colorPaper.b)
	r.pdf.SetFont("Helvetica", "B", 12)
	r.pdf.Text(margin, r.y+2, r.tr(title))
	r.y += bannerAdvance

	r.bodyFont()
}

// emitField draws one label/value row: label in bold, value wrapped to the
// width left after the label. An empty value renders the "Não informado"
// placeholder, never a blank. The cursor advances by one line per wrapped
// line, at least one.
func (r *Renderer) emitField(label, value string) {
	r.ensureSpace(sectionSpace)

	r.pdf.SetTextColor(colorHeading.r, colorHeading.g, colorHeading.b)
	r.pdf.SetFont("Helvetica", "B", 9)
	labelText := r.tr(label + ":")
	r.pdf.Text(margin, r.y, labelText)
	labelWidth := r.pdf.GetStringWidth(labelText) + 3

	r.bodyFont()
	if value == "" {
		value = notInformed
	}

	lines := r.pdf.SplitText(r.tr(value), 170-labelWidth)
	for i, line := range lines {
		r.pdf.Text(margin+labelWidth, r.y+float64(i)*lineHeight, line)
	}

	advance := float64(len(lines)) * lineHeight
	if advance < lineHeight {
		advance = lineHeight
	}
	r.y += advance
}

// emitSubheading draws a bold inline heading (bank numbers, participants).
func (r *Renderer) emitSubheading(text string, extent float64) {
	r.ensureSpace(extent)

	r.pdf.SetTextColor(colorHeading.r, colorHeading.g, colorHeading.b)
	r.pdf.SetFont("Helvetica", "B", 9)
	r.pdf.Text(margin, r.y, r.tr(text))
	r.y += lineHeight

	r.bodyFont()
}

// =============================================================================
// CONTENT SECTIONS
// =============================================================================

// emitMemberSection draws the collaborator identity and the member data.
func (r *Renderer) emitMemberSection(d draft.Draft) {
	r.emitSection("1. Informações do Colaborador")
	r.emitField("Nome", d.Name)
	r.emitField("Cargo", d.Role)
	r.emitField("E-mail", d.Email)

	r.emitSection("2. INFORMAÇÕES DO COOPERADO")
	r.emitField("É Cooperado", d.IsMember)
	r.emitField("CPF/CNPJ", d.TaxID)
	r.emitField("PA", d.ServicePoint)
	r.emitField("Gerente de Relacionamento", d.RelationshipManager)
	r.emitField("Nome/Razão Social", d.EntityName)
	r.emitField("CEP", d.PostalCode)
	r.emitField("Logradouro", d.Street)
	r.emitField("Número", d.Number)
	r.emitField("Complemento", d.Complement)
	r.emitField("Bairro", d.Neighborhood)
	r.emitField("UF", d.State)
	r.emitField("Município", d.City)
	r.emitField("Data Nascimento/Constituição", d.FoundingDate)
	r.emitField("Renda/Faturamento", d.Income)
	r.emitField("Aplicações", d.Investments)
	r.emitField("Capital Social", d.ShareCapital)
	r.emitField("Telefone", d.Phone)
	r.emitField("Site", d.Website)
	r.emitField("Forma de Gestão", d.ManagementForm)
	r.emitField("Patrimônio", d.Assets)
	r.emitField("Tipo de Imóvel", d.PropertyType)
	r.emitField("Alteração de Sócios", d.OwnershipChange)

	if d.OwnershipChange == draft.FlagYes {
		r.emitField("Descrição da Alteração", d.OwnershipChangeDesc)
	}

	r.y += 10
}

// emitBankSection draws one block per bank relationship: a numbered
// sub-heading followed by indented rows for name, liability total, and the
// comma-joined active services.
func (r *Renderer) emitBankSection(d draft.Draft) {
	r.emitSection("3. INFORMAÇÕES BANCÁRIAS")

	if len(d.Banks) == 0 {
		r.emitField("Bancos", noBanks)
		r.y += 10
		return
	}

	for i, bank := range d.Banks {
		r.emitSubheading(fmt.Sprintf("Banco %d:", i+1), bankSpace)

		r.emitField("  Nome do Banco", bank.Bank)
		r.emitField("  Responsabilidade Total", bank.TotalLiability)

		services := noServices
		if active := bank.ActiveServices(); len(active) > 0 {
			services = strings.Join(active, ", ")
		}
		r.emitField("  Serviços", services)
		r.y += 5
	}

	r.y += 10
}

// emitVisitSection draws the visit data and the participant list.
func (r *Renderer) emitVisitSection(d draft.Draft) {
	r.emitSection("4. INFORMAÇÕES DA VISITA")

	r.emitField("Data da Visita", d.VisitDate)
	r.emitField("Objetivo da Visita", d.VisitObjective)
	r.emitField("A visita é no endereço cadastrado", d.VisitAtRegisteredAddress)

	if d.VisitAtRegisteredAddress == draft.FlagNo {
		r.emitField("Endereço da Visita", d.VisitAddress)
	}

	r.emitField("Atividades Exercidas", d.Activities)
	r.emitField("Número de Funcionários", d.EmployeeCount)
	r.emitField("Estado Físico/Visual da Empresa", d.PhysicalCondition)

	if len(d.Participants) > 0 {
		r.emitSubheading("Participantes da Visita:", 15)
		for i, participant := range d.Participants {
			r.emitField(fmt.Sprintf("  %d", i+1), participant)
		}
	}

	r.y += 10
}

// emitPhotoSections draws the four photo sections in order. A section with
// no attachments is skipped entirely: no heading, no cursor advance.
func (r *Renderer) emitPhotoSections(d draft.Draft) error {
	sections := []struct {
		title  string
		photos []draft.Attachment
	}{
		{"4.1. Fotos da Fachada", d.FacadePhotos},
		{"4.2. Fotos do Interior", d.InteriorPhotos},
		{"4.3. Fotos do Estoque", d.StockPhotos},
		{"4.4. Outras Fotos", d.OtherPhotos},
	}

	for _, section := range sections {
		if err := r.emitImageBlock(section.title, section.photos); err != nil {
			return err
		}
	}
	return nil
}

// emitImageBlock draws one titled run of photos, each a fixed-size square
// with a turquoise border, breaking the page ahead of any photo that would
// not fit whole.
func (r *Renderer) emitImageBlock(title string, photos []draft.Attachment) error {
	if len(photos) == 0 {
		return nil
	}

	r.emitSection(title)

	for i, photo := range photos {
		imageType, err := imageType(photo)
		if err != nil {
			return err
		}

		r.ensureSpace(imageSpace)

		name := fmt.Sprintf("%s#%d", title, i)
		r.pdf.RegisterImageOptionsReader(name,
			fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(photo.Data))

		r.pdf.SetDrawColor(colorBand.r, colorBand.g, colorBand.b)
		r.pdf.SetLineWidth(1)
		r.pdf.Rect(margin-1, r.y-1, imageSize+2, imageSize+2, "D")

		r.pdf.ImageOptions(name, margin, r.y, imageSize, imageSize, false,
			fpdf.ImageOptions{ImageType: imageType}, 0, "")

		if err := r.pdf.Error(); err != nil {
			return fmt.Errorf("failed to place attachment %q: %w", photo.Name, err)
		}

		r.y += imageSize + imageGap
	}

	r.y += 10
	return nil
}

// imageType sniffs the attachment content and maps it to the decoder name
// the PDF engine expects.
func imageType(a draft.Attachment) (string, error) {
	switch http.DetectContentType(a.Data) {
	case "image/jpeg":
		return "JPEG", nil
	case "image/png":
		return "PNG", nil
	case "image/gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("attachment %q is not a supported image", a.Name)
	}
}

// =============================================================================
// FOOTER
// =============================================================================

// footer stamps every produced page with a turquoise rule, the page counter,
// and the fixed report legend.
func (r *Renderer) footer() {
	r.pdf.SetDrawColor(colorBand.r, colorBand.g, colorBand.b)
	r.pdf.SetLineWidth(0.5)
	r.pdf.Line(margin, r.pageHeight-15, r.pageWidth-margin, r.pageHeight-15)

	r.pdf.SetTextColor(colorHeading.r, colorHeading.g, colorHeading.b)
	r.pdf.SetFont("Helvetica", "", 8)
	r.pdf.Text(margin, r.pageHeight-8,
		r.tr(fmt.Sprintf("Página %d de {nb}", r.pdf.PageNo())))
	r.pdf.Text(r.pageWidth-60, r.pageHeight-8, r.tr(footerLegend))
}
