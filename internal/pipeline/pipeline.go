// =============================================================================
// Relatório de Visitas - Processing Pipeline
// =============================================================================
//
// This module orchestrates the processing of a single draft file, from the
// stored JSON to the final PDF report.
//
// PROCESSING PIPELINE:
//   1. Read and parse the draft JSON file
//   2. Attach photos from the sidecar directory
//   3. Validate the draft
//   4. Render the PDF report
//   5. Archive the processed draft
//
// CONCURRENCY:
//   Each draft is processed in its own goroutine. The processor holds no
//   shared mutable state, so any number of drafts can run concurrently.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/coopvisita/relatorio-visitas/internal/config"
	"github.com/coopvisita/relatorio-visitas/internal/draft"
	"github.com/coopvisita/relatorio-visitas/internal/report"
	"github.com/coopvisita/relatorio-visitas/internal/validation"
	"github.com/coopvisita/relatorio-visitas/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single draft.
type Result struct {
	// DraftPath is the path to the draft file that was processed.
	DraftPath string

	// OutputFile is the path to the generated PDF report.
	// This is empty if processing failed or validation blocked rendering.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Violations holds the validation errors found in the draft.
	Violations []validation.ValidationError

	// Draft is the fully loaded draft, including sidecar photos. It is kept
	// on the result so the export command can reuse it without a second read.
	Draft draft.Draft

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// PhotosAttached is the number of photos loaded from the sidecar
	// directory.
	PhotosAttached int

	// Pages is the number of pages in the generated PDF.
	Pages int

	// ProcessingTime is the time taken to process the draft.
	ProcessingTime time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Processor handles the processing of a single draft file.
type Processor struct {
	// draftPath is the path to the draft JSON file.
	draftPath string

	// cfg is the application configuration.
	cfg *config.Config

	// continueOnError renders the report even when validation finds
	// pending fields. When false, violations block rendering.
	continueOnError bool

	// files handles draft archival after a report is written.
	files *utils.FileManager

	log *zap.Logger
}

// photoLists maps sidecar subdirectories to the attachment list each one
// feeds. The subdirectory names match the form section names.
var photoLists = []struct {
	Dir  string
	List draft.AttachmentList
}{
	{"fachada", draft.ListFacadePhotos},
	{"interior", draft.ListInteriorPhotos},
	{"estoque", draft.ListStockPhotos},
	{"outros", draft.ListOtherPhotos},
}

// New creates a Processor for one draft file.
func New(draftPath string, cfg *config.Config, continueOnError bool, log *zap.Logger) *Processor {
	return &Processor{
		draftPath:       draftPath,
		cfg:             cfg,
		continueOnError: continueOnError,
		files:           utils.NewFileManager(cfg.DraftsDir, cfg.OutputDir, cfg.ArchiveDir),
		log:             log.With(zap.String("draft", filepath.Base(draftPath))),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline for the draft and returns its Result.
func (p *Processor) Run() Result {
	startTime := time.Now()
	result := Result{
		DraftPath: p.draftPath,
		Success:   false,
	}

	// =========================================================================
	// STEP 1: READ DRAFT
	// =========================================================================

	p.log.Info("Processing draft")

	d, err := draft.ReadDraftFile(p.draftPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read draft: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: ATTACH SIDECAR PHOTOS
	// =========================================================================
	// Draft files never carry photo bytes. Photos live next to the draft in
	// a <name>_fotos/ directory, one subdirectory per form section.

	attached, err := attachPhotos(&d, SidecarDir(p.draftPath))
	if err != nil {
		result.Error = fmt.Errorf("failed to attach photos: %w", err)
		return result
	}

	result.Stats.PhotosAttached = attached
	result.Draft = d
	p.log.Debug("Attached photos", zap.Int("count", attached))

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	result.Violations = validation.ValidateAll(d)
	if len(result.Violations) > 0 {
		for _, ve := range result.Violations {
			p.log.Warn("Pending field", zap.String("field", string(ve.Field)), zap.String("message", ve.Message))
		}

		if !p.continueOnError {
			result.Error = fmt.Errorf("draft has %d pending field(s)", len(result.Violations))
			return result
		}
	}

	// =========================================================================
	// STEP 4: RENDER REPORT
	// =========================================================================

	renderer := report.New()
	outputPath, err := renderer.RenderToFile(d, p.cfg.OutputDir)
	if err != nil {
		result.Error = fmt.Errorf("failed to render report: %w", err)
		return result
	}

	result.OutputFile = outputPath
	result.Stats.Pages = renderer.PageCount()
	p.log.Info("Wrote report", zap.String("output", outputPath), zap.Int("pages", result.Stats.Pages))

	// =========================================================================
	// STEP 5: ARCHIVE DRAFT
	// =========================================================================

	if err := p.archiveDraft(); err != nil {
		// Archival failure does not undo a written report.
		p.log.Warn("Failed to archive draft", zap.Error(err))
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Load reads a draft file and attaches its sidecar photos, without running
// the rest of the pipeline. The validate and export commands use it.
func Load(draftPath string) (draft.Draft, error) {
	d, err := draft.ReadDraftFile(draftPath)
	if err != nil {
		return draft.Draft{}, fmt.Errorf("failed to read draft: %w", err)
	}
	if _, err := attachPhotos(&d, SidecarDir(draftPath)); err != nil {
		return draft.Draft{}, fmt.Errorf("failed to attach photos: %w", err)
	}
	return d, nil
}

// SidecarDir returns the photo directory paired with a draft file:
// visita.json -> visita_fotos/.
func SidecarDir(draftPath string) string {
	base := strings.TrimSuffix(draftPath, filepath.Ext(draftPath))
	return base + "_fotos"
}

// attachPhotos loads every photo under the sidecar directory into the
// matching attachment list. A missing directory is not an error; the draft
// simply has no photos. Files are attached in name order so reports are
// reproducible.
func attachPhotos(d *draft.Draft, dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	total := 0
	for _, pl := range photoLists {
		subdir := filepath.Join(dir, pl.Dir)
		entries, err := os.ReadDir(subdir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return total, fmt.Errorf("failed to list %s: %w", subdir, err)
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			data, err := os.ReadFile(filepath.Join(subdir, name))
			if err != nil {
				return total, fmt.Errorf("failed to read photo %s: %w", name, err)
			}
			if err := d.Attach(pl.List, draft.Attachment{Name: name, Data: data}); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// archiveDraft moves the processed draft file and its sidecar directory into
// the archive directory. The file manager handles cross-device moves, so an
// archive directory on another filesystem still works.
func (p *Processor) archiveDraft() error {
	if _, err := p.files.ArchiveFile(p.draftPath); err != nil {
		return fmt.Errorf("failed to archive draft file: %w", err)
	}

	sidecar := SidecarDir(p.draftPath)
	if _, err := os.Stat(sidecar); err == nil {
		if _, err := p.files.ArchiveDirectory(sidecar); err != nil {
			return fmt.Errorf("failed to archive photos: %w", err)
		}
	}
	return nil
}
