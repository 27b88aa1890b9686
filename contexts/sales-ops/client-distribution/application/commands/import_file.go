package commands

import (
	"context"
	"io"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type ImportFileCommand struct {
	Filename    string
	ContentType string
	Body        io.Reader
	ExecutiveID int64
}

// ImportFileUseCase extracts names from an uploaded file and feeds them
// through the same pipeline as manual entry.
type ImportFileUseCase struct {
	Extractor ports.NameExtractor
	Import    BulkImportUseCase
	Logger    *slog.Logger
}

func (u ImportFileUseCase) Execute(ctx context.Context, cmd ImportFileCommand) (BulkImportResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if cmd.ExecutiveID <= 0 {
		return BulkImportResult{}, domainerrors.ErrInvalidExecutiveID
	}
	// Resolve the executive before reading the upload.
	if _, err := u.Import.Executives.GetExecutive(ctx, cmd.ExecutiveID); err != nil {
		return BulkImportResult{}, err
	}

	names, err := u.Extractor.Extract(cmd.Filename, cmd.ContentType, cmd.Body)
	if err != nil {
		logger.Warn("import file rejected",
			"event", "import_file_rejected",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"filename", cmd.Filename,
			"content_type", cmd.ContentType,
			"error", err.Error(),
		)
		return BulkImportResult{}, err
	}

	logger.Info("import file parsed",
		"event", "import_file_parsed",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"filename", cmd.Filename,
		"names_count", len(names),
	)
	return u.Import.Execute(ctx, BulkImportCommand{
		Names:       names,
		ExecutiveID: cmd.ExecutiveID,
		Source:      "file",
	})
}
