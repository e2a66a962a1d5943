package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/importer"
	"github.com/alexanderramin/brdtrack/internal/repository"
)

// replaceBackupPrefix names the snapshot taken before a replace import.
const replaceBackupPrefix = "replace_backup"

type importService struct {
	store    repository.ProjectStore
	history  HistoryRecorder
	observer UseCaseObserver
}

func NewImportService(
	store repository.ProjectStore,
	history HistoryRecorder,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		store:    store,
		history:  recorderOrNoop(history),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, r io.Reader, opts ImportOptions) (result *ImportResult, err error) {
	fields := map[string]any{"mode": opts.Mode}
	defer observe(ctx, s.observer, "import-projects", time.Now(), fields, &err)

	mode, err := importer.ParseMode(opts.Mode)
	if err != nil {
		return nil, invalid("Invalid mode", err)
	}
	fields["mode"] = string(mode)

	records, err := importer.Parse(r, opts.Sheet)
	switch {
	case errors.Is(err, importer.ErrNoRows):
		return nil, invalid("No rows found in uploaded file", nil)
	case err != nil:
		return nil, invalid("Failed to read Excel", err)
	}
	fields["rows"] = len(records)

	result = &ImportResult{Mode: mode, Imported: len(records)}
	action := domain.ActionImportAppend
	if mode == domain.ImportReplace {
		action = domain.ActionImportReplace
		res, err := s.store.Replace(ctx, records, replaceBackupPrefix)
		if err != nil {
			return nil, fmt.Errorf("writing replacement dataset: %w", err)
		}
		result.Backup = res.Backup
		fields["backup"] = res.Backup
	} else {
		err = s.store.Update(ctx, func(existing []*domain.Project) ([]*domain.Project, error) {
			return append(existing, records...), nil
		})
		if err != nil {
			return nil, fmt.Errorf("appending imported rows: %w", err)
		}
	}

	entries := make([]*domain.HistoryEntry, len(records))
	for i, p := range records {
		e := entryFor(p, action)
		e.ToStatus = p.Status
		if result.Backup != "" {
			e.Detail = "backup " + result.Backup
		}
		entries[i] = e
	}
	s.history.Record(ctx, entries...)
	return result, nil
}
