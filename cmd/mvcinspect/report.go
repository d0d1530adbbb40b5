package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// reportPerm is the mode of a report written with -out.
const reportPerm os.FileMode = 0o644

// stagedFile is the part of *os.File that writeReport needs.
type stagedFile interface {
	Name() string
	Write(p []byte) (int, error)
	Close() error
}

// File system seams used by writeReport; tests replace them.
var (
	stageFile = func(dir, pattern string) (stagedFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile = os.Chmod
	moveFile  = os.Rename
	dropFile  = os.Remove
)

// writeReport stages the report next to path and renames it into place, so a
// reader polling the report never sees half of it. The staged copy is removed
// on any failure.
func writeReport(path string, report []byte) (err error) {
	staged, err := stageFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("stage report: %w", err)
	}
	stagedPath := staged.Name()
	defer func() {
		if err != nil {
			_ = dropFile(stagedPath)
		}
	}()

	_, err = staged.Write(report)
	if closeErr := staged.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("stage report: %w", err)
	}
	if err = chmodFile(stagedPath, reportPerm); err != nil {
		return fmt.Errorf("set report mode: %w", err)
	}
	if err = moveFile(stagedPath, path); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}
