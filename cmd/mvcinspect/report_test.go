package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// writeReport() seams
// -----------------------------------------------------------------------------

// memFile stands in for a staged report file.
type memFile struct {
	path     string
	written  []byte
	writeErr error
	closeErr error
	closed   bool
}

func (f *memFile) Name() string { return f.path }

func (f *memFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.written = append(f.written, p...)
	return len(p), nil
}

func (f *memFile) Close() error {
	f.closed = true
	return f.closeErr
}

// keepSeams puts the real file system seams back after the test.
func keepSeams(t *testing.T) {
	t.Helper()
	stage, chmod, move, drop := stageFile, chmodFile, moveFile, dropFile
	t.Cleanup(func() {
		stageFile, chmodFile, moveFile, dropFile = stage, chmod, move, drop
	})
}

//
// -----------------------------------------------------------------------------
// writeReport()
// -----------------------------------------------------------------------------

func TestWriteReport_Failures(t *testing.T) {
	// NOT parallel: mutates global seams.

	testCases := []struct {
		name      string
		stageErr  error
		file      memFile
		chmodErr  error
		moveErr   error
		wantErr   string
		wantDrops int
	}{
		{name: "cannot stage", stageErr: errors.New("read-only dir"), wantErr: "stage report: read-only dir"},
		{name: "write fails", file: memFile{writeErr: errors.New("quota")}, wantErr: "stage report: quota", wantDrops: 1},
		{name: "close fails", file: memFile{closeErr: errors.New("flush")}, wantErr: "stage report: flush", wantDrops: 1},
		{name: "chmod fails", chmodErr: errors.New("eperm"), wantErr: "set report mode: eperm", wantDrops: 1},
		{name: "rename fails", moveErr: errors.New("cross-device"), wantErr: "publish report: cross-device", wantDrops: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			keepSeams(t)

			file := tc.file
			var dropped []string
			stageFile = func(dir, _ string) (stagedFile, error) {
				if tc.stageErr != nil {
					return nil, tc.stageErr
				}
				file.path = filepath.Join(dir, ".report.yaml.1")
				return &file, nil
			}
			chmodFile = func(string, os.FileMode) error { return tc.chmodErr }
			moveFile = func(string, string) error { return tc.moveErr }
			dropFile = func(path string) error {
				dropped = append(dropped, path)
				return nil
			}

			err := writeReport(filepath.Join(t.TempDir(), "report.yaml"), []byte("status: ok\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Len(t, dropped, tc.wantDrops)
			if tc.stageErr == nil {
				assert.True(t, file.closed, "staged file is always closed")
				assert.Equal(t, []string{file.path}, dropped)
			}
		})
	}
}

func TestWriteReport_Success(t *testing.T) {
	// NOT parallel: uses the real seams, which other tests replace.
	path := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, writeReport(path, []byte("status: ok\n")))
	require.NoError(t, writeReport(path, []byte("status: info\n")), "replaces an existing report")

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "status: info\n", string(contents))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, reportPerm, info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".report.yaml.*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "staged copy is renamed away")
}
