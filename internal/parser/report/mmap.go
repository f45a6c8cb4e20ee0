package report

import (
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/coverage-analysis/pkg/errors"
)

// MappedFile is a read-only memory-mapped view of a report file. The
// mapping must stay open until every goroutine holding slices of Data
// has finished; the coordinator closes it only after the join.
type MappedFile struct {
	file *os.File
	mm   mmap.MMap
	size int64
}

// OpenMapped maps path read-only. A zero-length file is valid and
// yields an empty view.
func OpenMapped(path string) (*MappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.Wrap(errors.CodeFileAccess, path, err)
		}
		return nil, errors.Wrap(errors.CodeFileAccess, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(errors.CodeFileAccess, path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.Wrap(errors.CodeInvalidInput, path+" is a directory", nil)
	}

	mf := &MappedFile{file: f, size: info.Size()}
	if mf.size == 0 {
		return mf, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(errors.CodeFileAccess, "mmap "+path, err)
	}
	mf.mm = mm
	return mf, nil
}

// Data returns the mapped bytes. Nil for a zero-length file.
func (m *MappedFile) Data() []byte {
	return m.mm
}

// Size returns the file size in bytes.
func (m *MappedFile) Size() int64 {
	return m.size
}

// Close unmaps the view and closes the file. Safe to call once.
func (m *MappedFile) Close() error {
	var first error
	if m.mm != nil {
		if err := m.mm.Unmap(); err != nil {
			first = err
		}
		m.mm = nil
	}
	if m.file != nil {
		if err := m.file.Close(); err != nil && first == nil {
			first = err
		}
		m.file = nil
	}
	return first
}
