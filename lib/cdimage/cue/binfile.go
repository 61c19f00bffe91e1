package cue

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sargunv/cdimage/lib/cdimage"
)

// binFile is one opened CUE FILE ... BINARY companion.
type binFile struct {
	path        string
	f           *os.File
	sectors     int
	accumulated int
	cursor      int64 // last known absolute byte offset of f; -1 if unknown
}

// openBinFile resolves name against the CUE sheet's directory, trying the
// name verbatim (relative to the working directory) first and falling back
// to a path joined with the CUE file's own directory. The first successful
// open wins.
func openBinFile(cueDir, name string, accumulated int) (*binFile, error) {
	var f *os.File
	var err error

	f, err = os.Open(name)
	if err != nil {
		fallback := filepath.Join(cueDir, name)
		f, err = os.Open(fallback)
		if err != nil {
			return nil, fmt.Errorf("%w: binary file %q", cdimage.ErrOpenFailure, name)
		}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %q: %v", cdimage.ErrOpenFailure, name, err)
	}
	if info.Size() <= 0 || info.Size()%cdimage.RawSectorSize != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %q is not a multiple of %d bytes", cdimage.ErrInvalidSize, name, cdimage.RawSectorSize)
	}

	return &binFile{
		path:        name,
		f:           f,
		sectors:     int(info.Size() / cdimage.RawSectorSize),
		accumulated: accumulated,
		cursor:      -1,
	}, nil
}

// readSector reads exactly one raw sector at file-relative sector index idx
// into buf, using the cached cursor to avoid a redundant seek on sequential
// access.
func (b *binFile) readSector(idx int, buf []byte) error {
	want := int64(idx) * cdimage.RawSectorSize
	if b.cursor != want {
		if _, err := b.f.Seek(want, 0); err != nil {
			return fmt.Errorf("%w: seek %q: %v", cdimage.ErrIOFailure, b.path, err)
		}
	}
	n, err := readFull(b.f, buf)
	if err != nil || n != len(buf) {
		b.cursor = -1
		return fmt.Errorf("%w: read %q: %v", cdimage.ErrIOFailure, b.path, err)
	}
	b.cursor = want + int64(n)
	return nil
}

func readFull(f *os.File, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (b *binFile) Close() error {
	return b.f.Close()
}
