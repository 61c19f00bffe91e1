package cue

import (
	"fmt"
	"os"
	"strings"

	"github.com/sargunv/cdimage/lib/cdimage"
)

const lsdRecordSize = 15

// lsdPath derives the sibling .lsd path for a .cue path. Matching is
// case-sensitive: only a literal ".cue" suffix is replaced.
func lsdPath(cuePath string) (string, bool) {
	if !strings.HasSuffix(cuePath, ".cue") {
		return "", false
	}
	return strings.TrimSuffix(cuePath, ".cue") + ".lsd", true
}

// loadLSD loads the sibling .lsd side-file for cuePath, if one exists, and
// attaches each record to its target sector in sm. The returned slice is a
// single contiguous arena of raw 15-byte records; sm entries reference it by
// index. A missing .lsd file is not an error.
func loadLSD(cuePath string, sm []sectorMapEntry) ([][lsdRecordSize]byte, error) {
	path, ok := lsdPath(cuePath)
	if !ok {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %q", cdimage.ErrOpenFailure, path)
	}
	if len(data)%lsdRecordSize != 0 {
		return nil, fmt.Errorf("%w: %q is not a multiple of %d bytes", cdimage.ErrInvalidSize, path, lsdRecordSize)
	}

	count := len(data) / lsdRecordSize
	arena := make([][lsdRecordSize]byte, count)
	for i := 0; i < count; i++ {
		copy(arena[i][:], data[i*lsdRecordSize:(i+1)*lsdRecordSize])

		pos := cdimage.Position{Min: arena[i][0], Sec: arena[i][1], Frame: arena[i][2]}
		sector := pos.ToLinear()
		if sector < 0 || sector >= len(sm) {
			return nil, fmt.Errorf("%w: %q record %d targets sector out of range", cdimage.ErrSemantic, path, i)
		}
		sm[sector].lsd = i
	}

	return arena, nil
}
