// Package isofs lets a caller browse the ISO 9660 filesystem stored on a
// disc's data track, without needing a separate raw-sector tool: it
// translates a cdimage.Disc's sector map into a flat, 2048-byte logical
// byte stream and walks that stream's directory tree.
package isofs

import (
	"fmt"
	"io"

	"github.com/sargunv/cdimage/lib/cdimage"
)

const (
	userDataSize   = 2048
	userDataOffset = 16 // sync(12) + header(3) + mode(1) within a MODE1/2352 sector
)

// sectorView presents one data track of a Disc as a flat io.ReaderAt over
// its 2048-byte logical user-data stream, re-synthesizing a raw sector via
// Disc.Read for every access.
type sectorView struct {
	d           cdimage.Disc
	firstSector int
	numSectors  int
}

// NewSectorView locates d's first MODE1/MODE2 track and returns an
// io.ReaderAt over its logical user-data stream, along with its size in
// bytes.
func NewSectorView(d cdimage.Disc) (io.ReaderAt, int64, error) {
	info, err := d.Info()
	if err != nil {
		return nil, 0, fmt.Errorf("cdimage/isofs: %w", err)
	}
	for _, sess := range info.Sessions {
		for _, tr := range sess.Tracks {
			if tr.Type != cdimage.TrackMode1 && tr.Type != cdimage.TrackMode2 {
				continue
			}
			// The user-data stream starts at INDEX 01; any pregap
			// (INDEX 00) sectors before it carry no filesystem data.
			start := tr.PosFirstSector
			for _, idx := range tr.Indexes {
				if idx.ID == 0x01 {
					start = idx.Position
					break
				}
			}
			first := start.ToLinear()
			last := tr.PosLastSector.ToLinear()
			sv := &sectorView{d: d, firstSector: first, numSectors: last - first + 1}
			return sv, int64(sv.numSectors) * userDataSize, nil
		}
	}
	return nil, 0, fmt.Errorf("cdimage/isofs: disc has no data track")
}

func (s *sectorView) ReadAt(p []byte, off int64) (int, error) {
	var buf [cdimage.RawSectorSize]byte
	total := 0
	for total < len(p) {
		cur := off + int64(total)
		sectorIdx := int(cur / userDataSize)
		inSector := int(cur % userDataSize)
		if sectorIdx >= s.numSectors {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}

		pos := cdimage.ToPosition(s.firstSector + sectorIdx)
		if !s.d.Seek(pos.Min, pos.Sec, pos.Frame) {
			return total, fmt.Errorf("cdimage/isofs: seek to sector %d failed", sectorIdx)
		}
		if _, err := s.d.Read(buf[:], false); err != nil {
			return total, fmt.Errorf("cdimage/isofs: %w", err)
		}

		n := copy(p[total:], buf[userDataOffset+inSector:userDataOffset+userDataSize])
		total += n
	}
	return total, nil
}

// Open builds an ISO 9660 directory-tree Reader over disc's data track.
func Open(d cdimage.Disc) (*Reader, error) {
	view, size, err := NewSectorView(d)
	if err != nil {
		return nil, err
	}
	return NewReader(view, size)
}
