// Package iso implements the ISO disc backend: a single MODE1 track stored
// as raw 2048-byte user-data sectors, with the rest of the 2352-byte raw
// sector and the mandatory 2-second pregap synthesized on read.
package iso

import (
	"fmt"
	"os"

	"github.com/sargunv/cdimage/internal/crc16"
	"github.com/sargunv/cdimage/lib/cdimage"
)

const (
	userDataSize = 2048
	igap         = 150 // sectors of mandatory pregap before index 01
)

func init() {
	cdimage.RegisterBackend("ISO", func(path string) (cdimage.Disc, error) {
		return Open(path)
	})
}

type disc struct {
	f       *os.File
	numSecs int // file-relative sector count
	cur     int
	cursor  int64 // cached file offset, -1 if unknown
}

// Open loads a raw ISO image (2048 bytes per sector).
func Open(path string) (cdimage.Disc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", cdimage.ErrOpenFailure, path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %q: %v", cdimage.ErrOpenFailure, path, err)
	}
	if info.Size() <= 0 || info.Size()%userDataSize != 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %q is not a multiple of %d bytes", cdimage.ErrInvalidSize, path, userDataSize)
	}
	return &disc{f: f, numSecs: int(info.Size() / userDataSize), cursor: -1}, nil
}

func (d *disc) Close() error { return d.f.Close() }

func (d *disc) Reset() { d.cur = 0 }

func (d *disc) totalSectors() int { return d.numSecs + igap }

func (d *disc) MoveToSession(session int) bool {
	if session != 1 {
		return false
	}
	d.cur = igap
	return true
}

func (d *disc) MoveToTrack(track int) bool {
	if track != 1 {
		return false
	}
	d.cur = igap
	return true
}

func (d *disc) Seek(mm, ss, ff byte) bool {
	pos := cdimage.Position{Min: mm, Sec: ss, Frame: ff}
	sector := pos.ToLinear()
	if sector < 0 || sector >= d.totalSectors() {
		return false
	}
	d.cur = sector
	return true
}

func (d *disc) Tell() cdimage.Position { return cdimage.ToPosition(d.cur) }

func (d *disc) NumSessions() int { return 1 }

func (d *disc) CurrentSession() int { return 0 }

func (d *disc) CurrentTrack() int {
	if d.cur >= d.totalSectors() {
		return 1
	}
	return 1
}

func (d *disc) CurrentIndex() byte {
	if d.cur >= d.totalSectors() {
		return 0x00
	}
	if d.cur < igap {
		return 0x00
	}
	return 0x01
}

func (d *disc) MoveToLeadIn() bool {
	fmt.Fprintln(os.Stderr, "cdimage/iso: lead-in is not present in ISO images; parking at sector 0")
	d.cur = 0
	return true
}

func (d *disc) Read(buf []byte, move bool) (bool, error) {
	if len(buf) < cdimage.RawSectorSize {
		return false, fmt.Errorf("%w: buffer too small", cdimage.ErrIOFailure)
	}
	if d.cur >= d.totalSectors() {
		return false, fmt.Errorf("%w: read past end of disc", cdimage.ErrOutOfRange)
	}
	raw := buf[:cdimage.RawSectorSize]

	if d.cur < igap {
		clear(raw)
		if move {
			d.cur++
		}
		return false, nil
	}

	fileIdx := d.cur - igap

	raw[0] = 0x00
	for i := 1; i <= 10; i++ {
		raw[i] = 0xFF
	}
	raw[11] = 0x00
	pos := cdimage.ToPosition(d.cur)
	raw[12] = pos.Min
	raw[13] = pos.Sec
	raw[14] = pos.Frame
	raw[15] = 0x01

	want := int64(fileIdx) * userDataSize
	if d.cursor != want {
		if _, err := d.f.Seek(want, 0); err != nil {
			return false, fmt.Errorf("%w: seek: %v", cdimage.ErrIOFailure, err)
		}
	}
	n, err := readFull(d.f, raw[16:16+userDataSize])
	if err != nil || n != userDataSize {
		d.cursor = -1
		return false, fmt.Errorf("%w: read: %v", cdimage.ErrIOFailure, err)
	}
	d.cursor = want + int64(n)

	clear(raw[16+userDataSize:])

	if move {
		d.cur++
	}
	return false, nil
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

func (d *disc) ReadQ(buf []byte, move bool) (bool, error) {
	if len(buf) < cdimage.SubQSize {
		return false, fmt.Errorf("%w: buffer too small", cdimage.ErrIOFailure)
	}
	if d.cur >= d.totalSectors() {
		return false, fmt.Errorf("%w: read past end of disc", cdimage.ErrOutOfRange)
	}

	buf[0] = 0x00
	buf[1] = 0x41
	buf[2] = cdimage.ToBCD(1)
	buf[3] = d.CurrentIndex()

	var rel int
	if d.cur >= igap {
		rel = d.cur - igap
	} else {
		rel = igap - 1 - d.cur
	}
	relPos := cdimage.ToPosition(rel)
	buf[4] = relPos.Min
	buf[5] = relPos.Sec
	buf[6] = relPos.Frame
	buf[7] = 0x00

	absPos := cdimage.ToPosition(d.cur)
	buf[8] = absPos.Min
	buf[9] = absPos.Sec
	buf[10] = absPos.Frame

	crc := crc16.Compute(buf[1:11])
	buf[11] = byte(crc >> 8)
	buf[12] = byte(crc)

	if move {
		d.cur++
	}
	return true, nil
}

func (d *disc) Info() (*cdimage.Info, error) {
	n := d.totalSectors()
	track := cdimage.TrackInfo{
		Number:             1,
		ID:                 cdimage.ToBCD(1),
		Type:               cdimage.TrackMode1,
		IsAudio:            false,
		DigitalCopyAllowed: true,
		Indexes: []cdimage.IndexInfo{
			{ID: 0x00, Position: cdimage.ToPosition(0)},
			{ID: 0x01, Position: cdimage.ToPosition(igap)},
		},
		PosFirstSector: cdimage.ToPosition(0),
		PosLastSector:  cdimage.ToPosition(n - 1),
	}
	return &cdimage.Info{
		Type: cdimage.DiscMode1,
		Sessions: []cdimage.SessionInfo{
			{Number: 1, Tracks: []cdimage.TrackInfo{track}},
		},
	}, nil
}
