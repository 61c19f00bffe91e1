// Package cue implements the CUE/BIN disc backend: a stateful CUE sheet
// parser, the sector-map builder, an optional LSD subchannel overlay, and
// the cdimage.Disc façade over the result.
package cue

import (
	"fmt"
	"os"

	"github.com/sargunv/cdimage/internal/crc16"
	"github.com/sargunv/cdimage/lib/cdimage"
)

func init() {
	cdimage.RegisterBackend("CUE", func(path string) (cdimage.Disc, error) {
		return Open(path)
	})
}

type disc struct {
	tracks  []*track
	entries []*entry
	sm      []sectorMapEntry
	files   []*binFile
	lsd     [][lsdRecordSize]byte
	cur     int
}

// Open loads a CUE sheet, its binary companions, and an optional sibling
// .lsd overlay, and builds the disc's sector map.
func Open(path string) (cdimage.Disc, error) {
	doc, err := parseCue(path)
	if err != nil {
		return nil, err
	}

	sm, err := buildSectorMap(doc)
	if err != nil {
		closeFiles(doc.files)
		return nil, err
	}

	lsd, err := loadLSD(path, sm)
	if err != nil {
		closeFiles(doc.files)
		return nil, err
	}

	return &disc{tracks: doc.tracks, entries: doc.entries, sm: sm, files: doc.files, lsd: lsd}, nil
}

func closeFiles(files []*binFile) {
	for _, f := range files {
		f.Close()
	}
}

func (d *disc) Close() error {
	var firstErr error
	for _, f := range d.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (d *disc) Reset() { d.cur = 0 }

func (d *disc) MoveToSession(session int) bool {
	if session != 1 {
		return false
	}
	d.cur = 150
	return true
}

func (d *disc) MoveToTrack(trackNum int) bool {
	if trackNum < 1 || trackNum > len(d.tracks) {
		return false
	}
	d.cur = d.tracks[trackNum-1].firstIndex1
	return true
}

func (d *disc) Seek(mm, ss, ff byte) bool {
	pos := cdimage.Position{Min: mm, Sec: ss, Frame: ff}
	sector := pos.ToLinear()
	if sector < 0 || sector >= len(d.sm) {
		return false
	}
	d.cur = sector
	return true
}

func (d *disc) Tell() cdimage.Position {
	return cdimage.ToPosition(d.cur)
}

func (d *disc) NumSessions() int { return 1 }

func (d *disc) CurrentSession() int { return 0 }

func (d *disc) CurrentTrack() int {
	if d.cur >= len(d.sm) {
		return len(d.tracks)
	}
	return d.sm[d.cur].track + 1
}

func (d *disc) CurrentIndex() byte {
	if d.cur >= len(d.sm) {
		return 0x00
	}
	return d.sm[d.cur].indexID
}

func (d *disc) MoveToLeadIn() bool {
	fmt.Fprintln(os.Stderr, "cdimage/cue: lead-in is not present in CUE/BIN images; parking at sector 0")
	d.cur = 0
	return true
}

func (d *disc) Read(buf []byte, move bool) (bool, error) {
	if len(buf) < cdimage.RawSectorSize {
		return false, fmt.Errorf("%w: buffer too small", cdimage.ErrIOFailure)
	}
	if d.cur >= len(d.sm) {
		return false, fmt.Errorf("%w: read past end of disc", cdimage.ErrOutOfRange)
	}
	row := d.sm[d.cur]
	isAudio := d.tracks[row.track].typ == cdimage.TrackAudio

	if row.file == nil {
		clear(buf[:cdimage.RawSectorSize])
	} else if err := row.file.readSector(row.fileIndex, buf[:cdimage.RawSectorSize]); err != nil {
		return false, err
	}

	if move {
		d.cur++
	}
	return isAudio, nil
}

func (d *disc) ReadQ(buf []byte, move bool) (bool, error) {
	if len(buf) < cdimage.SubQSize {
		return false, fmt.Errorf("%w: buffer too small", cdimage.ErrIOFailure)
	}
	if d.cur >= len(d.sm) {
		return false, fmt.Errorf("%w: read past end of disc", cdimage.ErrOutOfRange)
	}
	row := d.sm[d.cur]

	var crcOK bool
	if row.lsd >= 0 {
		rec := d.lsd[row.lsd]
		buf[0] = 0x00
		copy(buf[1:13], rec[3:15])
		crcOK = false
	} else {
		tr := d.tracks[row.track]
		buf[0] = 0x00
		ctrl := byte(0x01)
		if tr.typ != cdimage.TrackAudio {
			ctrl |= 0x40
		}
		buf[1] = ctrl
		buf[2] = cdimage.ToBCD(tr.number)
		buf[3] = row.indexID

		var rel int
		if d.cur >= tr.firstIndex1 {
			rel = d.cur - tr.firstIndex1
		} else {
			rel = tr.firstIndex1 - 1 - d.cur
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
		crcOK = true
	}

	if move {
		d.cur++
	}
	return crcOK, nil
}

func (d *disc) Info() (*cdimage.Info, error) {
	n := len(d.sm)
	tracks := make([]cdimage.TrackInfo, len(d.tracks))

	var mode1, mode2, audio bool

	for i, tr := range d.tracks {
		ti := cdimage.TrackInfo{
			Number:             tr.number,
			ID:                 cdimage.ToBCD(tr.number),
			Type:               tr.typ,
			IsAudio:            tr.typ == cdimage.TrackAudio,
			DigitalCopyAllowed: true,
		}
		switch tr.typ {
		case cdimage.TrackAudio:
			audio = true
		case cdimage.TrackMode1:
			mode1 = true
		case cdimage.TrackMode2:
			mode2 = true
		}

		for _, e := range d.entries[tr.start : tr.start+tr.count] {
			id := byte(0x00)
			if e.kind == entryIndex {
				id = cdimage.ToBCD(e.id)
			}
			ti.Indexes = append(ti.Indexes, cdimage.IndexInfo{ID: id, Position: cdimage.ToPosition(e.time)})
		}
		ti.PosFirstSector = ti.Indexes[0].Position

		var lastSector int
		if i+1 < len(d.tracks) {
			nextTrack := d.tracks[i+1]
			lastSector = d.entries[nextTrack.start].time - 1
		} else {
			lastSector = n - 1
		}
		ti.PosLastSector = cdimage.ToPosition(lastSector)

		tracks[i] = ti
	}

	var discType cdimage.DiscType
	switch {
	case mode1 && mode2:
		discType = cdimage.DiscUnknown
	case mode1 && audio:
		discType = cdimage.DiscMode1Audio
	case mode2 && audio:
		discType = cdimage.DiscMode2Audio
	case mode1:
		discType = cdimage.DiscMode1
	case mode2:
		discType = cdimage.DiscMode2
	default:
		discType = cdimage.DiscAudio
	}

	return &cdimage.Info{
		Type: discType,
		Sessions: []cdimage.SessionInfo{
			{Number: 1, Tracks: tracks},
		},
	}, nil
}
