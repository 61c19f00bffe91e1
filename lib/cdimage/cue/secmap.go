package cue

import (
	"fmt"

	"github.com/sargunv/cdimage/lib/cdimage"
)

// sectorMapEntry is one linear sector's resolved location.
type sectorMapEntry struct {
	file      *binFile
	fileIndex int  // file-relative sector index; only meaningful if file != nil
	track     int  // 0-based track index; 0 for the leading mandatory pregap
	indexID   byte // BCD index id, 0x00 for gap sectors
	lsd       int  // index into the disc's lsd record slice, or -1
}

// buildSectorMap implements the core sector-map construction algorithm: it
// walks the parsed entries in declaration order, resolving PREGAP and INDEX
// commands into a dense array of linear sectors, and records each track's
// absolute INDEX-01 sector back into the track itself.
func buildSectorMap(doc *document) ([]sectorMapEntry, error) {
	var totalPregapFrames int
	for _, e := range doc.entries {
		if e.kind == entryPregap {
			totalPregapFrames += e.time
		}
	}
	var binSectors int
	for _, f := range doc.files {
		binSectors += f.sectors
	}

	gap := 150 + totalPregapFrames
	n := gap + binSectors

	sm := make([]sectorMapEntry, n)
	for i := 0; i < 150; i++ {
		sm[i] = sectorMapEntry{track: 0, indexID: 0x00, lsd: -1}
	}

	entryTrack := make([]int, len(doc.entries))
	for ti, t := range doc.tracks {
		for i := t.start; i < t.start+t.count; i++ {
			entryTrack[i] = ti
		}
	}

	cur := 150
	runningGap := 150
	prevIDInTrack := make([]int, len(doc.tracks))
	for i := range prevIDInTrack {
		prevIDInTrack[i] = -1
	}

	entries := doc.entries
	for i, e := range entries {
		t := entryTrack[i]

		switch e.kind {
		case entryPregap:
			if i+1 >= len(entries) || entries[i+1].kind != entryIndex {
				return nil, fmt.Errorf("%w: PREGAP must be followed by INDEX", cdimage.ErrSemantic)
			}
			next := entries[i+1]
			frames := e.time
			e.time = cur
			runningGap += frames
			end := next.file.accumulated + next.time + runningGap
			if end <= cur {
				return nil, fmt.Errorf("%w: invalid PREGAP/INDEX commands", cdimage.ErrSemantic)
			}
			for s := cur; s < end; s++ {
				sm[s] = sectorMapEntry{track: t, indexID: 0x00, lsd: -1}
			}
			cur = end

		case entryIndex:
			prev := prevIDInTrack[t]
			if prev == -1 {
				if e.id != 0 && e.id != 1 {
					return nil, fmt.Errorf("%w: track's first INDEX must be 00 or 01", cdimage.ErrSemantic)
				}
			} else if e.id != prev+1 {
				return nil, fmt.Errorf("%w: INDEX ids must ascend by one", cdimage.ErrSemantic)
			}
			prevIDInTrack[t] = e.id

			if e.id == 1 {
				doc.tracks[t].firstIndex1 = cur
			}

			var end int
			switch {
			case i == len(entries)-1:
				end = n
			case entries[i+1].kind == entryIndex:
				nx := entries[i+1]
				end = nx.file.accumulated + nx.time + runningGap
			default:
				// next is a PREGAP opening a new track; look past it to
				// the INDEX that follows, without yet adding that
				// PREGAP's own frames.
				if i+2 >= len(entries) || entries[i+2].kind != entryIndex {
					return nil, fmt.Errorf("%w: invalid PREGAP/INDEX commands", cdimage.ErrSemantic)
				}
				nx := entries[i+2]
				end = nx.file.accumulated + nx.time + runningGap
			}
			if end <= cur {
				return nil, fmt.Errorf("%w: invalid PREGAP/INDEX commands", cdimage.ErrSemantic)
			}

			fileRel := e.time
			e.time = cur
			for s := cur; s < end; s++ {
				sm[s] = sectorMapEntry{file: e.file, fileIndex: fileRel, track: t, indexID: cdimage.ToBCD(e.id), lsd: -1}
				fileRel++
			}
			cur = end
		}
	}

	if cur != n {
		return nil, fmt.Errorf("%w: sector map did not cover the whole disc", cdimage.ErrSemantic)
	}

	return sm, nil
}
