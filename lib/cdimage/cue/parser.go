package cue

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sargunv/cdimage/internal/lineutil"
	"github.com/sargunv/cdimage/lib/cdimage"
)

type entryKind int

const (
	entryPregap entryKind = iota
	entryIndex
)

// entry is either a PREGAP (time holds a frame count, later overwritten with
// an absolute linear sector) or an INDEX (time holds a file-relative sector
// offset, later overwritten with an absolute linear sector).
type entry struct {
	kind entryKind
	id   int
	time int
	file *binFile
}

type track struct {
	number      int
	typ         cdimage.TrackType
	start       int // first index into doc.entries
	count       int
	firstIndex1 int // absolute linear sector of INDEX 01; filled by buildSectorMap
}

type document struct {
	tracks  []*track
	entries []*entry
	files   []*binFile
}

// parseCue reads and parses the CUE sheet at path, opening every referenced
// binary file as it goes. On error, any binary files already opened are
// closed.
func parseCue(path string) (doc *document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", cdimage.ErrOpenFailure, path)
	}
	defer f.Close()

	doc = &document{}
	defer func() {
		if err != nil {
			for _, bf := range doc.files {
				bf.Close()
			}
		}
	}()

	dir := filepath.Dir(path)
	lr := lineutil.New(f)

	var curFile *binFile
	var curTrack *track

	for {
		line, status := lr.ReadLine()
		switch status {
		case lineutil.StatusError:
			return nil, fmt.Errorf("%w: reading %q", cdimage.ErrIOFailure, path)
		case lineutil.StatusEOF:
			if curTrack == nil {
				return nil, fmt.Errorf("%w: no tracks declared", cdimage.ErrSemantic)
			}
			return doc, nil
		}

		line = strings.TrimLeft(line, " \t")
		if line == "" {
			continue
		}

		cmd, rest := splitCommand(line)
		switch cmd {
		case "FILE":
			name, ok := parseQuoted(rest)
			if !ok {
				return nil, fmt.Errorf("%w: malformed FILE command %q", cdimage.ErrSyntax, line)
			}
			accumulated := 0
			if n := len(doc.files); n > 0 {
				prev := doc.files[n-1]
				accumulated = prev.accumulated + prev.sectors
			}
			bf, err := openBinFile(dir, name, accumulated)
			if err != nil {
				return nil, err
			}
			doc.files = append(doc.files, bf)
			curFile = bf

		case "TRACK":
			fields := strings.Fields(rest)
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: malformed TRACK command %q", cdimage.ErrSyntax, line)
			}
			num, err := parseTwoDigit(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: malformed TRACK number %q", cdimage.ErrSyntax, fields[0])
			}
			if num != len(doc.tracks)+1 {
				return nil, fmt.Errorf("%w: TRACK %02d out of sequence", cdimage.ErrSemantic, num)
			}
			typ, ok := parseTrackType(fields[1])
			if !ok {
				return nil, fmt.Errorf("%w: unknown track mode %q", cdimage.ErrSyntax, fields[1])
			}
			curTrack = &track{number: num, typ: typ, start: len(doc.entries)}
			doc.tracks = append(doc.tracks, curTrack)

		case "INDEX":
			if curTrack == nil || curFile == nil {
				return nil, fmt.Errorf("%w: INDEX before FILE/TRACK", cdimage.ErrSemantic)
			}
			fields := strings.Fields(rest)
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: malformed INDEX command %q", cdimage.ErrSyntax, line)
			}
			id, err := parseTwoDigit(fields[0])
			if err != nil {
				return nil, fmt.Errorf("%w: malformed INDEX number %q", cdimage.ErrSyntax, fields[0])
			}
			sectors, err := parseTime(fields[1])
			if err != nil {
				return nil, err
			}
			if sectors >= curFile.sectors {
				return nil, fmt.Errorf("%w: INDEX %02d past end of %q", cdimage.ErrSemantic, id, curFile.path)
			}
			doc.entries = append(doc.entries, &entry{kind: entryIndex, id: id, time: sectors, file: curFile})
			curTrack.count++

		case "PREGAP":
			if curTrack == nil {
				return nil, fmt.Errorf("%w: PREGAP before TRACK", cdimage.ErrSemantic)
			}
			fields := strings.Fields(rest)
			if len(fields) != 1 {
				return nil, fmt.Errorf("%w: malformed PREGAP command %q", cdimage.ErrSyntax, line)
			}
			frames, err := parseTime(fields[0])
			if err != nil {
				return nil, err
			}
			doc.entries = append(doc.entries, &entry{kind: entryPregap, time: frames})
			curTrack.count++

		default:
			return nil, fmt.Errorf("%w: unknown command %q", cdimage.ErrSyntax, cmd)
		}
	}
}

func splitCommand(line string) (cmd, rest string) {
	i := strings.IndexAny(line, " \t")
	if i == -1 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i+1:], " \t")
}

func parseQuoted(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' {
		return "", false
	}
	end := strings.LastIndexByte(s, '"')
	if end <= 0 {
		return "", false
	}
	return s[1:end], true
}

func parseTwoDigit(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("not two digits")
	}
	return strconv.Atoi(s)
}

func parseTrackType(s string) (cdimage.TrackType, bool) {
	switch s {
	case "AUDIO":
		return cdimage.TrackAudio, true
	case "MODE1/2352":
		return cdimage.TrackMode1, true
	case "MODE2/2352":
		return cdimage.TrackMode2, true
	default:
		return 0, false
	}
}

// parseTime parses a strict DD:DD:DD decimal MM:SS:FF time into a sector
// count.
func parseTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: malformed time %q", cdimage.ErrSyntax, s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("%w: malformed time %q", cdimage.ErrSyntax, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed time %q", cdimage.ErrSyntax, s)
		}
		vals[i] = n
	}
	return (vals[0]*60+vals[1])*cdimage.SectorsPerSecond + vals[2], nil
}
