package isofs

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

const (
	pvdLogicalSector  = 16
	pvdMagicOffset    = 1
	pvdRootDirOffset  = 156
	dirEntryExtentLoc = 2
	dirEntryDataLen   = 10
	dirEntryFlags     = 25
	dirEntryNameLen   = 32
	dirEntryName      = 33

	flagDirectory = 0x02
)

// Reader walks the ISO 9660 directory tree stored in a 2048-byte-per-sector
// logical byte stream (as produced by NewSectorView).
type Reader struct {
	r             io.ReaderAt
	size          int64
	rootExtentLoc uint32
	rootExtentLen uint32
}

// NewReader validates the primary volume descriptor at logical sector 16 and
// records the root directory's extent.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	magicOffset := int64(pvdLogicalSector*userDataSize + pvdMagicOffset)
	if size < magicOffset+5 {
		return nil, fmt.Errorf("cdimage/isofs: image too small for a primary volume descriptor")
	}

	magic := make([]byte, 5)
	if _, err := r.ReadAt(magic, magicOffset); err != nil {
		return nil, fmt.Errorf("cdimage/isofs: reading PVD magic: %w", err)
	}
	if string(magic) != "CD001" {
		return nil, fmt.Errorf("cdimage/isofs: not ISO 9660 (no CD001 magic)")
	}

	pvd := make([]byte, userDataSize)
	if _, err := r.ReadAt(pvd, int64(pvdLogicalSector*userDataSize)); err != nil {
		return nil, fmt.Errorf("cdimage/isofs: reading PVD: %w", err)
	}

	rootRecord := pvd[pvdRootDirOffset:]
	return &Reader{
		r:             r,
		size:          size,
		rootExtentLoc: binary.LittleEndian.Uint32(rootRecord[dirEntryExtentLoc:]),
		rootExtentLen: binary.LittleEndian.Uint32(rootRecord[dirEntryDataLen:]),
	}, nil
}

// Size returns the logical size of the filesystem in bytes.
func (r *Reader) Size() int64 { return r.size }

// OpenFile opens a file by slash-separated path (case-insensitive, ";1"
// version suffixes stripped) and returns a reader for its contents and its
// size.
func (r *Reader) OpenFile(path string) (io.ReaderAt, int64, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	extentLoc, extentLen := r.rootExtentLoc, r.rootExtentLen
	for i, part := range parts {
		loc, length, isDir, err := r.findEntry(extentLoc, extentLen, part)
		if err != nil {
			return nil, 0, fmt.Errorf("path component %q not found: %w", part, err)
		}

		if i == len(parts)-1 {
			if isDir {
				return nil, 0, fmt.Errorf("%q is a directory, not a file", part)
			}
			off := int64(loc) * userDataSize
			return io.NewSectionReader(r.r, off, int64(length)), int64(length), nil
		}
		if !isDir {
			return nil, 0, fmt.Errorf("%q is not a directory", part)
		}
		extentLoc, extentLen = loc, length
	}
	return nil, 0, fmt.Errorf("empty path")
}

// Entry describes one directory member returned by ReadDir.
type Entry struct {
	Name  string
	IsDir bool
	Size  uint32
}

// ReadDir lists the immediate children of the directory at path ("/" for
// the root).
func (r *Reader) ReadDir(path string) ([]Entry, error) {
	extentLoc, extentLen := r.rootExtentLoc, r.rootExtentLen
	path = strings.Trim(path, "/")
	if path != "" {
		for _, part := range strings.Split(path, "/") {
			loc, length, isDir, err := r.findEntry(extentLoc, extentLen, part)
			if err != nil {
				return nil, err
			}
			if !isDir {
				return nil, fmt.Errorf("%q is not a directory", part)
			}
			extentLoc, extentLen = loc, length
		}
	}

	dirData := make([]byte, extentLen)
	if _, err := r.r.ReadAt(dirData, int64(extentLoc)*userDataSize); err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var entries []Entry
	offset := 0
	for offset < len(dirData) {
		entryLen := int(dirData[offset])
		if entryLen == 0 {
			next := ((offset / userDataSize) + 1) * userDataSize
			if next >= len(dirData) {
				break
			}
			offset = next
			continue
		}
		if offset+dirEntryName >= len(dirData) {
			break
		}
		nameLen := int(dirData[offset+dirEntryNameLen])
		name := string(dirData[offset+dirEntryName : offset+dirEntryName+nameLen])
		if name != "\x00" && name != "\x01" {
			if idx := strings.Index(name, ";"); idx != -1 {
				name = name[:idx]
			}
			flags := dirData[offset+dirEntryFlags]
			entries = append(entries, Entry{
				Name:  name,
				IsDir: flags&flagDirectory != 0,
				Size:  binary.LittleEndian.Uint32(dirData[offset+dirEntryDataLen:]),
			})
		}
		offset += entryLen
	}
	return entries, nil
}

func (r *Reader) findEntry(dirExtentLoc, dirExtentLen uint32, name string) (uint32, uint32, bool, error) {
	dirData := make([]byte, dirExtentLen)
	if _, err := r.r.ReadAt(dirData, int64(dirExtentLoc)*userDataSize); err != nil {
		return 0, 0, false, fmt.Errorf("reading directory: %w", err)
	}

	name = strings.ToUpper(name)
	offset := 0
	for offset < len(dirData) {
		entryLen := int(dirData[offset])
		if entryLen == 0 {
			next := ((offset / userDataSize) + 1) * userDataSize
			if next >= len(dirData) {
				break
			}
			offset = next
			continue
		}
		if offset+dirEntryName >= len(dirData) {
			break
		}
		nameLen := int(dirData[offset+dirEntryNameLen])
		if offset+dirEntryName+nameLen > len(dirData) {
			break
		}

		entryName := strings.ToUpper(string(dirData[offset+dirEntryName : offset+dirEntryName+nameLen]))
		if idx := strings.Index(entryName, ";"); idx != -1 {
			entryName = entryName[:idx]
		}

		if entryName == name {
			loc := binary.LittleEndian.Uint32(dirData[offset+dirEntryExtentLoc:])
			length := binary.LittleEndian.Uint32(dirData[offset+dirEntryDataLen:])
			isDir := dirData[offset+dirEntryFlags]&flagDirectory != 0
			return loc, length, isDir, nil
		}
		offset += entryLen
	}
	return 0, 0, false, fmt.Errorf("entry not found: %s", name)
}
