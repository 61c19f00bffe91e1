package cue

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sargunv/cdimage/lib/cdimage"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func repeatByte(b byte, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return buf
}

// S1: audio single-file CUE.
func TestAudioSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), repeatByte(0xAB, 150*cdimage.RawSectorSize))
	writeFile(t, filepath.Join(dir, "disc.cue"), []byte(
		"FILE \"a.bin\" BINARY\nTRACK 01 AUDIO\nINDEX 01 00:00:00\n"))

	d, err := Open(filepath.Join(dir, "disc.cue"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	buf := make([]byte, cdimage.RawSectorSize)

	d.Seek(0, 0, 0)
	isAudio, err := d.Read(buf, false)
	if err != nil || !isAudio {
		t.Fatalf("sector 0 read: isAudio=%v err=%v", isAudio, err)
	}
	if !bytes.Equal(buf, make([]byte, cdimage.RawSectorSize)) {
		t.Fatalf("sector 0 expected zero-fill")
	}

	d.Seek(0, 2, 0) // sector 150
	isAudio, err = d.Read(buf, false)
	if err != nil || !isAudio {
		t.Fatalf("sector 150 read: isAudio=%v err=%v", isAudio, err)
	}
	if !bytes.Equal(buf, repeatByte(0xAB, cdimage.RawSectorSize)) {
		t.Fatalf("sector 150 expected 0xAB fill")
	}

	info, err := d.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Type != cdimage.DiscAudio {
		t.Fatalf("disc type = %v, want DiscAudio", info.Type)
	}
	last := info.Sessions[0].Tracks[0].PosLastSector
	if last.Min != 0x00 || last.Sec != 0x03 || last.Frame != 0x74 {
		t.Fatalf("pos_last_sector = %+v, want (00,03,74)", last)
	}
}

// S2: two-track MODE1 + audio with pregap.
func TestTwoTrackWithPregap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), repeatByte(0, 1100*cdimage.RawSectorSize))
	writeFile(t, filepath.Join(dir, "disc.cue"), []byte(
		"FILE \"a.bin\" BINARY\n"+
			"TRACK 01 MODE1/2352\n"+
			"INDEX 01 00:00:00\n"+
			"TRACK 02 AUDIO\n"+
			"PREGAP 00:02:00\n"+
			"INDEX 01 00:10:00\n"))

	d, err := Open(filepath.Join(dir, "disc.cue"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if !d.MoveToTrack(2) {
		t.Fatalf("MoveToTrack(2) failed")
	}
	pos := d.Tell()
	if pos.ToLinear() != 1050 {
		t.Fatalf("track 2 index01 at linear %d, want 1050", pos.ToLinear())
	}

	info, err := d.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Type != cdimage.DiscMode1Audio {
		t.Fatalf("disc type = %v, want DiscMode1Audio", info.Type)
	}
}

// S3: id-progression violation.
func TestIndexProgressionViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), repeatByte(0, 10*cdimage.RawSectorSize))
	writeFile(t, filepath.Join(dir, "disc.cue"), []byte(
		"FILE \"a.bin\" BINARY\nTRACK 01 AUDIO\nINDEX 02 00:00:00\n"))

	_, err := Open(filepath.Join(dir, "disc.cue"))
	if err == nil {
		t.Fatalf("expected error for INDEX 02 without prior INDEX 01")
	}
	if !errors.Is(err, cdimage.ErrSemantic) {
		t.Fatalf("error = %v, want ErrSemantic", err)
	}
}

// S4: LSD overlay patch.
func TestLSDOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bin"), repeatByte(0xAB, 150*cdimage.RawSectorSize))
	writeFile(t, filepath.Join(dir, "disc.cue"), []byte(
		"FILE \"a.bin\" BINARY\nTRACK 01 AUDIO\nINDEX 01 00:00:00\n"))

	badQ := repeatByte(0xEE, 12)
	record := append([]byte{0x00, 0x02, 0x00}, badQ...)
	writeFile(t, filepath.Join(dir, "disc.lsd"), record)

	d, err := Open(filepath.Join(dir, "disc.cue"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	buf := make([]byte, cdimage.SubQSize)

	d.Seek(0, 2, 0) // sector 150
	crcOK, err := d.ReadQ(buf, false)
	if err != nil {
		t.Fatalf("ReadQ: %v", err)
	}
	if crcOK {
		t.Fatalf("expected crcOK=false for LSD-patched sector")
	}
	if !bytes.Equal(buf[1:13], badQ) {
		t.Fatalf("Q payload = %x, want %x", buf[1:13], badQ)
	}

	d.Seek(0, 1, 74) // sector 149
	crcOK, err = d.ReadQ(buf, false)
	if err != nil {
		t.Fatalf("ReadQ: %v", err)
	}
	if !crcOK {
		t.Fatalf("expected crcOK=true for synthesized sector")
	}
}

// S6: path resolution fallback.
func TestPathResolutionFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "disc.bin"), repeatByte(0, 1*cdimage.RawSectorSize))
	writeFile(t, filepath.Join(dir, "disc.cue"), []byte(
		"FILE \"disc.bin\" BINARY\nTRACK 01 AUDIO\nINDEX 01 00:00:00\n"))

	d, err := Open(filepath.Join(dir, "disc.cue"))
	if err != nil {
		t.Fatalf("Open should resolve disc.bin relative to the cue file: %v", err)
	}
	d.Close()
}
