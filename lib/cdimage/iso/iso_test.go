package iso

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sargunv/cdimage/lib/cdimage"
)

func TestISOSynthesizedSector(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 100*userDataSize)
	for i := range content {
		content[i] = byte(i)
	}
	path := filepath.Join(dir, "disc.iso")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if got := d.(*disc).totalSectors(); got != 250 {
		t.Fatalf("totalSectors = %d, want 250", got)
	}

	d.Seek(0, 2, 0) // sector 150
	buf := make([]byte, cdimage.RawSectorSize)
	isAudio, err := d.Read(buf, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if isAudio {
		t.Fatalf("ISO sector should not be audio")
	}
	if buf[0] != 0x00 {
		t.Fatalf("buf[0] = %#x, want 0x00", buf[0])
	}
	for i := 1; i <= 10; i++ {
		if buf[i] != 0xFF {
			t.Fatalf("buf[%d] = %#x, want 0xFF", i, buf[i])
		}
	}
	if buf[11] != 0x00 {
		t.Fatalf("buf[11] = %#x, want 0x00", buf[11])
	}
	if buf[12] != 0x00 || buf[13] != 0x02 || buf[14] != 0x00 {
		t.Fatalf("buf[12..15] = %x, want 00 02 00", buf[12:15])
	}
	if buf[15] != 0x01 {
		t.Fatalf("buf[15] = %#x, want 0x01", buf[15])
	}
	if !bytes.Equal(buf[16:16+userDataSize], content[:userDataSize]) {
		t.Fatalf("buf[16:2064] does not match first 2048 bytes of file")
	}
	for i := 16 + userDataSize; i < cdimage.RawSectorSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("buf[%d] = %#x, want 0 (ECC placeholder)", i, buf[i])
		}
	}
}

func TestISOPregapIsZeroFilled(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 10*userDataSize)
	path := filepath.Join(dir, "disc.iso")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	d.Reset()
	buf := make([]byte, cdimage.RawSectorSize)
	if _, err := d.Read(buf, false); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf, make([]byte, cdimage.RawSectorSize)) {
		t.Fatalf("pregap sector expected to be zero-filled")
	}
}

func TestISOInfoFixesIndexRecords(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 10*userDataSize)
	path := filepath.Join(dir, "disc.iso")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	info, err := d.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	tr := info.Sessions[0].Tracks[0]
	if len(tr.Indexes) != 2 {
		t.Fatalf("len(Indexes) = %d, want 2", len(tr.Indexes))
	}
	if tr.Indexes[0].ID != 0x00 || tr.Indexes[0].Position.ToLinear() != 0 {
		t.Fatalf("index 0 = %+v, want id 0x00 at sector 0", tr.Indexes[0])
	}
	if tr.Indexes[1].ID != 0x01 || tr.Indexes[1].Position.ToLinear() != igap {
		t.Fatalf("index 1 = %+v, want id 0x01 at sector %d", tr.Indexes[1], igap)
	}
}
