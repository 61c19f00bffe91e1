package trackhash_test

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/sargunv/cdimage/lib/cdimage"
	"github.com/sargunv/cdimage/lib/cdimage/cue"
	"github.com/sargunv/cdimage/lib/cdimage/trackhash"
)

func TestTrackHashMatchesRawBytes(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 4*cdimage.RawSectorSize)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "disc.cue"), []byte(
		"FILE \"a.bin\" BINARY\nTRACK 01 AUDIO\nINDEX 01 00:00:00\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := cue.Open(filepath.Join(dir, "disc.cue"))
	if err != nil {
		t.Fatalf("cue.Open: %v", err)
	}
	defer d.Close()

	hashes, err := trackhash.Track(d, 1)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}

	want := sha1.Sum(data)
	if hashes.SHA1 != hex.EncodeToString(want[:]) {
		t.Fatalf("SHA1 = %s, want %s", hashes.SHA1, hex.EncodeToString(want[:]))
	}
}
