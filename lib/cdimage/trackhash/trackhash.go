// Package trackhash computes content hashes over a disc track's raw sector
// stream, for identifying a track's contents independent of filenames.
package trackhash

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/sargunv/cdimage/lib/cdimage"
)

// Hashes holds hex-encoded digests computed over one track's raw sectors.
type Hashes struct {
	SHA1  string
	MD5   string
	CRC32 string
}

// Track computes SHA1, MD5, and CRC32 over the raw 2352-byte sectors of the
// given 1-based track, from its first sector through its last, in a single
// pass.
func Track(d cdimage.Disc, trackNum int) (Hashes, error) {
	info, err := d.Info()
	if err != nil {
		return Hashes{}, fmt.Errorf("cdimage/trackhash: %w", err)
	}
	var tr *cdimage.TrackInfo
	for _, sess := range info.Sessions {
		for i := range sess.Tracks {
			if sess.Tracks[i].Number == trackNum {
				tr = &sess.Tracks[i]
			}
		}
	}
	if tr == nil {
		return Hashes{}, fmt.Errorf("cdimage/trackhash: no such track %d", trackNum)
	}

	if !d.Seek(tr.PosFirstSector.Min, tr.PosFirstSector.Sec, tr.PosFirstSector.Frame) {
		return Hashes{}, fmt.Errorf("cdimage/trackhash: seek to track %d failed", trackNum)
	}

	sha1Hash := sha1.New()
	md5Hash := md5.New()
	crc32Hash := crc32.NewIEEE()
	multi := io.MultiWriter(sha1Hash, md5Hash, crc32Hash)

	first := tr.PosFirstSector.ToLinear()
	last := tr.PosLastSector.ToLinear()
	var buf [cdimage.RawSectorSize]byte
	for s := first; s <= last; s++ {
		if _, err := d.Read(buf[:], true); err != nil {
			return Hashes{}, fmt.Errorf("cdimage/trackhash: reading sector %d: %w", s, err)
		}
		if _, err := multi.Write(buf[:]); err != nil {
			return Hashes{}, fmt.Errorf("cdimage/trackhash: %w", err)
		}
	}

	return Hashes{
		SHA1:  hex.EncodeToString(sha1Hash.Sum(nil)),
		MD5:   hex.EncodeToString(md5Hash.Sum(nil)),
		CRC32: fmt.Sprintf("%08x", crc32Hash.Sum32()),
	}, nil
}
