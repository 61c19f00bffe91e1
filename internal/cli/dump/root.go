// Package dump implements the "dump" subcommand, which hex-dumps a single
// raw sector or subchannel-Q record from a disc image.
package dump

import (
	"encoding/hex"
	"fmt"

	"github.com/sargunv/cdimage/internal/format"
	"github.com/sargunv/cdimage/lib/cdimage"
	_ "github.com/sargunv/cdimage/lib/cdimage/cue"
	_ "github.com/sargunv/cdimage/lib/cdimage/iso"

	"github.com/spf13/cobra"
)

var (
	sector int
	track  int
	subQ   bool
)

var Cmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Hex-dump a raw sector or subchannel-Q record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	Cmd.Flags().IntVar(&sector, "sector", -1, "linear sector number to dump (default: first sector of --track)")
	Cmd.Flags().IntVar(&track, "track", 1, "1-based track to dump from, when --sector is not given")
	Cmd.Flags().BoolVar(&subQ, "q", false, "dump the synthesized subchannel-Q record instead of the raw sector")
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	d, err := cdimage.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer d.Close()

	if sector >= 0 {
		pos := cdimage.ToPosition(sector)
		if !d.Seek(pos.Min, pos.Sec, pos.Frame) {
			return fmt.Errorf("sector %d is past the end of the disc", sector)
		}
	} else {
		if !d.MoveToTrack(track) {
			return fmt.Errorf("no such track %d", track)
		}
	}

	if subQ {
		var buf [cdimage.SubQSize]byte
		crcOK, err := d.ReadQ(buf[:], false)
		if err != nil {
			return fmt.Errorf("read subchannel-Q: %w", err)
		}
		fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("Subchannel-Q at %s (crc ok: %v)", posLabel(d), crcOK)))
		fmt.Print(hex.Dump(buf[:]))
		return nil
	}

	var buf [cdimage.RawSectorSize]byte
	isAudio, err := d.Read(buf[:], false)
	if err != nil {
		return fmt.Errorf("read sector: %w", err)
	}
	fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("Sector at %s (audio: %v)", posLabel(d), isAudio)))
	fmt.Print(hex.Dump(buf[:]))
	return nil
}

func posLabel(d cdimage.Disc) string {
	p := d.Tell()
	return fmt.Sprintf("%02x:%02x:%02x", p.Min, p.Sec, p.Frame)
}
