// Package toc implements the "toc" subcommand, which prints a disc's
// session/track/index table of contents.
package toc

import (
	"fmt"

	"github.com/sargunv/cdimage/internal/bcdfmt"
	"github.com/sargunv/cdimage/internal/format"
	"github.com/sargunv/cdimage/lib/cdimage"
	_ "github.com/sargunv/cdimage/lib/cdimage/cue"
	_ "github.com/sargunv/cdimage/lib/cdimage/iso"

	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "toc <file>",
	Short: "Print a disc's table of contents",
	Long: `Open a CUE/BIN or ISO disc image and print its session, track, and
index structure, along with the overall disc type.`,
	Args: cobra.ExactArgs(1),
	RunE: runTOC,
}

func runTOC(cmd *cobra.Command, args []string) error {
	path := args[0]

	d, err := cdimage.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer d.Close()

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("read table of contents: %w", err)
	}

	fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("Disc type: %s", discTypeString(info.Type))))

	for _, sess := range info.Sessions {
		fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("Session %d:", sess.Number)))
		for _, tr := range sess.Tracks {
			fmt.Printf("  Track %02d  %-10s  %s - %s\n",
				tr.Number, trackTypeString(tr.Type),
				bcdfmt.Position(tr.PosFirstSector), bcdfmt.Position(tr.PosLastSector))
			for _, idx := range tr.Indexes {
				fmt.Printf("    %s  %s  %s\n",
					format.LabelStyle.Render("index"), bcdfmt.Index(idx.ID), bcdfmt.Position(idx.Position))
			}
		}
	}

	return nil
}

func discTypeString(t cdimage.DiscType) string {
	switch t {
	case cdimage.DiscAudio:
		return "audio"
	case cdimage.DiscMode1:
		return "mode1"
	case cdimage.DiscMode1Audio:
		return "mode1+audio"
	case cdimage.DiscMode2:
		return "mode2"
	case cdimage.DiscMode2Audio:
		return "mode2+audio"
	default:
		return "unknown"
	}
}

func trackTypeString(t cdimage.TrackType) string {
	switch t {
	case cdimage.TrackAudio:
		return "AUDIO"
	case cdimage.TrackMode1:
		return "MODE1"
	case cdimage.TrackMode2:
		return "MODE2"
	default:
		return "UNKNOWN"
	}
}
