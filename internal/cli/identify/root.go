// Package identify implements the "identify" subcommand, which reports a
// disc's system-area identification (if recognized) and per-track hashes.
package identify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sargunv/cdimage/internal/format"
	"github.com/sargunv/cdimage/lib/cdimage"
	_ "github.com/sargunv/cdimage/lib/cdimage/cue"
	_ "github.com/sargunv/cdimage/lib/cdimage/iso"
	"github.com/sargunv/cdimage/lib/cdimage/sysid"
	"github.com/sargunv/cdimage/lib/cdimage/trackhash"

	"github.com/spf13/cobra"
)

var jsonOutput bool

var Cmd = &cobra.Command{
	Use:   "identify <file>",
	Short: "Identify a disc's platform and hash its tracks",
	Long: `Reads a disc's system area and, if it matches a recognized platform
layout (Sega Saturn or Dreamcast), reports the extracted fields. Then
computes SHA1, MD5, and CRC32 over every track's raw sector stream.`,
	Args: cobra.ExactArgs(1),
	RunE: runIdentify,
}

func init() {
	Cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output results as JSON")
}

type result struct {
	Path     string            `json:"path"`
	Platform string            `json:"platform,omitempty"`
	System   *sysid.Info       `json:"system,omitempty"`
	Tracks   map[int]trackInfo `json:"tracks"`
}

type trackInfo struct {
	SHA1  string `json:"sha1"`
	MD5   string `json:"md5"`
	CRC32 string `json:"crc32"`
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]

	d, err := cdimage.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer d.Close()

	res := result{Path: path, Tracks: map[int]trackInfo{}}

	sysInfo, err := sysid.Identify(d)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: system-area identification failed: %v\n", err)
	} else if sysInfo != nil {
		res.Platform = sysInfo.Platform.String()
		res.System = sysInfo
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("read table of contents: %w", err)
	}
	for _, sess := range info.Sessions {
		for _, tr := range sess.Tracks {
			hashes, err := trackhash.Track(d, tr.Number)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: hashing track %d: %v\n", tr.Number, err)
				continue
			}
			res.Tracks[tr.Number] = trackInfo{SHA1: hashes.SHA1, MD5: hashes.MD5, CRC32: hashes.CRC32}
		}
	}

	if jsonOutput {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printText(res)
	return nil
}

func printText(res result) {
	fmt.Println(format.HeaderStyle.Render(fmt.Sprintf("Disc: %s", res.Path)))
	if res.System != nil {
		fmt.Println(format.HeaderStyle.Render("System area:"))
		fmt.Printf("  %s: %s\n", format.LabelStyle.Render("Platform"), res.Platform)
		if res.System.ProductNumber != "" {
			fmt.Printf("  %s: %s\n", format.LabelStyle.Render("Product"), res.System.ProductNumber)
		}
		if res.System.Title != "" {
			fmt.Printf("  %s: %s\n", format.LabelStyle.Render("Title"), res.System.Title)
		}
	} else {
		fmt.Println(format.DimStyle.Render("No recognized system-area header."))
	}

	fmt.Println(format.HeaderStyle.Render("Tracks:"))
	for num := 1; num <= len(res.Tracks); num++ {
		h, ok := res.Tracks[num]
		if !ok {
			continue
		}
		fmt.Printf("  Track %02d  sha1=%s  md5=%s  crc32=%s\n", num, h.SHA1, h.MD5, h.CRC32)
	}
}
