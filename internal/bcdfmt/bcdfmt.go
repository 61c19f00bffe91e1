// Package bcdfmt formats CD positions for human-readable CLI output.
package bcdfmt

import (
	"fmt"

	"github.com/sargunv/cdimage/lib/cdimage"
)

// Position renders a BCD position as "MM:SS:FF" decimal text.
func Position(p cdimage.Position) string {
	return fmt.Sprintf("%02d:%02d:%02d",
		cdimage.FromBCD(p.Min), cdimage.FromBCD(p.Sec), cdimage.FromBCD(p.Frame))
}

// Index renders a BCD index/track id as plain decimal text.
func Index(id byte) string {
	return fmt.Sprintf("%02d", cdimage.FromBCD(id))
}
