// Package sysid recognizes Sega Saturn and Dreamcast system-area headers
// stored in sector 0 of a disc's first data track.
package sysid

import (
	"fmt"
	"strings"

	"github.com/sargunv/cdimage/internal/util"
	"github.com/sargunv/cdimage/lib/cdimage"
)

const (
	userDataOffset = 16
	headerSize     = 256

	saturnMagic    = "SEGA SEGASATURN "
	dreamcastMagic = "SEGA SEGAKATANA "
)

// Platform identifies which system-area layout was recognized.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformSaturn
	PlatformDreamcast
)

func (p Platform) String() string {
	switch p {
	case PlatformSaturn:
		return "Sega Saturn"
	case PlatformDreamcast:
		return "Sega Dreamcast"
	default:
		return "unknown"
	}
}

// Info holds the fields common to both system-area layouts; fields that a
// given platform does not carry are left empty.
type Info struct {
	Platform      Platform
	MakerID       string
	ProductNumber string
	Version       string
	ReleaseDate   string
	DeviceInfo    string
	AreaSymbols   string
	Peripherals   string
	BootFilename  string
	SWMakerName   string
	Title         string
}

// Identify reads sector 0 of disc's first data track and checks it against
// the Saturn and Dreamcast system-area magic strings. Returns nil (not an
// error) if neither matches.
func Identify(d cdimage.Disc) (*Info, error) {
	data, err := readSystemArea(d)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(string(data), saturnMagic):
		return parseSaturn(data), nil
	case strings.HasPrefix(string(data), dreamcastMagic):
		return parseDreamcast(data), nil
	default:
		return nil, nil
	}
}

func readSystemArea(d cdimage.Disc) ([]byte, error) {
	info, err := d.Info()
	if err != nil {
		return nil, fmt.Errorf("cdimage/sysid: %w", err)
	}
	var first *cdimage.TrackInfo
	for _, sess := range info.Sessions {
		for i := range sess.Tracks {
			tr := &sess.Tracks[i]
			if tr.Type == cdimage.TrackMode1 || tr.Type == cdimage.TrackMode2 {
				first = tr
				break
			}
		}
		if first != nil {
			break
		}
	}
	if first == nil {
		return nil, fmt.Errorf("cdimage/sysid: disc has no data track")
	}

	pos := first.PosFirstSector
	for _, idx := range first.Indexes {
		if idx.ID == 0x01 {
			pos = idx.Position
			break
		}
	}
	if !d.Seek(pos.Min, pos.Sec, pos.Frame) {
		return nil, fmt.Errorf("cdimage/sysid: seek to system area failed")
	}
	var buf [cdimage.RawSectorSize]byte
	if _, err := d.Read(buf[:], false); err != nil {
		return nil, fmt.Errorf("cdimage/sysid: %w", err)
	}
	return buf[userDataOffset : userDataOffset+headerSize], nil
}

// Saturn System ID layout offsets, relative to the start of sector 0.
const (
	saturnMaker   = 0x10
	saturnProduct = 0x20
	saturnVersion = 0x2A
	saturnDate    = 0x30
	saturnDevice  = 0x38
	saturnArea    = 0x40
	saturnPeriph  = 0x50
	saturnTitle   = 0x60
)

func parseSaturn(data []byte) *Info {
	return &Info{
		Platform:      PlatformSaturn,
		MakerID:       util.ExtractASCII(data[saturnMaker : saturnMaker+16]),
		ProductNumber: util.ExtractASCII(data[saturnProduct : saturnProduct+10]),
		Version:       util.ExtractASCII(data[saturnVersion : saturnVersion+6]),
		ReleaseDate:   util.ExtractASCII(data[saturnDate : saturnDate+8]),
		DeviceInfo:    util.ExtractASCII(data[saturnDevice : saturnDevice+8]),
		AreaSymbols:   util.ExtractASCII(data[saturnArea : saturnArea+16]),
		Peripherals:   util.ExtractASCII(data[saturnPeriph : saturnPeriph+16]),
		Title:         util.ExtractASCII(data[saturnTitle : saturnTitle+112]),
	}
}

// Dreamcast IP.BIN layout offsets, relative to the start of sector 0.
const (
	dcMaker    = 0x10
	dcDevice   = 0x20
	dcArea     = 0x30
	dcPeriph   = 0x38
	dcProduct  = 0x40
	dcVersion  = 0x4A
	dcDate     = 0x50
	dcBootFile = 0x60
	dcSWMaker  = 0x70
	dcTitle    = 0x80
)

func parseDreamcast(data []byte) *Info {
	return &Info{
		Platform:      PlatformDreamcast,
		MakerID:       util.ExtractASCII(data[dcMaker : dcMaker+16]),
		DeviceInfo:    util.ExtractASCII(data[dcDevice : dcDevice+16]),
		AreaSymbols:   util.ExtractASCII(data[dcArea : dcArea+8]),
		Peripherals:   util.ExtractASCII(data[dcPeriph : dcPeriph+8]),
		ProductNumber: util.ExtractASCII(data[dcProduct : dcProduct+10]),
		Version:       util.ExtractASCII(data[dcVersion : dcVersion+6]),
		ReleaseDate:   util.ExtractASCII(data[dcDate : dcDate+8]),
		BootFilename:  util.ExtractASCII(data[dcBootFile : dcBootFile+16]),
		SWMakerName:   util.ExtractASCII(data[dcSWMaker : dcSWMaker+16]),
		Title:         util.ExtractASCII(data[dcTitle : dcTitle+128]),
	}
}
