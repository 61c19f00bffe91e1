// Package cdimage reads CD-ROM disc images (CUE/BIN and ISO) through a single
// logical-disc interface modeled on a physical drive: sessions, tracks,
// indexes, raw 2352-byte sectors, and a synthesized subchannel-Q stream.
package cdimage

// RawSectorSize is the size in bytes of one raw CD sector.
const RawSectorSize = 2352

// SubQSize is the size in bytes of one synthesized subchannel-Q record.
const SubQSize = 13

// TrackType classifies the data format stored in a track.
type TrackType int

const (
	TrackAudio TrackType = iota
	TrackMode1
	TrackMode2
)

// DiscType classifies the overall composition of a disc's tracks.
type DiscType int

const (
	DiscAudio DiscType = iota
	DiscMode1
	DiscMode1Audio
	DiscMode2
	DiscMode2Audio
	DiscUnknown
)

// IndexInfo describes one index within a track.
type IndexInfo struct {
	ID       byte // BCD index id, 0x00-0x99
	Position Position
}

// TrackInfo describes one track within a session.
type TrackInfo struct {
	Number             int
	ID                 byte // BCD track number
	Type               TrackType
	IsAudio            bool
	FourChannel        bool
	Preemphasis        bool
	DigitalCopyAllowed bool
	Indexes            []IndexInfo
	PosFirstSector     Position
	PosLastSector      Position
}

// SessionInfo describes one session; this library always reports exactly one.
type SessionInfo struct {
	Number int
	Tracks []TrackInfo
}

// Info is the externally visible table of contents, returned by Disc.Info.
type Info struct {
	Type     DiscType
	Sessions []SessionInfo
}

// Disc is a logical CD-ROM disc: a single-consumer, stateful cursor over a
// sequence of raw sectors, with a table of contents describing the
// session/track/index structure. Implementations are not safe for concurrent
// use; the read cursor is mutated by Read and ReadQ.
type Disc interface {
	// Close releases any file handles and derived tables owned by the disc.
	Close() error

	// Reset repositions the cursor to the very first sector.
	Reset()

	// MoveToSession repositions the cursor to the start of the given
	// 1-based session. Returns false if the session does not exist.
	MoveToSession(session int) bool

	// MoveToTrack repositions the cursor to the start (index 01) of the
	// given 1-based track. Returns false if the track does not exist.
	MoveToTrack(track int) bool

	// Seek repositions the cursor to the absolute BCD position. Returns
	// false if the position is past the end of the disc.
	Seek(mm, ss, ff byte) bool

	// Tell returns the BCD position of the cursor.
	Tell() Position

	// NumSessions returns the number of sessions on the disc.
	NumSessions() int

	// CurrentSession returns the 0-based session the cursor is within.
	CurrentSession() int

	// CurrentTrack returns the 1-based track the cursor is within, or the
	// total track count if the cursor is past the end.
	CurrentTrack() int

	// CurrentIndex returns the BCD index id the cursor is within, or 0x00
	// if the cursor is past the end.
	CurrentIndex() byte

	// MoveToLeadIn attempts to reposition to the disc lead-in. Neither the
	// CUE/BIN nor ISO formats retain real lead-in data; implementations
	// report this by writing a diagnostic to stderr and parking the
	// cursor at sector 0. Always returns true.
	MoveToLeadIn() bool

	// Read fills buf (which must be RawSectorSize bytes) with the raw
	// sector at the cursor, reports whether the track is audio, and
	// advances the cursor when move is true.
	Read(buf []byte, move bool) (isAudio bool, err error)

	// ReadQ fills buf (which must be SubQSize bytes) with the
	// subchannel-Q record for the sector at the cursor, reports whether
	// its CRC is known-good, and advances the cursor when move is true.
	ReadQ(buf []byte, move bool) (crcOK bool, err error)

	// Info builds the session/track/index summary and disc type.
	Info() (*Info, error)
}
