package cdimage

import (
	"fmt"
	"strings"
)

// discOpener is implemented by each backend package via RegisterBackend.
type discOpener func(path string) (Disc, error)

var backends = map[string]discOpener{}

// RegisterBackend associates a (case-folded) three-letter extension with a
// backend's open function. Backend packages call this from an init func so
// that importing lib/cdimage/cue or lib/cdimage/iso is enough to make Open
// recognize that format.
func RegisterBackend(ext string, open discOpener) {
	backends[ext] = open
}

// Open inspects path's filename suffix and dispatches to the matching
// backend. Only the final three bytes of the path are uppercased before
// matching against the registered extension, not the whole suffix after a
// dot, so "foo.cue", "foo.Cue", and "foo.cUe" are all recognized.
func Open(path string) (Disc, error) {
	if len(path) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}
	n := len(path)
	ext := strings.ToUpper(path[n-3:])
	open, ok := backends[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}
	return open(path)
}
