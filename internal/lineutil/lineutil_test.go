package lineutil

import (
	"strings"
	"testing"
)

func TestReadLineBasic(t *testing.T) {
	r := New(strings.NewReader("FILE \"a.bin\" BINARY\r\nTRACK 01 AUDIO\nINDEX 01 00:00:00"))

	line, status := r.ReadLine()
	if status != StatusOK || line != `FILE "a.bin" BINARY` {
		t.Fatalf("line 1 = %q, status %v", line, status)
	}

	line, status = r.ReadLine()
	if status != StatusOK || line != "TRACK 01 AUDIO" {
		t.Fatalf("line 2 = %q, status %v", line, status)
	}

	line, status = r.ReadLine()
	if status != StatusOK || line != "INDEX 01 00:00:00" {
		t.Fatalf("line 3 = %q, status %v", line, status)
	}

	_, status = r.ReadLine()
	if status != StatusEOF {
		t.Fatalf("expected EOF, got %v", status)
	}
}

func TestReadLineToleratesBlankLines(t *testing.T) {
	r := New(strings.NewReader("FILE \"a.bin\" BINARY\n\nTRACK 01 AUDIO\n"))

	_, status := r.ReadLine()
	if status != StatusOK {
		t.Fatalf("unexpected status %v", status)
	}

	line, status := r.ReadLine()
	if status != StatusOK || line != "" {
		t.Fatalf("expected blank line, got %q status %v", line, status)
	}

	line, status = r.ReadLine()
	if status != StatusOK || line != "TRACK 01 AUDIO" {
		t.Fatalf("expected TRACK line, got %q status %v", line, status)
	}
}

func TestReadLineEmptyInput(t *testing.T) {
	r := New(strings.NewReader(""))
	_, status := r.ReadLine()
	if status != StatusEOF {
		t.Fatalf("expected EOF on empty input, got %v", status)
	}
}
