package crc16

import "testing"

func TestComputeKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", nil, 0xFFFF},
		{"123456789", []byte("123456789"), 0xCE3C},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Compute(c.data); got != c.want {
				t.Errorf("Compute(%q) = %#04x, want %#04x", c.data, got, c.want)
			}
		})
	}
}

func TestAppendBigEndian(t *testing.T) {
	data := []byte("123456789")
	got := AppendBigEndian(nil, data)
	want := []byte{0x29, 0xB1}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AppendBigEndian = %x, want %x", got, want)
	}
}
