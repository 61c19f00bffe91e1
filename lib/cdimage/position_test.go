package cdimage

import "testing"

func TestPositionRoundTrip(t *testing.T) {
	for _, linear := range []int{0, 1, 74, 75, 149, 150, 4499, 449999} {
		pos := ToPosition(linear)
		if got := pos.ToLinear(); got != linear {
			t.Errorf("ToPosition(%d).ToLinear() = %d, want %d", linear, got, linear)
		}
	}
}

func TestBCDRoundTrip(t *testing.T) {
	for n := 0; n <= 99; n++ {
		if got := FromBCD(ToBCD(n)); got != n {
			t.Errorf("FromBCD(ToBCD(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestToPositionKnownValues(t *testing.T) {
	cases := []struct {
		linear         int
		min, sec, fram byte
	}{
		{0, 0x00, 0x00, 0x00},
		{150, 0x00, 0x02, 0x00},
		{299, 0x00, 0x03, 0x74},
	}
	for _, c := range cases {
		pos := ToPosition(c.linear)
		if pos.Min != c.min || pos.Sec != c.sec || pos.Frame != c.fram {
			t.Errorf("ToPosition(%d) = %+v, want (%#x,%#x,%#x)", c.linear, pos, c.min, c.sec, c.fram)
		}
	}
}
