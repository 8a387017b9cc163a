package cpu

import "testing"

func TestParseCacheSize(t *testing.T) {
	testCases := map[string]int64{
		"":     0,
		"32K":  32 * 1024,
		"8M":   8 * 1024 * 1024,
		"1G":   1024 * 1024 * 1024,
		"512":  512,
		"junk": 0,
	}
	for in, expected := range testCases {
		if got := parseCacheSize(in); got != expected {
			t.Errorf("parseCacheSize(%q) = %d, expected %d", in, got, expected)
		}
	}
}
