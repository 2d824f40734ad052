package utils

import "testing"

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{" np-1234 ", "NP1234"},
		{"NP 1234", "NP1234"},
		{"np1234", "NP1234"},
		{"", ""},
	}

	for _, c := range cases {
		if got := NormalizePlate(c.raw); got != c.want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}
