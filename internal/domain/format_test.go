package domain

import "testing"

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{0.4, "00:00"},
		{3, "00:03"},
		{59, "00:59"},
		{59.9, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{600, "10:00"},
		{3725, "62:05"},
		{-5, "00:00"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
