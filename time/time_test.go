package time

import (
	"testing"
	"time"
)

func TestShortDur(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{time.Second, "1s"},
		{time.Minute, "1m"},
		{time.Hour, "1h"},
		{90 * time.Second, "1m30s"},
		{time.Hour + 5*time.Second, "1h0m5s"},
		{250 * time.Millisecond, "250ms"},
	}
	for _, tc := range cases {
		if got := ShortDur(tc.in); got != tc.want {
			t.Errorf("ShortDur(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSince(t *testing.T) {
	if got := Since(time.Now()); got == "" {
		t.Errorf("Since returned empty string")
	}
}
