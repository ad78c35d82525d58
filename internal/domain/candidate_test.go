package domain

import "testing"

func TestIsValidCandidate(t *testing.T) {
	cases := []struct {
		name string
		s    string
		min  int
		max  int
		want bool
	}{
		{"simple", "ab", 1, 4, true},
		{"single char", "a", 1, 4, true},
		{"digits and separators", "a_1.b", 1, 30, true},
		{"underscore edges ok", "_ab_", 1, 4, true},
		{"too short", "", 1, 4, false},
		{"too long", "abcde", 1, 4, false},
		{"leading dot", ".ab", 1, 4, false},
		{"trailing dot", "ab.", 1, 4, false},
		{"double dot", "a..b", 1, 4, false},
		{"lone dot", ".", 1, 4, false},
		{"uppercase", "Ab", 1, 4, false},
		{"bad char", "a-b", 1, 4, false},
		{"space", "a b", 1, 4, false},
		{"below window", "ab", 3, 4, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidCandidate(tc.s, tc.min, tc.max); got != tc.want {
				t.Fatalf("IsValidCandidate(%q, %d, %d) = %v, want %v", tc.s, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestIsValidCandidateAtPlatformMax(t *testing.T) {
	s := ""
	for i := 0; i < MaxUsernameLen; i++ {
		s += "a"
	}
	if !IsValidCandidate(s, 1, MaxUsernameLen) {
		t.Fatalf("expected %d-char name to be valid", MaxUsernameLen)
	}
	if IsValidCandidate(s+"a", 1, MaxUsernameLen) {
		t.Fatalf("expected %d-char name to be invalid", MaxUsernameLen+1)
	}
}
