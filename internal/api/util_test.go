package api

import "testing"

func TestGenerateRoomCodeShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := generateRoomCode()
		if !roomCodeRegex.MatchString(code) {
			t.Fatalf("generated code %q does not match the room code shape", code)
		}
	}
}

func TestNormalizeRoomCode(t *testing.T) {
	cases := map[string]string{
		"ab12cd":    "AB12CD",
		" AB12CD ":  "AB12CD",
		"\tab12cd ": "AB12CD",
		"":          "",
	}
	for in, want := range cases {
		if got := normalizeRoomCode(in); got != want {
			t.Errorf("normalizeRoomCode(%q) = %q, want %q", in, got, want)
		}
	}
}
