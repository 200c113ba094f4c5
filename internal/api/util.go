package api

import (
	"math/rand"
	"regexp"
	"strings"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeLength = 6

// generateRoomCode creates a short alphanumeric code for joining rooms.
func generateRoomCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

var roomCodeRegex = regexp.MustCompile("^[A-Z0-9]{6}$")

func normalizeRoomCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
