package util

import (
	"crypto/rand"
	"math/big"
)

const (
	linkSlugLength = 7
	linkSlugChars  = "abcdefghijklmnopqrstuvwxyz0123456789"

	ClassCodeLength = 4
	// Confusable characters (0/O, 1/I) are left out so codes survive being
	// read aloud or copied from a whiteboard.
	classCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateLinkSlug returns the URL-safe token students follow to reach an
// assignment. Uniqueness is enforced by the database; callers retry on
// collision.
func GenerateLinkSlug() string {
	return randomString(linkSlugLength, linkSlugChars)
}

// GenerateClassCode returns the 4-character shared secret for one assignment.
func GenerateClassCode() string {
	return randomString(ClassCodeLength, classCodeChars)
}

func randomString(length int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic(err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}
