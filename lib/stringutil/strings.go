package stringutil

import "math/rand"

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func Random(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = randomCharset[rand.Intn(len(randomCharset))]
	}

	return string(b)
}

// Empty returns true if any of the values are empty.
func Empty(vals ...string) bool {
	for _, val := range vals {
		if val == "" {
			return true
		}
	}

	return false
}
