package utils

import (
	"crypto/md5"
	"fmt"
)

// HashString digests arbitrary-length request keys into fixed-size cache keys.
func HashString(input string) string {
	hash := md5.Sum([]byte(input))
	return fmt.Sprintf("%x", hash)
}
