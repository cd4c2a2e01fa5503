package service

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// DefaultAvatarSize is the pixel size used for avatars embedded in API responses.
const DefaultAvatarSize = 128

// AvatarURL derives a gravatar identicon URL from an email address. The email
// is lower-cased before hashing, so addresses differing only in case map to
// the same avatar. Pure URL construction; no network call.
func AvatarURL(email string, size int) string {
	digest := md5.Sum([]byte(strings.ToLower(email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}
