package usecase

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// gravatarURL builds the default avatar URL for a new account from the
// Gravatar hash of the email address.
func gravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=250", md5.Sum([]byte(normalized)))
}
