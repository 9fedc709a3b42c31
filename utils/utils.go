package utils

import (
	"math/rand"
	"strings"
	"time"
)

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomPassword builds a temporary password for admin-created users.
func GenerateRandomPassword(length int) string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(passwordChars[rng.Intn(len(passwordChars))])
	}
	return b.String()
}
