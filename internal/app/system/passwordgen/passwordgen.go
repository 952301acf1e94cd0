// Package passwordgen creates initial passwords for admin-created accounts.
// The generated password is memorable (built from the person's name) and is
// delivered once in the welcome email; users are expected to change it.
package passwordgen

import (
	"math/rand"
	"strings"
)

const defaultLength = 12

var (
	specialChars = []string{"@", "#", "$", "!", "&"}
	numberRuns   = []string{"123", "2024", "99", "88", "77"}
)

// Generate builds a password from the given names, padded with random
// lowercase letters to at least 12 characters.
func Generate(firstName, lastName string) string {
	first := cleanName(firstName)
	last := cleanName(lastName)

	special := specialChars[rand.Intn(len(specialChars))]
	run := numberRuns[rand.Intn(len(numberRuns))]

	variations := []string{
		first + special + run,
		first + last + special,
		first + special + last,
		first + run + special,
	}
	password := variations[rand.Intn(len(variations))]

	for len(password) < defaultLength {
		password += string(rune('a' + rand.Intn(26)))
	}
	return password
}

// cleanName lowercases and strips everything but a-z.
func cleanName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
