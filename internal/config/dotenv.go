package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads local env files into the process environment.
// .env.local takes precedence over .env, and since godotenv never
// overwrites variables that are already set, the real environment
// always wins over both. Returns the files that were found.
func LoadDotEnv() []string {
	var found []string
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			found = append(found, name)
		}
	}
	if len(found) > 0 {
		_ = godotenv.Load(found...)
	}
	return found
}
