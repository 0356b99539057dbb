package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays environment variables named by the `env` struct tags.
// Unset variables leave the current value in place; a malformed value
// (e.g. TOKEN_VALIDITY=soon) panics.
func parseEnv(config *Config) {
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
