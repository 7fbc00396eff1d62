package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

// parseEnv overrides fields whose ITEMKEEPER_* variable is set. Unset
// variables leave the current value alone. Durations use time.ParseDuration
// syntax ("15m").
//
// Values from a .env file are used as well; the real environment wins over
// the file.
func parseEnv(config *Config) {
	environment, err := readDotEnv(dotEnvFile)
	if err != nil {
		panic(err)
	}
	for k, v := range env.ToMap(os.Environ()) {
		environment[k] = v
	}

	if err := env.ParseWithOptions(config, env.Options{Environment: environment}); err != nil {
		panic(err)
	}
}

func readDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return vars, err
}
