// Package config loads typed configuration from the process environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. The
// default .env in the working directory is loaded once, if present; the CLI
// can point at other files with LoadEnv. Each configuration type is parsed
// once and cached, so the server, the build and the check commands all see
// the same values. Tests call ResetCache after changing the environment.
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config
