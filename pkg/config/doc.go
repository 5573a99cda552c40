// Package config loads environment variables into typed configuration
// structs.
//
// Load parses `env` struct tags via caarlos0/env, after loading a `.env`
// file once per process when one exists:
//
//	type HTTPConfig struct {
//		Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
//		ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg HTTPConfig
//	if err := config.Load(&cfg); err != nil { ... }
//
// MustLoad panics on failure and suits configuration the process cannot
// start without.
package config
