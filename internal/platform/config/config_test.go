package config

import "testing"

func validConfig() Config {
	return Config{
		Addr:              ":8080",
		DatabaseURL:       "postgres://localhost/nomina",
		Environment:       "development",
		DefaultFiscalYear: 2024,
		MaxBodyBytes:      1048576,
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.RunSeed = false
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
	cfg.JWTSecret = "strong"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid production config, got %v", err)
	}
}

func TestValidateAcceptsDevelopmentDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}
