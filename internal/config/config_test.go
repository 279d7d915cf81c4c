package config

import "testing"

func TestBackendIsValid(t *testing.T) {
	valid := []Backend{BackendFile, BackendSQLite, BackendPostgres, BackendMongo, BackendS3}
	for _, b := range valid {
		if !b.IsValid() {
			t.Errorf("Expected backend %q to be valid", b)
		}
	}
	if Backend("redis").IsValid() {
		t.Error("Expected unknown backend to be invalid")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Expected file backend by default, got %q", cfg.Backend)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("Expected default CORS origins")
	}
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	t.Setenv("BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when DATABASE_URL is missing")
	}
}

func TestLoad_MongoRequiresURI(t *testing.T) {
	t.Setenv("BACKEND", "mongo")
	t.Setenv("MONGO_URI", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when MONGO_URI is missing")
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestLoad_Auth0RequiresAudience(t *testing.T) {
	t.Setenv("AUTH0_DOMAIN", "example.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "")

	if _, err := Load(); err == nil {
		t.Error("Expected error when AUTH0_AUDIENCE is missing")
	}
}
