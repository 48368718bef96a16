package db

import (
	"strings"
	"testing"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     3306,
		Username: "atlas",
		Password: "pw",
		DBName:   "atlas",
	})
	if !strings.HasPrefix(dsn, "atlas:pw@tcp(127.0.0.1:3306)/atlas?") {
		t.Fatalf("dsn = %q", dsn)
	}
	// DATETIME→time.Time 変換、UTC固定、一致行数カウントは全ストア共通の前提
	for _, want := range []string{"parseTime=true", "loc=UTC", "clientFoundRows=true"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn missing %s: %q", want, dsn)
		}
	}
}
