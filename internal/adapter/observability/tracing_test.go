package observability

import (
	"testing"

	"github.com/fairyhunter13/ats-matcher/internal/config"
)

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown != nil {
		t.Fatalf("expected nil shutdown when endpoint unset")
	}
}
