package service

import (
	"context"
	"testing"
	"time"

	"github.com/arkhew/moneta/moneta-backend/internal/domain"
	"github.com/arkhew/moneta/moneta-backend/internal/testutil"
)

func TestSettingsService_LoadDefaultsWhenMissing(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo, nil)
	svc.Load(context.Background())

	settings := svc.Get()
	if settings.Theme != domain.ThemeSystem {
		t.Errorf("Expected system theme by default, got %q", settings.Theme)
	}
	if settings.OnboardingSeen {
		t.Error("Expected onboarding not seen by default")
	}
}

func TestSettingsService_LoadRepairsInvalidTheme(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	repo.Settings = &domain.Settings{Theme: "neon", OnboardingSeen: true}
	svc := NewSettingsService(repo, nil)
	svc.Load(context.Background())

	settings := svc.Get()
	if settings.Theme != domain.ThemeSystem {
		t.Errorf("Expected invalid theme repaired to system, got %q", settings.Theme)
	}
	if !settings.OnboardingSeen {
		t.Error("Expected onboarding flag preserved")
	}
}

func TestSettingsService_UpdateValidatesTheme(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo, nil)

	if _, err := svc.Update(domain.Settings{Theme: "neon"}); err != domain.ErrInvalidInput {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestSettingsService_UpdatePersists(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo, nil)

	updated, err := svc.Update(domain.Settings{Theme: domain.ThemeDark, OnboardingSeen: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Theme != domain.ThemeDark {
		t.Errorf("Expected dark theme, got %q", updated.Theme)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		settings, err := repo.LoadSettings(context.Background())
		if err == nil && settings.Theme == domain.ThemeDark {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Expected settings persisted")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
