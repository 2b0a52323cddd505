package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}
	if s.Movement.WalkSpeed != 450 || s.Movement.SprintSpeed != 750 {
		t.Errorf("unexpected speeds %v/%v", s.Movement.WalkSpeed, s.Movement.SprintSpeed)
	}
	if s.Parkour.Detection.VaultMaxObstacleHeight != 80 || s.Parkour.Detection.MantleMaxObstacleHeight != 140 {
		t.Errorf("unexpected parkour thresholds %+v", s.Parkour.Detection)
	}
	if s.Movement.Slide.MaxSpeedDownhill != 2000 {
		t.Errorf("unexpected downhill cap %v", s.Movement.Slide.MaxSpeedDownhill)
	}
	if s.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", s.Logging.Level)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte(`
movement:
  sprint_speed: 900
  stamina:
    max: 150
parkour:
  detection:
    vault_max_obstacle_height: 70
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Movement.SprintSpeed != 900 || s.Movement.Stamina.Max != 150 {
		t.Errorf("file values were not applied: %+v", s.Movement)
	}
	if s.Movement.WalkSpeed != 450 || s.Movement.Stamina.RegenPerSec != 18 {
		t.Errorf("defaults were not kept: %+v", s.Movement)
	}
	if s.Parkour.Detection.VaultMaxObstacleHeight != 70 || s.Parkour.Detection.MantleMaxObstacleHeight != 140 {
		t.Errorf("unexpected detection settings %+v", s.Parkour.Detection)
	}
	if s.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", s.Logging.Level)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("empty path should return the defaults")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte(`
parkour:
  detection:
    vault_max_obstacle_height: 200
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected vault height above mantle height to be rejected")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected a missing file to fail")
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]func(s *Settings){
		"negative radius":      func(s *Settings) { s.Capsule.Radius = -1 },
		"sprint below walk":    func(s *Settings) { s.Movement.SprintSpeed = 100 },
		"sprint gate over max": func(s *Settings) { s.Movement.Stamina.MinToSprint = 500 },
		"zero min phase":       func(s *Settings) { s.Parkour.Durations.MinPhase = 0 },
		"negative duration":    func(s *Settings) { s.Parkour.Durations.MantleToTarget = -0.1 },
		"abort time of one":    func(s *Settings) { s.Parkour.Safety.MoveStepBlockAbortTime = 1 },
		"zero tick rate":       func(s *Settings) { s.Simulation.TickRate = 0 },
	}
	for name, mutate := range tests {
		s := DefaultSettings()
		mutate(&s)
		if err := s.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tuning.yaml")
	s := DefaultSettings()
	s.Movement.Slide.SteerAccel = 1234
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != s {
		t.Fatalf("saved settings did not survive a reload")
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := DefaultSettings().SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	s := DefaultSettings()
	s.Movement.WalkSpeed = 400
	if err := s.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case updated := <-w.Updates:
		if updated.Movement.WalkSpeed != 400 {
			t.Fatalf("expected reloaded walk speed 400, got %v", updated.Movement.WalkSpeed)
		}
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}
