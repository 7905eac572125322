package store

import (
	"path/filepath"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	sc := scene.NewDefaultScene()
	sc.Name = "my-tuned-view"
	sc.Params.Disk.Temperature = 9.5
	sc.Params.LensingStrength = 1.4

	if err := s.SavePreset(sc); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}

	loaded, err := s.LoadPreset("my-tuned-view")
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}

	if loaded.Name != sc.Name {
		t.Errorf("Name mismatch: got %q, want %q", loaded.Name, sc.Name)
	}
	if loaded.Params != sc.Params {
		t.Errorf("Params did not round-trip:\ngot  %+v\nwant %+v", loaded.Params, sc.Params)
	}
	if loaded.Camera != sc.Camera {
		t.Errorf("Camera did not round-trip: got %+v, want %+v", loaded.Camera, sc.Camera)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	sc := scene.NewDefaultScene()
	sc.Name = "work-in-progress"
	if err := s.SavePreset(sc); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	sc.Params.Mass = 2.0
	if err := s.SavePreset(sc); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	loaded, err := s.LoadPreset("work-in-progress")
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if loaded.Params.Mass != 2.0 {
		t.Errorf("Overwrite not persisted: mass = %v", loaded.Params.Mass)
	}

	names, err := s.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("Expected 1 preset after overwrite, got %v", names)
	}
}

func TestStore_RejectsInvalidPreset(t *testing.T) {
	s := openTestStore(t)

	sc := scene.NewDefaultScene()
	sc.Name = "broken"
	sc.Params.Mass = -1

	if err := s.SavePreset(sc); err == nil {
		t.Errorf("Expected validation error for negative mass")
	}

	sc = scene.NewDefaultScene()
	sc.Name = ""
	if err := s.SavePreset(sc); err == nil {
		t.Errorf("Expected error for empty preset name")
	}
}

func TestStore_LoadMissingPreset(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.LoadPreset("nope"); err == nil {
		t.Errorf("Expected error loading missing preset")
	}
	if err := s.DeletePreset("nope"); err == nil {
		t.Errorf("Expected error deleting missing preset")
	}
}

func TestStore_SessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	// No session yet
	loaded, err := s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded != nil {
		t.Fatalf("Expected nil session in fresh store, got %+v", loaded)
	}

	sc := scene.NewDeepFieldScene()
	sc.Params.Disk.RotationSpeed = -0.5
	if err := s.SaveSession(sc); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err = s.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if loaded == nil || loaded.Params != sc.Params {
		t.Errorf("Session did not round-trip")
	}

	// Overwrite with a different scene
	other := scene.NewDiskOnlyScene()
	if err := s.SaveSession(other); err != nil {
		t.Fatalf("SaveSession overwrite failed: %v", err)
	}
	loaded, _ = s.LoadSession()
	if loaded == nil || loaded.Name != "disk-only" {
		t.Errorf("Session overwrite not persisted, got %+v", loaded)
	}
}
