package main

import (
	"path/filepath"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/store"
)

func TestLoadScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"edge-on scene", "edge-on", false},
		{"overhead scene", "overhead", false},
		{"disk-only scene", "disk-only", false},
		{"deep-field scene", "deep-field", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := loadScene(tt.sceneName, "")

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneName, err)
			}
			if sc == nil {
				t.Fatalf("Expected scene for %q, got nil", tt.sceneName)
			}
			if sc.Name != tt.sceneName {
				t.Errorf("Scene name mismatch: got %q, want %q", sc.Name, tt.sceneName)
			}
			if err := sc.Params.Validate(); err != nil {
				t.Errorf("Built-in scene %q has invalid params: %v", tt.sceneName, err)
			}
		})
	}
}

func TestLoadScene_PresetDatabaseWins(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "presets.db")

	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// Store a preset shadowing the built-in "default" scene
	sc, err := loadScene("default", "")
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	sc.Params.Mass = 3.0
	if err := db.SavePreset(sc); err != nil {
		t.Fatalf("SavePreset failed: %v", err)
	}
	db.Close()

	loaded, err := loadScene("default", dbPath)
	if err != nil {
		t.Fatalf("loadScene with db failed: %v", err)
	}
	if loaded.Params.Mass != 3.0 {
		t.Errorf("Expected stored preset to shadow built-in, got mass %v", loaded.Params.Mass)
	}

	// Names not in the database still fall back to built-ins
	builtin, err := loadScene("edge-on", dbPath)
	if err != nil {
		t.Fatalf("Fallback to built-in failed: %v", err)
	}
	if builtin.Name != "edge-on" {
		t.Errorf("Expected built-in edge-on scene, got %q", builtin.Name)
	}
}
