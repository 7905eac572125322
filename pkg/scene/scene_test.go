package scene

import (
	"math"
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneName   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"edge-on scene", "edge-on", false},
		{"overhead scene", "overhead", false},
		{"disk-only scene", "disk-only", false},
		{"deep-field scene", "deep-field", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CreateScene(tt.sceneName)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, got none", tt.sceneName)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneName, err)
			}
			if s.Name != tt.sceneName {
				t.Errorf("Scene name mismatch: got %q, want %q", s.Name, tt.sceneName)
			}
			if err := s.Params.Validate(); err != nil {
				t.Errorf("Preset %q fails validation: %v", tt.sceneName, err)
			}
		})
	}
}

func TestSceneNamesMatchRegistry(t *testing.T) {
	for _, name := range SceneNames() {
		if _, err := CreateScene(name); err != nil {
			t.Errorf("SceneNames lists %q but CreateScene rejects it: %v", name, err)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Params)
		expectError bool
	}{
		{"defaults are valid", func(p *Params) {}, false},
		{"zero mass", func(p *Params) { p.Mass = 0 }, true},
		{"negative mass", func(p *Params) { p.Mass = -1 }, true},
		{"inner >= outer radius", func(p *Params) { p.Disk.InnerRadius = p.Disk.OuterRadius }, true},
		{"NaN step size", func(p *Params) { p.StepSize = math.NaN() }, true},
		{"zero step size", func(p *Params) { p.StepSize = 0 }, true},
		{"infinite mass", func(p *Params) { p.Mass = math.Inf(1) }, true},
		{"lacunarity below one", func(p *Params) { p.Disk.Lacunarity = 0.5 }, true},
		{"persistence at one", func(p *Params) { p.Disk.Persistence = 1.0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			err := p.Validate()
			if tt.expectError && err == nil {
				t.Errorf("Expected validation error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestEventHorizonRadius(t *testing.T) {
	p := DefaultParams()
	if r := p.EventHorizonRadius(); r != 2.0 {
		t.Errorf("Expected horizon radius 2 for mass 1, got %v", r)
	}

	p.Mass = 2.5
	if r := p.EventHorizonRadius(); r != 5.0 {
		t.Errorf("Expected horizon radius 5 for mass 2.5, got %v", r)
	}
}

func TestApplyQuality(t *testing.T) {
	tests := []struct {
		quality     Quality
		stepSize    float64
		stars       bool
		nebula      bool
		expectError bool
	}{
		{QualityLow, 1.2, false, false, false},
		{QualityMedium, 0.8, true, false, false},
		{QualityHigh, 0.5, true, true, false},
		{Quality("ultra"), 0, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			p := DefaultParams()
			originalDisk := p.Disk

			err := ApplyQuality(&p, tt.quality)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for quality %q", tt.quality)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if p.StepSize != tt.stepSize {
				t.Errorf("StepSize = %v, want %v", p.StepSize, tt.stepSize)
			}
			if p.Background.StarsEnabled != tt.stars || p.Background.NebulaEnabled != tt.nebula {
				t.Errorf("Background flags = (%v, %v), want (%v, %v)",
					p.Background.StarsEnabled, p.Background.NebulaEnabled, tt.stars, tt.nebula)
			}
			// Quality presets must not touch anything else
			if p.Disk != originalDisk {
				t.Errorf("Quality preset modified disk parameters")
			}
		})
	}
}

func TestDefaultDiskSitsAtISCO(t *testing.T) {
	p := DefaultParams()
	if p.Disk.InnerRadius != 3.0*p.EventHorizonRadius() {
		t.Errorf("Default inner radius should follow the 3x horizon convention: got %v, horizon %v",
			p.Disk.InnerRadius, p.EventHorizonRadius())
	}
}
