package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "Unit vector unchanged",
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "Diagonal vector",
			vector:   NewVec3(3, 0, 4),
			expected: NewVec3(0.6, 0, 0.8),
		},
		{
			name:     "Zero vector stays zero",
			vector:   NewVec3(0, 0, 0),
			expected: NewVec3(0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{
			name:     "X cross Y is Z",
			a:        NewVec3(1, 0, 0),
			b:        NewVec3(0, 1, 0),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Y cross X is -Z",
			a:        NewVec3(0, 1, 0),
			b:        NewVec3(1, 0, 0),
			expected: NewVec3(0, 0, -1),
		},
		{
			name:     "Parallel vectors give zero",
			a:        NewVec3(2, 2, 0),
			b:        NewVec3(1, 1, 0),
			expected: NewVec3(0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, -6)

	mid := a.Lerp(b, 0.5)
	expected := NewVec3(1, 2, -3)
	if mid.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, mid)
	}

	if start := a.Lerp(b, 0); start != a {
		t.Errorf("Lerp at t=0 should return start, got %v", start)
	}
	if end := a.Lerp(b, 1); end.Subtract(b).Length() > 1e-9 {
		t.Errorf("Lerp at t=1 should return end, got %v", end)
	}
}

func TestVec3_GammaCorrect(t *testing.T) {
	color := NewVec3(0.25, 1.0, 0.0)
	result := color.GammaCorrect(2.0)

	if math.Abs(result.X-0.5) > 1e-9 {
		t.Errorf("Expected 0.25^(1/2) = 0.5, got %v", result.X)
	}
	if math.Abs(result.Y-1.0) > 1e-9 {
		t.Errorf("Gamma correction should leave 1.0 unchanged, got %v", result.Y)
	}
	if result.Z != 0 {
		t.Errorf("Gamma correction should leave 0 unchanged, got %v", result.Z)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	point := ray.At(2.5)
	expected := NewVec3(1, 2, 0.5)

	if point.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}
