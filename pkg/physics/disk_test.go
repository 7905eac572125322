package physics

import (
	"math"
	"testing"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

func testDiskParams() DiskParams {
	return DiskParams{
		InnerRadius:         3.0,
		OuterRadius:         12.0,
		Temperature:         10.0, // 10000K peak
		TemperatureFalloff:  2.0,
		Brightness:          1.0,
		RotationSpeed:       1.0,
		DopplerStrength:     1.0,
		InnerSoftness:       0.1,
		OuterSoftness:       0.3,
		TurbulenceScale:     1.2,
		TurbulenceStretch:   2.0,
		TurbulenceSharpness: 2.5,
		CycleTime:           10.0,
		Lacunarity:          2.0,
		Persistence:         0.5,
	}
}

func TestDisk_TemperatureMonotonic(t *testing.T) {
	disk := testDiskParams()

	prev := disk.TemperatureAt(disk.InnerRadius)
	for r := disk.InnerRadius; r <= disk.OuterRadius; r += 0.05 {
		temp := disk.TemperatureAt(r)
		if temp > prev+1e-9 {
			t.Fatalf("Temperature increased with radius: %vK at r=%v after %vK", temp, r, prev)
		}
		prev = temp
	}

	if peak := disk.TemperatureAt(disk.InnerRadius); math.Abs(peak-10000) > 1e-6 {
		t.Errorf("Expected peak temperature 10000K at inner edge, got %v", peak)
	}
}

func TestDisk_InnerHitBluerThanOuterHit(t *testing.T) {
	disk := testDiskParams()
	disk.DopplerStrength = 0 // Compare raw blackbody colors

	rayDir := core.NewVec3(0, -1, 0)
	innerColor, _ := disk.Shade(3.0, 0, 0, rayDir)
	outerColor, _ := disk.Shade(12.0, 0, 0, rayDir)

	if innerColor.Z <= innerColor.X*0.9 {
		t.Errorf("Inner hit at 10000K should be blue-white, got %v", innerColor)
	}
	if outerColor.X <= outerColor.Z {
		t.Errorf("Outer hit should be predominantly red-orange, got %v", outerColor)
	}
	if innerColor.Z <= outerColor.Z {
		t.Errorf("Inner hit should carry more blue than outer hit: %v vs %v", innerColor.Z, outerColor.Z)
	}
}

func TestDisk_EdgeFalloffBoundary(t *testing.T) {
	disk := testDiskParams()

	if f := disk.edgeFalloff(0); f != 0 {
		t.Errorf("Expected zero opacity at inner edge, got %v", f)
	}
	if f := disk.edgeFalloff(1); f != 0 {
		t.Errorf("Expected zero opacity at outer edge, got %v", f)
	}
	if f := disk.edgeFalloff(0.5); f <= 0.9 {
		t.Errorf("Expected near-full opacity mid-disk, got %v", f)
	}
}

func TestDisk_CyclicContinuity(t *testing.T) {
	disk := testDiskParams()
	const eps = 1e-7

	for k := 1; k <= 3; k++ {
		boundary := float64(k) * disk.CycleTime
		before := disk.ringOpacity(5.0, 1.3, boundary-eps)
		after := disk.ringOpacity(5.0, 1.3, boundary+eps)

		if math.Abs(before-after) > 1e-3 {
			t.Errorf("Ring opacity discontinuous at cycle boundary %v: %v vs %v",
				boundary, before, after)
		}
	}
}

func TestDisk_DopplerBoost(t *testing.T) {
	disk := testDiskParams()

	// At phi=0 with positive rotation the orbital velocity points along +Z.
	// A ray traveling -Z comes from an observer the material moves toward.
	approaching := disk.dopplerBoost(3.0, 0, core.NewVec3(0, 0, -1))
	receding := disk.dopplerBoost(3.0, 0, core.NewVec3(0, 0, 1))

	if approaching <= 1.0 {
		t.Errorf("Approaching material should brighten, boost=%v", approaching)
	}
	if receding >= 1.0 {
		t.Errorf("Receding material should dim, boost=%v", receding)
	}

	// Boost decays with radius as orbital speed falls off
	outerBoost := disk.dopplerBoost(12.0, 0, core.NewVec3(0, 0, -1))
	if outerBoost >= approaching {
		t.Errorf("Boost should weaken with radius: %v at r=12 vs %v at r=3",
			outerBoost, approaching)
	}

	// Clamp holds under extreme settings
	disk.DopplerStrength = 50
	extreme := disk.dopplerBoost(3.0, 0, core.NewVec3(0, 0, -1))
	if extreme < 0.1 || extreme > 5.0 {
		t.Errorf("Boost escaped clamp [0.1, 5]: %v", extreme)
	}
}

func TestDisk_ShadeDeterminism(t *testing.T) {
	disk := testDiskParams()
	rayDir := core.NewVec3(0.3, -0.8, 0.5).Normalize()

	c1, a1 := disk.Shade(7.2, 2.1, 42.5, rayDir)
	c2, a2 := disk.Shade(7.2, 2.1, 42.5, rayDir)

	if c1 != c2 || a1 != a2 {
		t.Errorf("Shade not deterministic: (%v, %v) vs (%v, %v)", c1, a1, c2, a2)
	}
	if a1 < 0 || a1 > 1 {
		t.Errorf("Opacity out of [0,1]: %v", a1)
	}
}

func TestDisk_DegenerateParamsStayFinite(t *testing.T) {
	disk := testDiskParams()
	disk.TurbulenceStretch = 0
	disk.CycleTime = 0
	disk.InnerSoftness = 0
	disk.OuterSoftness = 0

	color, alpha := disk.Shade(5.0, 0.5, 3.0, core.NewVec3(0, -1, 0))
	for _, v := range []float64{color.X, color.Y, color.Z, alpha} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Degenerate parameters produced non-finite output: %v a=%v", color, alpha)
		}
	}
}
