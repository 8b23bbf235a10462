package material

import (
	"fmt"
	"math"
	"sort"
)

// Isotropic linear-elastic limits
const (
	// PoissonMax is the exclusive upper bound of ν for a stable isotropic solid
	PoissonMax = 0.5
	// PoissonMin is the lower bound accepted for engineering metals and polymers
	PoissonMin = 0.0
)

// Properties holds the density and elastic constants of an isotropic material (SI units)
type Properties struct {
	Name          string  // Name used for the material record in the model
	Density       float64 // ρ (kg/m³)
	YoungsModulus float64 // E (Pa)
	PoissonRatio  float64 // ν
}

var presets = map[string]Properties{
	// AISI 1005 low carbon steel
	"aisi-1005": {Name: "AISI 1005 Steel", Density: 7872, YoungsModulus: 200e9, PoissonRatio: 0.29},
	// AISI 4340 alloy steel, normalized
	"aisi-4340": {Name: "AISI 4340 Steel", Density: 7850, YoungsModulus: 205e9, PoissonRatio: 0.29},
	// Aluminium 6061-T6
	"al-6061-t6": {Name: "Aluminum 6061-T6", Density: 2700, YoungsModulus: 68.9e9, PoissonRatio: 0.33},
}

// DefaultPreset is the material the beam is built from unless told otherwise
const DefaultPreset = "aisi-1005"

// Preset returns the named material preset
func Preset(key string) (Properties, error) {
	p, ok := presets[key]
	if !ok {
		return Properties{}, fmt.Errorf("unknown material preset %q (available: %v)", key, PresetKeys())
	}
	return p, nil
}

// PresetKeys lists preset keys in sorted order
func PresetKeys() []string {
	keys := make([]string, 0, len(presets))
	for k := range presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CheckElastic verifies a (E, ν) pair describes a physically admissible isotropic solid
func CheckElastic(e, nu float64) error {
	if math.IsNaN(e) || math.IsInf(e, 0) || e <= 0 {
		return fmt.Errorf("Young's modulus must be positive, got %g", e)
	}
	if math.IsNaN(nu) || nu < PoissonMin || nu >= PoissonMax {
		return fmt.Errorf("Poisson's ratio must be in [%g, %g), got %g", PoissonMin, PoissonMax, nu)
	}
	return nil
}

// ShearModulus calculates G = E / 2(1 + ν)
func ShearModulus(e, nu float64) float64 {
	return e / (2 * (1 + nu))
}

// BulkModulus calculates K = E / 3(1 - 2ν)
func BulkModulus(e, nu float64) float64 {
	return e / (3 * (1 - 2*nu))
}

// WaveSpeed calculates the dilatational wave speed of the material (m/s).
// The explicit solver's stable time increment scales with element size over this speed.
func WaveSpeed(e, nu, density float64) float64 {
	if density <= 0 {
		return 0
	}
	lambda := e * nu / ((1 + nu) * (1 - 2*nu))
	mu := ShearModulus(e, nu)
	return math.Sqrt((lambda + 2*mu) / density)
}
