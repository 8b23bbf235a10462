package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset(t *testing.T) {
	p, err := Preset(DefaultPreset)
	require.NoError(t, err)
	assert.Equal(t, "AISI 1005 Steel", p.Name)
	assert.Equal(t, 7872.0, p.Density)
	assert.Equal(t, 200e9, p.YoungsModulus)
	assert.Equal(t, 0.29, p.PoissonRatio)

	_, err = Preset("unobtainium")
	assert.ErrorContains(t, err, "unknown material preset")
}

func TestPresetKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"aisi-1005", "aisi-4340", "al-6061-t6"}, PresetKeys())
}

func TestPresetsAreAdmissible(t *testing.T) {
	for _, k := range PresetKeys() {
		p, _ := Preset(k)
		assert.NoError(t, CheckElastic(p.YoungsModulus, p.PoissonRatio), k)
	}
}

func TestCheckElastic(t *testing.T) {
	tests := []struct {
		name    string
		e, nu   float64
		wantErr bool
	}{
		{"steel", 200e9, 0.29, false},
		{"zero poisson", 1e9, 0, false},
		{"zero modulus", 0, 0.3, true},
		{"negative modulus", -1, 0.3, true},
		{"incompressible", 1e9, 0.5, true},
		{"negative poisson", 1e9, -0.1, true},
		{"nan modulus", math.NaN(), 0.3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckElastic(tt.e, tt.nu)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDerivedModuli(t *testing.T) {
	assert.InDelta(t, 77.519e9, ShearModulus(200e9, 0.29), 1e6)
	assert.InDelta(t, 158.73e9, BulkModulus(200e9, 0.29), 1e7)
	// steel dilatational wave speed is close to 5.9 km/s
	assert.InDelta(t, 5800, WaveSpeed(200e9, 0.29, 7872), 200)
	assert.Zero(t, WaveSpeed(200e9, 0.29, 0))
}
