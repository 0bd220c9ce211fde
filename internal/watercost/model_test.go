package watercost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost_Electric(t *testing.T) {
	m := New()

	out := m.Cost(350, 2, PumpElectric, 15)

	volume := 350 * m3PerMMAcre * 2
	assert.InDelta(t, volume, out.LiftedVolumeM3, 1e-6)
	assert.InDelta(t, volume*15*0.08, out.Electricity, 1e-6)
	assert.InDelta(t, 2000, out.BorewellMaintenance, 1e-9)
	assert.InDelta(t, out.Electricity+2000, out.TotalSeason, 1e-6)
	assert.InDelta(t, out.TotalSeason/350, out.PerMM, 1e-9)
	assert.True(t, out.EnergySubsidyApplied)
}

func TestCost_DieselCostsMoreThanElectric(t *testing.T) {
	m := New()

	electric := m.Cost(500, 1, PumpElectric, 18)
	diesel := m.Cost(500, 1, PumpDiesel, 18)
	solar := m.Cost(500, 1, PumpSolar, 18)

	assert.Greater(t, diesel.TotalSeason, electric.TotalSeason)
	assert.Less(t, solar.TotalSeason, electric.TotalSeason)
	assert.False(t, diesel.EnergySubsidyApplied)
}

func TestCost_DeepBoreSurcharge(t *testing.T) {
	m := New()

	shallow := m.Cost(100, 1, PumpElectric, 20)
	deep := m.Cost(100, 1, PumpElectric, 32)

	assert.InDelta(t, 2000, shallow.BorewellMaintenance, 1e-9)
	assert.InDelta(t, 2000+12*50, deep.BorewellMaintenance, 1e-9)
}

func TestCost_InputGuards(t *testing.T) {
	m := New()

	// Unknown pump prices as electric.
	out := m.Cost(100, 1, "windmill", 10)
	assert.Equal(t, PumpElectric, out.PumpType)

	// Zero water still pays maintenance.
	out = m.Cost(0, 1, PumpElectric, 10)
	assert.Zero(t, out.Electricity)
	assert.InDelta(t, 2000, out.TotalSeason, 1e-9)
	assert.Zero(t, out.PerMM)

	// Depth is floored at the minimum operating lift.
	atFloor := m.Cost(100, 1, PumpElectric, 0)
	assert.InDelta(t, m.Cost(100, 1, PumpElectric, 5).TotalSeason, atFloor.TotalSeason, 1e-9)

	// Non-positive acreage defaults to a single acre.
	oneAcre := m.Cost(100, 1, PumpElectric, 10)
	assert.InDelta(t, oneAcre.TotalSeason, m.Cost(100, 0, PumpElectric, 10).TotalSeason, 1e-9)
}

func TestComparePumpTypes(t *testing.T) {
	m := New()

	out := m.ComparePumpTypes(450, 22, 2)
	require.Len(t, out, 3)
	for _, pump := range []string{PumpElectric, PumpDiesel, PumpSolar} {
		cost, ok := out[pump]
		require.True(t, ok, pump)
		assert.Equal(t, pump, cost.PumpType)
		assert.Positive(t, cost.TotalSeason)
	}
}
