package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCrop(t *testing.T) {
	catalog := CropCatalog()

	byID, ok := FindCrop(catalog, "sugarcane")
	require.True(t, ok)
	assert.Equal(t, "Sugarcane", byID.Name)

	byName, ok := FindCrop(catalog, "jowar (sorghum)")
	require.True(t, ok)
	assert.Equal(t, "jowar", byName.ID)

	// Prefix match on the display name.
	prefix, ok := FindCrop(catalog, "Rice")
	require.True(t, ok)
	assert.Equal(t, "rice", prefix.ID)

	_, ok = FindCrop(catalog, "quinoa")
	assert.False(t, ok)

	_, ok = FindCrop(catalog, "   ")
	assert.False(t, ok)
}

func TestSupportsSoil(t *testing.T) {
	wheat, ok := FindCrop(CropCatalog(), "wheat")
	require.True(t, ok)

	assert.True(t, wheat.SupportsSoil("Clay"))
	assert.True(t, wheat.SupportsSoil("clay"))
	assert.False(t, wheat.SupportsSoil("Sandy"))
	assert.True(t, wheat.SupportsSoil(""), "unknown soil must not exclude crops")
}

func TestSupportsZone(t *testing.T) {
	catalog := CropCatalog()
	sugarcane, ok := FindCrop(catalog, "sugarcane")
	require.True(t, ok)
	wheat, ok := FindCrop(catalog, "wheat")
	require.True(t, ok)

	assert.True(t, sugarcane.SupportsZone("Western Maharashtra"))
	assert.False(t, sugarcane.SupportsZone("Vidarbha"))

	// Crops listing the General zone grow anywhere.
	assert.True(t, wheat.SupportsZone("Vidarbha"))
	assert.True(t, wheat.SupportsZone("Konkan"))
}

func TestCropCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range CropCatalog() {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.Positive(t, c.WaterRequirementMM)
		assert.Positive(t, c.DurationDays)
	}
}
