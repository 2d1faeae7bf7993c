package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *StaticCatalog {
	return NewStaticCatalog(StaticCatalogData{
		ICD10GM: map[string][]string{
			"2019": {"C25.0", "C34.1"},
		},
		ICDO3Topography: map[string][]string{
			"2014": {"C25.0"},
		},
		ICDO3Morphology: map[string][]string{
			"2014": {"8140/3"},
		},
		ATC: []string{"L01BC02"},
	})
}

func TestStaticCatalog_ICD10GM(t *testing.T) {
	c := testCatalog()

	set, ok := c.ICD10GM("2019")
	assert.True(t, ok)
	assert.True(t, set.Contains("C25.0"))
	assert.False(t, set.Contains("Z99.9"))

	_, ok = c.ICD10GM("2099")
	assert.False(t, ok)
}

func TestStaticCatalog_ICDO3(t *testing.T) {
	c := testCatalog()

	topo, ok := c.ICDO3Topography("2014")
	assert.True(t, ok)
	assert.True(t, topo.Contains("C25.0"))

	morph, ok := c.ICDO3Morphology("2014")
	assert.True(t, ok)
	assert.True(t, morph.Contains("8140/3"))
	assert.False(t, morph.Contains("9999/9"))
}

func TestStaticCatalog_ATC(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.ATC().Contains("L01BC02"))
	assert.False(t, c.ATC().Contains("X00XX00"))
}

func TestStaticCatalog_VersionPredicates(t *testing.T) {
	c := testCatalog()
	assert.True(t, c.ICD10GMVersion("2019"))
	assert.False(t, c.ICD10GMVersion("2020"))
	assert.True(t, c.ICDO3Version("2014"))
	assert.False(t, c.ICDO3Version("2015"))
}
