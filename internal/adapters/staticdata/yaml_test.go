package staticdata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/adapters/staticdata"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

const minimalYAML = `
zones:
  - id: rock
    total_mass_kg: 1e12
  - id: forge
    radius_au: 0.29
    is_dyson_zone: true
probes:
  - id: probe
buildings:
  - id: panel
    cost_metal: 500
    effects:
      power_output_w: 1e6
      uses_solar: true
research_trees:
  - id: robotics
    category: dexterity
    tiers:
      - id: tier_i
        tranches: 10
        total_bonus: 0.25
`

func TestParse_FillsDefaults(t *testing.T) {
	ds, err := staticdata.Parse([]byte(minimalYAML))
	require.NoError(t, err)

	rock, ok := ds.Zone("rock")
	require.True(t, ok)
	assert.Equal(t, "rock", rock.Name)
	assert.Equal(t, statics.DefaultZoneRadiusAU, rock.RadiusAU)
	assert.Equal(t, statics.DefaultMetalPercentage, rock.MetalPercentage)
	assert.Equal(t, statics.DefaultMiningMultiplier, rock.MiningRateMultiplier)
	assert.Equal(t, 1e12, rock.TotalMassKg)

	forge, ok := ds.Zone("forge")
	require.True(t, ok)
	assert.True(t, forge.IsDysonZone)
	assert.Equal(t, 0.29, forge.RadiusAU)

	probe, ok := ds.Probe("probe")
	require.True(t, ok)
	assert.Equal(t, statics.DefaultProbeCostMetal, probe.BaseCostMetal)
	assert.Equal(t, statics.DefaultProbeDexterity, probe.BaseDexterity)

	panel, ok := ds.Building("panel")
	require.True(t, ok)
	assert.Equal(t, 500.0, panel.CostMetal)
	assert.True(t, panel.Effects.UsesSolar)
	assert.Equal(t, 1e6, panel.Effects.PowerOutputW)

	tree, ok := ds.ResearchTree("robotics")
	require.True(t, ok)
	require.Len(t, tree.Tiers, 1)
	assert.Equal(t, 0.25, tree.Tiers[0].TotalBonus)
}

func TestParse_RejectsEmptyIDs(t *testing.T) {
	cases := map[string]string{
		"zone":     "zones:\n  - name: unnamed\n",
		"probe":    "probes:\n  - name: unnamed\n",
		"building": "buildings:\n  - name: unnamed\n",
		"tree":     "research_trees:\n  - name: unnamed\n",
		"tier":     "research_trees:\n  - id: tree\n    tiers:\n      - name: unnamed\n",
	}
	for label, raw := range cases {
		_, err := staticdata.Parse([]byte(raw))
		assert.Error(t, err, "case %s", label)
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := staticdata.Parse([]byte("zones: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))

	ds, err := staticdata.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, ds.Zones(), 2)

	_, err = staticdata.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewDataset_LaterDuplicateWins(t *testing.T) {
	ds := staticdata.NewDataset([]statics.ZoneDef{
		{ID: "rock", RadiusAU: 1},
		{ID: "rock", RadiusAU: 2},
	}, nil, nil, nil)

	z, ok := ds.Zone("rock")
	require.True(t, ok)
	assert.Equal(t, 2.0, z.RadiusAU)
}

func TestDefault_DatasetIsInternallyConsistent(t *testing.T) {
	ds := staticdata.Default()

	require.NotEmpty(t, ds.Zones())
	require.NotEmpty(t, ds.Probes())
	require.NotEmpty(t, ds.Buildings())
	require.NotEmpty(t, ds.ResearchTrees())

	// Exactly one Dyson construction zone
	dysonZones := 0
	for _, z := range ds.Zones() {
		if z.IsDysonZone {
			dysonZones++
		}
		assert.Positive(t, z.RadiusAU, "zone %s", z.ID)
	}
	assert.Equal(t, 1, dysonZones)

	// The default new-game start zone and probe design exist
	_, ok := ds.Zone("earth")
	assert.True(t, ok)
	_, ok = ds.Probe("probe")
	assert.True(t, ok)

	// Mining probe designs draw the shared baseline wattage
	miner, ok := ds.Probe("heavy_miner")
	require.True(t, ok)
	assert.Equal(t, shared.ProbeMiningDrawW, miner.IdleDrawW)

	// Every cross-reference resolves
	for _, b := range ds.Buildings() {
		for _, prereq := range b.Prerequisites {
			_, ok := ds.Building(prereq)
			assert.True(t, ok, "building %s prerequisite %s", b.ID, prereq)
		}
		for _, zoneID := range b.AllowedZones {
			_, ok := ds.Zone(zoneID)
			assert.True(t, ok, "building %s allowed zone %s", b.ID, zoneID)
		}
	}
	for _, p := range ds.Probes() {
		for _, prereq := range p.Prerequisites {
			_, ok := ds.Building(prereq)
			assert.True(t, ok, "probe %s prerequisite %s", p.ID, prereq)
		}
	}
	for _, tree := range ds.ResearchTrees() {
		assert.NotEmpty(t, tree.Tiers, "tree %s", tree.ID)
		assert.NotEmpty(t, tree.Category, "tree %s", tree.ID)
	}
}
