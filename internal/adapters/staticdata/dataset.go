// Package staticdata provides the statics.Provider implementations:
// an immutable in-memory dataset, a YAML file loader, and the built-in
// solar system defaults the engine ships with.
package staticdata

import (
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Dataset is an immutable statics.Provider backed by in-memory tables
type Dataset struct {
	zones     []statics.ZoneDef
	probes    []statics.ProbeDef
	buildings []statics.BuildingDef
	trees     []statics.ResearchTreeDef

	zoneIndex     map[shared.ZoneID]statics.ZoneDef
	probeIndex    map[shared.ProbeTypeID]statics.ProbeDef
	buildingIndex map[shared.BuildingID]statics.BuildingDef
	treeIndex     map[shared.TreeID]statics.ResearchTreeDef
}

// NewDataset builds a dataset from definition slices. Later entries
// with a duplicate id replace earlier ones.
func NewDataset(
	zones []statics.ZoneDef,
	probes []statics.ProbeDef,
	buildings []statics.BuildingDef,
	trees []statics.ResearchTreeDef,
) *Dataset {
	d := &Dataset{
		zones:         zones,
		probes:        probes,
		buildings:     buildings,
		trees:         trees,
		zoneIndex:     make(map[shared.ZoneID]statics.ZoneDef, len(zones)),
		probeIndex:    make(map[shared.ProbeTypeID]statics.ProbeDef, len(probes)),
		buildingIndex: make(map[shared.BuildingID]statics.BuildingDef, len(buildings)),
		treeIndex:     make(map[shared.TreeID]statics.ResearchTreeDef, len(trees)),
	}
	for _, z := range zones {
		d.zoneIndex[z.ID] = z
	}
	for _, p := range probes {
		d.probeIndex[p.ID] = p
	}
	for _, b := range buildings {
		d.buildingIndex[b.ID] = b
	}
	for _, t := range trees {
		d.treeIndex[t.ID] = t
	}
	return d
}

// Zones returns every zone definition in declaration order
func (d *Dataset) Zones() []statics.ZoneDef {
	return d.zones
}

// Zone looks up a zone by id
func (d *Dataset) Zone(id shared.ZoneID) (statics.ZoneDef, bool) {
	z, ok := d.zoneIndex[id]
	return z, ok
}

// Probes returns every probe definition in declaration order
func (d *Dataset) Probes() []statics.ProbeDef {
	return d.probes
}

// Probe looks up a probe design by id
func (d *Dataset) Probe(id shared.ProbeTypeID) (statics.ProbeDef, bool) {
	p, ok := d.probeIndex[id]
	return p, ok
}

// Buildings returns every building definition in declaration order
func (d *Dataset) Buildings() []statics.BuildingDef {
	return d.buildings
}

// Building looks up a building by id
func (d *Dataset) Building(id shared.BuildingID) (statics.BuildingDef, bool) {
	b, ok := d.buildingIndex[id]
	return b, ok
}

// ResearchTrees returns every research tree in declaration order
func (d *Dataset) ResearchTrees() []statics.ResearchTreeDef {
	return d.trees
}

// ResearchTree looks up a research tree by id
func (d *Dataset) ResearchTree(id shared.TreeID) (statics.ResearchTreeDef, bool) {
	t, ok := d.treeIndex[id]
	return t, ok
}
