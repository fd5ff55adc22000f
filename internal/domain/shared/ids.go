package shared

import (
	"fmt"
	"strings"
)

// ZoneID identifies an orbital zone (e.g. "mercury", "dyson_forge")
type ZoneID string

func (z ZoneID) String() string {
	return string(z)
}

// BuildingID identifies a structure type (e.g. "mining_rig", "solar_array")
type BuildingID string

func (b BuildingID) String() string {
	return string(b)
}

// ProbeTypeID identifies a probe design
type ProbeTypeID string

func (p ProbeTypeID) String() string {
	return string(p)
}

// TreeID identifies a research tree (e.g. "propulsion_systems")
type TreeID string

func (t TreeID) String() string {
	return string(t)
}

// TierID identifies a tier within a research tree
type TierID string

func (t TierID) String() string {
	return string(t)
}

// ConstructionKey is a value object addressing a structure build site:
// one building type under construction in one zone
type ConstructionKey struct {
	Zone     ZoneID
	Building BuildingID
}

func NewConstructionKey(zone ZoneID, building BuildingID) ConstructionKey {
	return ConstructionKey{Zone: zone, Building: building}
}

// String renders the key in the wire form "zone::building" used by
// save snapshots and the action payloads
func (k ConstructionKey) String() string {
	return fmt.Sprintf("%s::%s", k.Zone, k.Building)
}

// ParseConstructionKey parses the "zone::building" wire form
func ParseConstructionKey(s string) (ConstructionKey, error) {
	parts := strings.SplitN(s, "::", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ConstructionKey{}, fmt.Errorf("invalid construction key %q: expected zone::building", s)
	}
	return ConstructionKey{Zone: ZoneID(parts[0]), Building: BuildingID(parts[1])}, nil
}
