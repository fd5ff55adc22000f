package setup

import (
	"context"
	"encoding/json"

	engineCommands "github.com/brachisto/brachisto-go/internal/application/engine/commands"
	engineQueries "github.com/brachisto/brachisto-go/internal/application/engine/queries"
	"github.com/brachisto/brachisto-go/internal/application/mediator"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
)

// Dispatcher translates wire-level actions (a name plus a JSON payload)
// into typed commands and sends them through the mediator. The
// websocket and CLI adapters both route player input through it.
type Dispatcher struct {
	mediator mediator.Mediator
}

// NewDispatcher creates a dispatcher bound to a configured mediator
func NewDispatcher(m mediator.Mediator) *Dispatcher {
	return &Dispatcher{mediator: m}
}

// Dispatch builds the command for the named action and sends it
func (d *Dispatcher) Dispatch(ctx context.Context, action string, payload map[string]any) (mediator.Response, error) {
	request, err := buildRequest(action, payload)
	if err != nil {
		return nil, err
	}
	return d.mediator.Send(ctx, request)
}

func buildRequest(action string, payload map[string]any) (mediator.Request, error) {
	p := params(payload)
	switch action {
	case "purchase_structure":
		zone, err := p.str("zone")
		if err != nil {
			return nil, err
		}
		building, err := p.str("building")
		if err != nil {
			return nil, err
		}
		return &engineCommands.PurchaseStructureCommand{
			Zone:     zone,
			Building: building,
			Enabled:  p.optBool("enabled"),
		}, nil

	case "recycle_factory":
		zone, err := p.str("zone")
		if err != nil {
			return nil, err
		}
		building, err := p.str("building")
		if err != nil {
			return nil, err
		}
		return &engineCommands.RecycleFactoryCommand{Zone: zone, Building: building}, nil

	case "set_factory_production":
		building, err := p.str("building")
		if err != nil {
			return nil, err
		}
		production, err := p.num("production")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetFactoryProductionCommand{
			Zone:       p.strOr("zone", ""),
			Building:   building,
			Production: production,
		}, nil

	case "purchase_probe":
		probeType, err := p.str("probe_type")
		if err != nil {
			return nil, err
		}
		// zone is optional; an empty zone lands the probe in the harvest zone
		return &engineCommands.PurchaseProbeCommand{ProbeType: probeType, Zone: p.strOr("zone", "")}, nil

	case "allocate_probes":
		zone, err := p.str("zone")
		if err != nil {
			return nil, err
		}
		return &engineCommands.AllocateProbesCommand{
			Zone:                  zone,
			MiningSlider:          p.optNum("mining_slider"),
			ReplicationSlider:     p.optNum("replication_slider"),
			DysonAllocationSlider: p.optNum("dyson_allocation_slider"),
			MinProbes:             p.optInt("min_probes"),
		}, nil

	case "set_harvest_zone":
		zone, err := p.str("zone")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetHarvestZoneCommand{Zone: zone}, nil

	case "set_activity_modifier":
		activity, err := p.str("activity")
		if err != nil {
			return nil, err
		}
		value, err := p.num("value")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetActivityModifierCommand{Activity: activity, Value: value}, nil

	case "allocate_research":
		tree, err := p.str("tree")
		if err != nil {
			return nil, err
		}
		tier, err := p.str("tier")
		if err != nil {
			return nil, err
		}
		return &engineCommands.AllocateResearchCommand{
			Tree:    tree,
			Tier:    tier,
			Enabled: p.boolOr("enabled", true),
		}, nil

	case "toggle_research_category":
		category, err := p.str("category")
		if err != nil {
			return nil, err
		}
		return &engineCommands.ToggleResearchCategoryCommand{
			Category: category,
			Enabled:  p.boolOr("enabled", true),
		}, nil

	case "set_economy_slider":
		value, err := p.num("value")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetEconomySliderCommand{Value: value}, nil

	case "set_mine_build_slider":
		value, err := p.num("value")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetMineBuildSliderCommand{Value: value}, nil

	case "set_build_allocation":
		value, err := p.num("value")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetBuildAllocationCommand{Value: value}, nil

	case "set_dyson_power_allocation":
		value, err := p.num("value")
		if err != nil {
			return nil, err
		}
		return &engineCommands.SetDysonPowerAllocationCommand{Value: value}, nil

	case "create_transfer":
		kind, err := p.str("type")
		if err != nil {
			return nil, err
		}
		from, err := p.str("from")
		if err != nil {
			return nil, err
		}
		to, err := p.str("to")
		if err != nil {
			return nil, err
		}
		return &engineCommands.CreateTransferCommand{
			Type:           kind,
			From:           from,
			To:             to,
			Count:          p.intOr("count", 0),
			RatePercentage: p.numOr("rate_percentage", 0),
		}, nil

	case "update_transfer":
		id, err := p.str("transfer_id")
		if err != nil {
			return nil, err
		}
		rate, err := p.num("rate_percentage")
		if err != nil {
			return nil, err
		}
		return &engineCommands.UpdateTransferCommand{TransferID: id, RatePercentage: rate}, nil

	case "pause_transfer":
		id, err := p.str("transfer_id")
		if err != nil {
			return nil, err
		}
		return &engineCommands.PauseTransferCommand{TransferID: id, Paused: p.boolOr("paused", true)}, nil

	case "reverse_transfer":
		id, err := p.str("transfer_id")
		if err != nil {
			return nil, err
		}
		return &engineCommands.ReverseTransferCommand{TransferID: id}, nil

	case "delete_transfer":
		id, err := p.str("transfer_id")
		if err != nil {
			return nil, err
		}
		return &engineCommands.DeleteTransferCommand{TransferID: id}, nil

	case "get_state":
		return &engineQueries.GetStateQuery{}, nil

	default:
		return nil, shared.NewUnknownActionError(action)
	}
}

// params wraps a decoded JSON payload with typed accessors. JSON
// numbers arrive as float64, so integer fields go through num first.
type params map[string]any

func (p params) str(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", shared.NewInvalidParameterError(key, "missing required parameter")
	}
	s, ok := v.(string)
	if !ok {
		return "", shared.NewInvalidParameterError(key, "expected a string")
	}
	return s, nil
}

func (p params) strOr(key, fallback string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return fallback
}

func (p params) num(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, shared.NewInvalidParameterError(key, "missing required parameter")
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, shared.NewInvalidParameterError(key, "expected a number")
	}
	return f, nil
}

func (p params) numOr(key string, fallback float64) float64 {
	if f, ok := toFloat(p[key]); ok {
		return f
	}
	return fallback
}

func (p params) intOr(key string, fallback int) int {
	if f, ok := toFloat(p[key]); ok {
		return int(f)
	}
	return fallback
}

func (p params) optNum(key string) *float64 {
	if f, ok := toFloat(p[key]); ok {
		return &f
	}
	return nil
}

func (p params) optInt(key string) *int {
	if f, ok := toFloat(p[key]); ok {
		n := int(f)
		return &n
	}
	return nil
}

func (p params) optBool(key string) *bool {
	if b, ok := p[key].(bool); ok {
		return &b
	}
	return nil
}

func (p params) boolOr(key string, fallback bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return fallback
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
