// Package transfer moves probes between zones with transit delay:
// one-shot convoys and continuous pipelines that scale with the source
// zone's population.
package transfer

import (
	"math"

	"github.com/google/uuid"

	"github.com/brachisto/brachisto-go/internal/domain/research"
	"github.com/brachisto/brachisto-go/internal/domain/shared"
	"github.com/brachisto/brachisto-go/internal/domain/statics"
)

// Kind distinguishes the transfer lifecycle
type Kind string

const (
	OneTime    Kind = "one_time"
	Continuous Kind = "continuous"
)

// Batch is one group of probes in flight. The destination is pinned at
// departure so reversing a transfer never redirects probes mid-flight.
type Batch struct {
	Count       int
	Destination shared.ZoneID
	Departure   float64
	Arrival     float64
}

// Transfer is one configured probe route
type Transfer struct {
	ID             string
	From           shared.ZoneID
	To             shared.ZoneID
	Kind           Kind
	Paused         bool
	RatePercentage float64 // continuous: percent of source population per day
	InTransit      []Batch
	Fractional     float64 // continuous: sub-probe accrual carried across ticks
	Created        float64
}

// InFlight counts this transfer's probes currently in transit
func (t *Transfer) InFlight() int {
	total := 0
	for _, b := range t.InTransit {
		total += b.Count
	}
	return total
}

// System owns every configured transfer
type System struct {
	provider  statics.Provider
	research  *research.Model
	transfers map[string]*Transfer
	order     []string
	newID     func() string
}

type Option func(*System)

// WithIDGenerator overrides transfer id generation, for reproducible tests
func WithIDGenerator(gen func() string) Option {
	return func(s *System) { s.newID = gen }
}

func NewSystem(provider statics.Provider, res *research.Model, opts ...Option) *System {
	s := &System{
		provider:  provider,
		research:  res,
		transfers: make(map[string]*Transfer),
		newID:     uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns a transfer by id
func (s *System) Get(id string) (*Transfer, bool) {
	t, ok := s.transfers[id]
	return t, ok
}

// List returns transfers in creation order
func (s *System) List() []*Transfer {
	out := make([]*Transfer, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.transfers[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// InTransitTotal counts every probe in flight across all transfers,
// needed by the global conservation check
func (s *System) InTransitTotal() int {
	total := 0
	for _, t := range s.transfers {
		total += t.InFlight()
	}
	return total
}

func (s *System) validateRoute(from, to shared.ZoneID) error {
	if _, ok := s.provider.Zone(from); !ok {
		return shared.NewInvalidZoneError(from)
	}
	if _, ok := s.provider.Zone(to); !ok {
		return shared.NewInvalidZoneError(to)
	}
	if from == to {
		return shared.NewInvalidTransferError("source and destination zones are the same")
	}
	return nil
}

// CreateOneTime debits count probes from the source immediately and
// puts them in flight as a single batch
func (s *System) CreateOneTime(from, to shared.ZoneID, count int, now float64, probes map[shared.ZoneID]int, structures map[shared.ZoneID]map[shared.BuildingID]int) (*Transfer, error) {
	if err := s.validateRoute(from, to); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, shared.NewInvalidTransferError("transfer count must be positive")
	}
	if available := probes[from]; count > available {
		return nil, shared.NewInsufficientResourceError("probes", float64(count), float64(available))
	}

	t := &Transfer{
		ID:      s.newID(),
		From:    from,
		To:      to,
		Kind:    OneTime,
		Created: now,
	}
	probes[from] -= count
	t.InTransit = append(t.InTransit, Batch{
		Count:       count,
		Destination: to,
		Departure:   now,
		Arrival:     now + s.TransitDays(from, to, structures[from], now),
	})
	s.add(t)
	return t, nil
}

// CreateContinuous configures a pipeline moving ratePct percent of the
// source zone's current population per day
func (s *System) CreateContinuous(from, to shared.ZoneID, ratePct, now float64) (*Transfer, error) {
	if err := s.validateRoute(from, to); err != nil {
		return nil, err
	}
	if ratePct <= 0 || ratePct > shared.MaxTransferRatePct {
		return nil, shared.NewInvalidTransferError("transfer rate must be in (0, 100] percent per day")
	}

	t := &Transfer{
		ID:             s.newID(),
		From:           from,
		To:             to,
		Kind:           Continuous,
		RatePercentage: ratePct,
		Created:        now,
	}
	s.add(t)
	return t, nil
}

func (s *System) add(t *Transfer) {
	s.transfers[t.ID] = t
	s.order = append(s.order, t.ID)
}

// UpdateRate changes a continuous transfer's rate
func (s *System) UpdateRate(id string, ratePct float64) error {
	t, ok := s.transfers[id]
	if !ok {
		return shared.NewTransferNotFoundError(id)
	}
	if t.Kind != Continuous {
		return shared.NewInvalidTransferError("only continuous transfers have a rate")
	}
	if ratePct <= 0 || ratePct > shared.MaxTransferRatePct {
		return shared.NewInvalidTransferError("transfer rate must be in (0, 100] percent per day")
	}
	t.RatePercentage = ratePct
	return nil
}

// SetPaused pauses or resumes future sends. In-flight batches keep moving.
func (s *System) SetPaused(id string, paused bool) error {
	t, ok := s.transfers[id]
	if !ok {
		return shared.NewTransferNotFoundError(id)
	}
	t.Paused = paused
	return nil
}

// Reverse swaps source and destination for future sends
func (s *System) Reverse(id string) error {
	t, ok := s.transfers[id]
	if !ok {
		return shared.NewTransferNotFoundError(id)
	}
	t.From, t.To = t.To, t.From
	t.Fractional = 0
	return nil
}

// Delete removes a transfer. Probes already in flight are returned to
// the source zone rather than destroyed.
func (s *System) Delete(id string, probes map[shared.ZoneID]int) error {
	t, ok := s.transfers[id]
	if !ok {
		return shared.NewTransferNotFoundError(id)
	}
	for _, b := range t.InTransit {
		probes[t.From] += b.Count
	}
	delete(s.transfers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Tick resolves arrivals and enqueues the next continuous batches.
// Continuous rates are re-derived from the source zone's current
// population every tick, so pipelines scale organically.
func (s *System) Tick(now, deltaDays float64, probes map[shared.ZoneID]int, structures map[shared.ZoneID]map[shared.BuildingID]int) {
	var finished []string
	for _, id := range s.order {
		t, ok := s.transfers[id]
		if !ok {
			continue
		}

		remaining := t.InTransit[:0]
		for _, b := range t.InTransit {
			if b.Arrival <= now {
				probes[b.Destination] += b.Count
			} else {
				remaining = append(remaining, b)
			}
		}
		t.InTransit = remaining

		switch t.Kind {
		case OneTime:
			if len(t.InTransit) == 0 {
				finished = append(finished, id)
			}
		case Continuous:
			if t.Paused || deltaDays <= 0 {
				continue
			}
			source := float64(probes[t.From])
			want := source*t.RatePercentage/100*deltaDays + t.Fractional
			send := int(math.Floor(want))
			if send > probes[t.From] {
				send = probes[t.From]
			}
			t.Fractional = math.Min(want-float64(send), 1)
			if send <= 0 {
				continue
			}
			probes[t.From] -= send
			t.InTransit = append(t.InTransit, Batch{
				Count:       send,
				Destination: t.To,
				Departure:   now,
				Arrival:     now + s.TransitDays(t.From, t.To, structures[t.From], now),
			})
		}
	}

	for _, id := range finished {
		delete(s.transfers, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
