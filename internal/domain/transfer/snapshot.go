package transfer

// Snapshot copies every transfer for persistence, in creation order
func (s *System) Snapshot() []Transfer {
	out := make([]Transfer, 0, len(s.order))
	for _, t := range s.List() {
		c := *t
		c.InTransit = append([]Batch(nil), t.InTransit...)
		out = append(out, c)
	}
	return out
}

// Restore replaces the system's contents with a saved set of transfers
func (s *System) Restore(transfers []Transfer) {
	s.transfers = make(map[string]*Transfer, len(transfers))
	s.order = s.order[:0]
	for i := range transfers {
		c := transfers[i]
		c.InTransit = append([]Batch(nil), transfers[i].InTransit...)
		if c.ID == "" {
			c.ID = s.newID()
		}
		s.add(&c)
	}
}
