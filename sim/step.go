package sim

// StepEvents counts what happened during one tick, for the telemetry layer.
type StepEvents struct {
	Infections    int
	NaturalDeaths int
	Lyses         int
	Spawned       int
	Decayed       int
	Uptake        float64
}

// Step advances the simulation one tick and appends to the time series.
//
// Pass order is fixed and load-bearing: field diffusion, bacterial
// growth/uptake, bacterial movement, infection scan, virion movement,
// mortality and lysis, viral decay plus burst merge, time-series append.
// Random draws occur in this order within a tick: one move draw per bacterium
// (population order), one uniform draw per eligible co-located virion/
// bacterium pair (virion outer loop, bacterium inner), one move draw per
// virion, one mortality draw per bacterium, one decay draw per pre-existing
// virion. Growth consumes no draws, lysis consumes no draws beyond the
// mortality draw, and burst virions take no draws on their spawn tick.
func (s *State) Step() StepEvents {
	t := s.Tick
	var ev StepEvents

	s.Field.Diffuse()

	// Growth and uptake happen at each bacterium's pre-move cell.
	for _, b := range s.Bacteria {
		uptake := b.Grow(s.Field.ValueAt(b.X, b.Y))
		if uptake > 0 {
			s.Field.Add(b.X, b.Y, -uptake)
			ev.Uptake += uptake
		}
	}
	for _, b := range s.Bacteria {
		b.Move(s.Field.W, s.Field.H, s.rng)
	}

	// Infection checks use the post-move bacterial positions and the virions'
	// pre-move positions. A virion may try every co-located bacterium; a
	// bacterium is infected at most once, further checks are no-ops.
	for _, v := range s.Virions {
		for _, b := range s.Bacteria {
			if b.X == v.X && b.Y == v.Y {
				if b.TryInfect(v, t, s.rng, s.cfg.Infection.CorrectedDraw) {
					ev.Infections++
				}
			}
		}
	}
	for _, v := range s.Virions {
		v.Move(s.Field.W, s.Field.H, s.rng)
	}

	// Natural death is checked first and takes precedence over lysis: a
	// bacterium that dies naturally bursts nothing even when past the lag.
	// Burst virions are staged so they skip this tick's decay pass.
	var staged []*Virion
	survivors := s.Bacteria[:0]
	for _, b := range s.Bacteria {
		p := s.cfg.Mortality.Linear + s.cfg.Mortality.Quadratic*b.Biomass
		if s.rng.Float64() < p {
			ev.NaturalDeaths++
			continue
		}
		if b.Infected && t-b.InfectionTime >= s.cfg.Virus.InfectionLag {
			for i := 0; i < s.cfg.Virus.BurstSize; i++ {
				staged = append(staged, &Virion{GroupID: b.GroupID, X: b.X, Y: b.Y})
			}
			ev.Lyses++
			ev.Spawned += s.cfg.Virus.BurstSize
			continue
		}
		survivors = append(survivors, b)
	}
	s.Bacteria = survivors

	alive := s.Virions[:0]
	for _, v := range s.Virions {
		if s.rng.Float64() <= s.cfg.Virus.DecayRate {
			ev.Decayed++
			continue
		}
		alive = append(alive, v)
	}
	s.Virions = append(alive, staged...)

	s.Times = append(s.Times, t)
	s.BacteriaCounts = append(s.BacteriaCounts, len(s.Bacteria))
	s.VirionCounts = append(s.VirionCounts, len(s.Virions))
	s.Tick++

	return ev
}
