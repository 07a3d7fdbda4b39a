package sim

import (
	"math/rand"

	"github.com/mbonnet/phagegrid/config"
)

// State owns the two agent populations, the DOM field and the running time
// series. It is created once per run and mutated only by Step; consumers read
// it between completed ticks.
type State struct {
	cfg *config.Config
	rng *rand.Rand

	Bacteria []*Bacterium
	Virions  []*Virion
	Field    *Field

	// Parallel time series, appended once per completed step.
	Tick           int
	Times          []int
	BacteriaCounts []int
	VirionCounts   []int
}

// New validates the configuration and builds the initial simulation state
// with a seeded generator. All randomness flows through that one generator,
// so runs with the same seed and configuration replay exactly.
func New(cfg *config.Config, seed int64) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	s := &State{
		cfg: cfg,
		rng: rng,
	}
	s.Bacteria, s.Virions = InitAgents(cfg, rng)
	s.Field = NewField(cfg.Grid.Width, cfg.Grid.Height, cfg.Resource.InitialDOM)
	return s, nil
}

// Biomasses returns the biomass of every live bacterium, in population order.
func (s *State) Biomasses() []float64 {
	out := make([]float64, len(s.Bacteria))
	for i, b := range s.Bacteria {
		out[i] = b.Biomass
	}
	return out
}

// BacteriumState is the read-only per-bacterium view exposed to consumers.
type BacteriumState struct {
	GroupID  int     `json:"group_id"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Biomass  float64 `json:"biomass"`
	Infected bool    `json:"infected"`
}

// VirionState is the read-only per-virion view exposed to consumers.
type VirionState struct {
	GroupID int `json:"group_id"`
	X       int `json:"x"`
	Y       int `json:"y"`
}

// Snapshot is a copy of the observable simulation state after a completed
// step: agent positions and attributes, the field grid, and current counts.
type Snapshot struct {
	Tick          int              `json:"tick"`
	GridWidth     int              `json:"grid_width"`
	GridHeight    int              `json:"grid_height"`
	Bacteria      []BacteriumState `json:"bacteria"`
	Virions       []VirionState    `json:"virions"`
	Field         []float64        `json:"field"`
	BacteriaCount int              `json:"bacteria_count"`
	VirionCount   int              `json:"virion_count"`
}

// Snapshot captures the current state for rendering or streaming. The copy
// shares nothing with the live state, so consumers can hold it across ticks.
func (s *State) Snapshot() Snapshot {
	bacteria := make([]BacteriumState, len(s.Bacteria))
	for i, b := range s.Bacteria {
		bacteria[i] = BacteriumState{
			GroupID:  b.GroupID,
			X:        b.X,
			Y:        b.Y,
			Biomass:  b.Biomass,
			Infected: b.Infected,
		}
	}
	virions := make([]VirionState, len(s.Virions))
	for i, v := range s.Virions {
		virions[i] = VirionState{GroupID: v.GroupID, X: v.X, Y: v.Y}
	}
	return Snapshot{
		Tick:          s.Tick,
		GridWidth:     s.Field.W,
		GridHeight:    s.Field.H,
		Bacteria:      bacteria,
		Virions:       virions,
		Field:         s.Field.Values(),
		BacteriaCount: len(s.Bacteria),
		VirionCount:   len(s.Virions),
	}
}
