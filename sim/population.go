package sim

import (
	"math/rand"

	"github.com/mbonnet/phagegrid/config"
)

// InitAgents builds the founder populations. Group ids are assigned
// round-robin in creation order; each bacterial group gets a growth rate from
// the linear trade-off (lower group id, higher growth rate) and the
// complementary resistance. Positions are uniform random draws, two per
// bacterium then two per virion, so a fixed seed reproduces the layout.
func InitAgents(cfg *config.Config, rng *rand.Rand) ([]*Bacterium, []*Virion) {
	bacteria := make([]*Bacterium, 0, cfg.Population.Bacteria)
	virions := make([]*Virion, 0, cfg.Population.Viruses)

	groups := cfg.Population.Groups
	for i := 0; i < cfg.Population.Bacteria; i++ {
		group := i % groups
		growth := cfg.Tradeoff.Base + cfg.Tradeoff.Slope*(1-float64(group)/float64(groups))
		bacteria = append(bacteria, &Bacterium{
			GroupID:    group,
			GrowthRate: growth,
			Resistance: 1 - growth,
			Biomass:    1.0,
			X:          rng.Intn(cfg.Grid.Width),
			Y:          rng.Intn(cfg.Grid.Height),
		})
	}

	for i := 0; i < cfg.Population.Viruses; i++ {
		virions = append(virions, &Virion{
			GroupID: i % groups,
			X:       rng.Intn(cfg.Grid.Width),
			Y:       rng.Intn(cfg.Grid.Height),
		})
	}

	return bacteria, virions
}
