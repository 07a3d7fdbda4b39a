// Package sim implements the bacteria/phage lattice simulation: two agent
// populations on a toroidal grid coupled to a diffusing nutrient field.
package sim

import "math/rand"

// Bacterium is a single bacterial cell. Traits (GroupID, GrowthRate,
// Resistance) are fixed at creation; Biomass only grows until death.
type Bacterium struct {
	GroupID       int
	GrowthRate    float64
	Resistance    float64
	Biomass       float64
	Infected      bool
	InfectionTime int // tick of infection; meaningful only while Infected
	X, Y          int
}

// Virion is a free viral particle. It carries no state beyond position and
// the bacterial group it can infect.
type Virion struct {
	GroupID int
	X, Y    int
}

// moveOptions holds the five equiprobable moves: the four cardinal steps and
// "stay". The order is fixed so seeded runs replay identically.
var moveOptions = [5][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}, {0, 0}}

// randomStep draws one move option and applies toroidal wrap on both axes.
// Shared by both agent kinds; consumes exactly one draw.
func randomStep(x, y, w, h int, rng *rand.Rand) (int, int) {
	opt := moveOptions[rng.Intn(len(moveOptions))]
	return wrapInt(x+opt[0], w), wrapInt(y+opt[1], h)
}

// Move steps the bacterium one cell in a random direction, or leaves it in place.
func (b *Bacterium) Move(w, h int, rng *rand.Rand) {
	b.X, b.Y = randomStep(b.X, b.Y, w, h, rng)
}

// Move steps the virion one cell in a random direction, or leaves it in place.
func (v *Virion) Move(w, h int, rng *rand.Rand) {
	v.X, v.Y = randomStep(v.X, v.Y, w, h, rng)
}

// Grow uptakes nutrient scaled by growth rate, bounded by what the cell
// holds, and adds it to biomass. Infected bacteria stop growing entirely.
// Returns the uptake so the caller can deduct it from the field.
func (b *Bacterium) Grow(resource float64) float64 {
	if b.Infected {
		return 0
	}
	uptake := b.GrowthRate * resource
	if uptake > resource {
		uptake = resource
	}
	if uptake < 0 {
		uptake = 0
	}
	b.Biomass += uptake
	return uptake
}

// TryInfect runs one infection check against a co-located virion. It is a
// no-op for already-infected bacteria and for group mismatches (infection is
// group-specific); otherwise it consumes exactly one uniform draw. With
// correctedDraw false the historical comparison applies (draw < resistance
// infects); with it true, resistance lowers infection probability instead.
func (b *Bacterium) TryInfect(v *Virion, tick int, rng *rand.Rand, correctedDraw bool) bool {
	if b.Infected || v.GroupID != b.GroupID {
		return false
	}
	draw := rng.Float64()
	infected := draw < b.Resistance
	if correctedDraw {
		infected = draw >= b.Resistance
	}
	if infected {
		b.Infected = true
		b.InfectionTime = tick
	}
	return infected
}
