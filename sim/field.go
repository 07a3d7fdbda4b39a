package sim

import "gonum.org/v1/gonum/floats"

// Diffusion kernel weights: center, the four cardinal neighbors, the four
// diagonals. They sum to 1 so total mass is conserved under wraparound.
const (
	kernelCenter   = 0.4
	kernelCardinal = 0.1
	kernelDiagonal = 0.05
)

// Field is a toroidal grid of dissolved organic matter concentrations.
// Cells are stored row-major; a scratch buffer backs the diffusion pass.
type Field struct {
	W, H  int
	cells []float64
	tmp   []float64
}

// NewField creates a field with every cell set to the initial concentration.
func NewField(w, h int, initial float64) *Field {
	f := &Field{
		W:     w,
		H:     h,
		cells: make([]float64, w*h),
		tmp:   make([]float64, w*h),
	}
	for i := range f.cells {
		f.cells[i] = initial
	}
	return f
}

func (f *Field) idx(x, y int) int {
	return y*f.W + x
}

// ValueAt returns the concentration at (x, y).
func (f *Field) ValueAt(x, y int) float64 {
	return f.cells[f.idx(x, y)]
}

// Add adjusts the concentration at (x, y) by delta, clamping at zero.
// Uptake callers bound their withdrawal by ValueAt first; the clamp is a
// backstop, not a correctness mechanism.
func (f *Field) Add(x, y int, delta float64) {
	i := f.idx(x, y)
	f.cells[i] += delta
	if f.cells[i] < 0 {
		f.cells[i] = 0
	}
}

// Diffuse convolves the grid with the fixed 3x3 kernel under toroidal
// boundary handling, writing into the scratch buffer and swapping.
func (f *Field) Diffuse() {
	for y := 0; y < f.H; y++ {
		yN := wrapInt(y-1, f.H)
		yS := wrapInt(y+1, f.H)
		for x := 0; x < f.W; x++ {
			xW := wrapInt(x-1, f.W)
			xE := wrapInt(x+1, f.W)

			sum := kernelCenter * f.cells[f.idx(x, y)]
			sum += kernelCardinal * (f.cells[f.idx(x, yN)] + f.cells[f.idx(x, yS)] +
				f.cells[f.idx(xW, y)] + f.cells[f.idx(xE, y)])
			sum += kernelDiagonal * (f.cells[f.idx(xW, yN)] + f.cells[f.idx(xE, yN)] +
				f.cells[f.idx(xW, yS)] + f.cells[f.idx(xE, yS)])

			f.tmp[f.idx(x, y)] = sum
		}
	}
	f.cells, f.tmp = f.tmp, f.cells
}

// Total returns the summed concentration across all cells.
func (f *Field) Total() float64 {
	return floats.Sum(f.cells)
}

// Values returns a copy of the grid in row-major order.
func (f *Field) Values() []float64 {
	out := make([]float64, len(f.cells))
	copy(out, f.cells)
	return out
}

func wrapInt(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
