package lattice

// NewTorus builds the periodic nearest-neighbour square lattice used by the
// worked examples (spec §8, scenario S1: 2x2 torus, all J_ij = 1; S2/S3: 3x3
// ferromagnet). Site (x,y) maps to index y*side+x; each site is coupled to
// its four orthogonal neighbours with strength j, wrapping at the edges.
// Under energy.Total's sign convention a negative j is ferromagnetic.
func NewTorus(side int, j float64) *Couplings {
	n := side * side
	c := NewEmpty(n)
	idx := func(x, y int) int {
		x = ((x % side) + side) % side
		y = ((y % side) + side) % side
		return y*side + x
	}
	offsets := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			i := idx(x, y)
			for _, off := range offsets {
				c.addEdge(i, idx(x+off[0], y+off[1]), j)
			}
		}
	}
	return c
}
