package geohash

// Grid returns the (2*steps+1) square of cells centered on hash. Rows run
// from top to bottom and columns from left to right, so the center cell is
// Grid[steps][steps]. Negative steps are treated as zero.
func Grid(hash string, steps int) ([][]string, error) {
	h, err := normalize(hash)
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		steps = 0
	}
	size := 2*steps + 1

	// middle column first, then every row grows out of its column cell
	column := make([]string, size)
	column[steps] = h
	for i := steps - 1; i >= 0; i-- {
		column[i] = adjacent(column[i+1], Top)
	}
	for i := steps + 1; i < size; i++ {
		column[i] = adjacent(column[i-1], Bottom)
	}

	grid := make([][]string, size)
	for r, center := range column {
		grid[r] = row(center, steps)
	}
	return grid, nil
}

// Row returns the middle row of Grid, left to right.
func Row(hash string, steps int) ([]string, error) {
	h, err := normalize(hash)
	if err != nil {
		return nil, err
	}
	if steps < 0 {
		steps = 0
	}
	return row(h, steps), nil
}

func row(center string, steps int) []string {
	size := 2*steps + 1
	out := make([]string, size)
	out[steps] = center
	for i := steps - 1; i >= 0; i-- {
		out[i] = adjacent(out[i+1], Left)
	}
	for i := steps + 1; i < size; i++ {
		out[i] = adjacent(out[i-1], Right)
	}
	return out
}

// ColumnMajor flattens a grid column by column.
func ColumnMajor(grid [][]string) []string {
	if len(grid) == 0 {
		return nil
	}
	out := make([]string, 0, len(grid)*len(grid[0]))
	for c := range grid[0] {
		for r := range grid {
			out = append(out, grid[r][c])
		}
	}
	return out
}
