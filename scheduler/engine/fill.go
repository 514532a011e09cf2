package engine

// PlaceFill places fill requests into a copy of an existing, possibly
// partially occupied grid. It runs the same candidate scan as primary
// placement exactly once, with no retry loop: a request with no free
// candidate is recorded as leftover and placement continues with the rest.
// A length-1 fill request degenerates to "any single free cell" through
// the same code path as longer runs.
//
// Leftover names are reported in submission order regardless of the order
// requests were tried in, so callers see stable output under any strategy.
func (e *SchedulerEngine) PlaceFill(grid *Grid, requests []SessionRequest) (*FillResult, error) {
	if grid == nil {
		var err error
		grid, err = NewGrid(e.config.Blocks, e.config.Rooms)
		if err != nil {
			return nil, err
		}
	}

	next := grid.Clone()

	ordered := e.orderRequests(requests)

	placed := make(map[int]bool, len(requests))
	used := make([]bool, len(requests))
	for _, req := range ordered {
		// Resolve the submission index of this ordered entry. Duplicate
		// (name, length) pairs map to the first unused match.
		idx := -1
		for i, orig := range requests {
			if !used[i] && orig == req {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}
		used[idx] = true

		if e.placeFirstFit(next, req) {
			placed[idx] = true
		}
	}

	leftover := []string{}
	for i, req := range requests {
		if !placed[i] {
			leftover = append(leftover, req.Name)
		}
	}

	return &FillResult{
		Grid:        next,
		Leftover:    leftover,
		EmptyBlocks: next.EmptyBlocks(),
	}, nil
}
