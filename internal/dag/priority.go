package dag

// ComputeHELT assigns priorities with the rank-based HELT heuristic.
//
// The first pass computes each node's upward rank, the weight of the longest
// path from the node to any sink. Nodes are then ordered by ascending rank
// (ties keep index order) and node at position p receives deadline - p, where
// deadline = now + relative deadline. The node with the highest rank thus ends
// up with the smallest value: the source of a task, whose rank is the longest
// path, gets the lowest number and the lowest-ranked sink gets the deadline
// itself.
//
// Values of different tasks are only ordered by position, not by deadline, so
// tasks whose deadlines lie close together may interleave unpredictably.
func (t *Task) ComputeHELT(now int64) {
	if len(t.nodes) == 0 {
		return
	}
	t.computeRanks()

	t.deadline = now + t.relativeDeadline

	// Insertion sort keeps equal ranks in index order and needs no
	// allocation; tasks are small.
	order := t.order[:0]
	for i := range t.nodes {
		order = append(order, i)
		for j := len(order) - 1; j > 0 && t.nodes[order[j-1]].Prio > t.nodes[order[j]].Prio; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	t.order = order

	for pos, idx := range order {
		t.nodes[idx].Prio = t.deadline - int64(pos)
	}
}

// computeRanks writes the upward rank of every node into Prio. Index order is
// a topological order, so one reverse pass sees every successor first.
func (t *Task) computeRanks() {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if len(n.outs) == 0 {
			n.Prio = n.Weight
			continue
		}
		best := t.nodes[n.outs[0]].Prio
		for _, succ := range n.outs[1:] {
			if p := t.nodes[succ].Prio; p > best {
				best = p
			}
		}
		n.Prio = n.Weight + best
	}
}

// ComputeHLBS assigns priorities with the slack-based HLBS heuristic: every
// node gets the latest absolute time it may start so that all of its
// successors can still finish by now + relative deadline. Lower values are
// more urgent.
func (t *Task) ComputeHLBS(now int64) {
	if len(t.nodes) == 0 {
		return
	}
	t.deadline = now + t.relativeDeadline

	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if len(n.outs) == 0 {
			n.Prio = t.deadline - n.Weight
			continue
		}
		latest := t.nodes[n.outs[0]].Prio
		for _, succ := range n.outs[1:] {
			if p := t.nodes[succ].Prio; p < latest {
				latest = p
			}
		}
		n.Prio = latest - n.Weight
	}
}
