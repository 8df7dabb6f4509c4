package ir

// ReversePostorder returns the blocks reachable from the entry in reverse
// postorder. Successors are visited in branch order, so a loop body comes
// right after the block that enters it and the exit block follows.
func (p *Program) ReversePostorder() []BlockID {
	if p.Block(p.Entry) == nil {
		return nil
	}

	visited := make(map[BlockID]bool)
	var postorder []BlockID

	var dfs func(id BlockID)
	dfs = func(id BlockID) {
		if visited[id] {
			return
		}
		visited[id] = true

		block := p.Block(id)
		if block == nil {
			return
		}

		// Visit the fall-through (IfNot) side first so the taken side ends up
		// earlier in the final order.
		succs := block.Successors()
		for i := len(succs) - 1; i >= 0; i-- {
			dfs(succs[i])
		}

		postorder = append(postorder, id)
	}

	dfs(p.Entry)

	order := make([]BlockID, len(postorder))
	for i, id := range postorder {
		order[len(postorder)-1-i] = id
	}
	return order
}

// Predecessors maps each block to the blocks that branch to it
func (p *Program) Predecessors() map[BlockID][]BlockID {
	preds := make(map[BlockID][]BlockID)
	for _, b := range p.Blocks {
		for _, s := range b.Successors() {
			preds[s] = append(preds[s], b.ID)
		}
	}
	return preds
}
