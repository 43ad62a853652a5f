package exprtree

// PostVisit folds the tree rooted at root bottom-up with the combining
// function fn. fn computes the result for node e from the already-combined
// results of its operands, given in left-to-right order; ctx carries
// whatever the walk needs beyond the tree (a variable name, a symbol map).
//
// The walk uses an explicit stack, so tree depth is bounded by memory rather
// than the goroutine stack. Results are memoized by node identity: a node
// reachable along several paths is combined exactly once. The first error
// returned by fn stops the walk and is returned as is.
func PostVisit[R, C any](root Expr, fn func(e Expr, operands []R, ctx C) (R, error), ctx C) (R, error) {
	var zero R
	if root == nil || isNilExpr(root) {
		return zero, ErrNilExpr
	}

	visited := map[Expr]R{}
	stack := []Expr{root}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, done := visited[e]; done {
			continue
		}

		operands := e.Operands()
		var unvisited []Expr
		for _, o := range operands {
			if _, done := visited[o]; !done {
				unvisited = append(unvisited, o)
			}
		}
		if len(unvisited) > 0 {
			stack = append(stack, e)
			stack = append(stack, unvisited...)
			continue
		}

		results := make([]R, len(operands))
		for i, o := range operands {
			results[i] = visited[o]
		}
		r, err := fn(e, results, ctx)
		if err != nil {
			return zero, err
		}
		visited[e] = r
	}
	return visited[root], nil
}
