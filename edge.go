package backdrop

// Edge is a line joining two scene objects. Its endpoints follow the
// objects every frame; the pairing itself never changes.
type Edge struct {
	A, B     *VisualObject
	From, To Vec3
	Style    Style
}

// BuildEdges joins every pair of objects closer than threshold. Pairs are
// evaluated once, at the positions the objects have now.
func BuildEdges(nodes []*VisualObject, threshold float64, style Style) []*Edge {
	var edges []*Edge
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if a.Position.Dist(b.Position) >= threshold {
				continue
			}
			e := &Edge{A: a, B: b, Style: style}
			e.refresh()
			edges = append(edges, e)
		}
	}
	return edges
}

// refresh copies the current endpoint positions.
func (e *Edge) refresh() {
	e.From = e.A.Position
	e.To = e.B.Position
}
