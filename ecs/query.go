package ecs

// intersect returns the entities present in every set. sets[0] should be the
// smallest; it drives the walk.
func intersect(sets []*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	out := make([]Entity, 0, sets[0].Len())
outer:
	for _, e := range sets[0].Entities() {
		for _, s := range sets[1:] {
			if !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
