package ontology

// RChildren returns the descendants of t reachable through Children.
//
// level bounds the number of hops: 0 returns an empty list, a negative level
// is unbounded. With intermediate set, every descendant within the bound is
// returned; otherwise only the children of the terms expanded on the last
// hop. An unbounded walk without intermediate therefore returns an empty
// list.
//
// Each term, t included, is expanded at most once, the first time it is
// reached, so the walk ends after at most one hop per reachable term
// whatever the bound. The result is deduplicated by identifier and sorted.
func (t *Term) RChildren(level int, intermediate bool) TermList {
	if level == 0 || (level < 0 && !intermediate) {
		return TermList{}
	}

	found := make(map[string]*Term)
	expanded := map[string]bool{t.id: true}
	frontier := TermList{t}

	for remaining := level; remaining != 0 && len(frontier) > 0; remaining-- {
		collect := intermediate || remaining == 1
		var next TermList

		for _, n := range frontier {
			for _, c := range n.Children() {
				if collect {
					if _, ok := found[c.id]; !ok {
						found[c.id] = c
					}
				}
				if expanded[c.id] {
					continue
				}
				expanded[c.id] = true
				next = append(next, c)
			}
		}
		frontier = next
	}

	out := make(TermList, 0, len(found))
	for _, c := range found {
		out = append(out, c)
	}
	return out.Sorted()
}
