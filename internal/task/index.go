package task

// Group partitions same-titled records on one side into open and done
// buckets, in snapshot order.
type Group struct {
	Open []Record
	Done []Record
}

// Index maps normalized title keys to their record groups for one snapshot.
type Index map[string]*Group

// BuildIndex groups a snapshot by normalized title. Records with empty
// titles are skipped. Iterating the same snapshot always yields the same
// grouping.
func BuildIndex(snap Snapshot) Index {
	ix := make(Index, len(snap))
	for _, rec := range snap {
		key := NormalizeTitle(rec.Title)
		if key == "" {
			continue
		}
		g := ix[key]
		if g == nil {
			g = &Group{}
			ix[key] = g
		}
		if rec.Completed {
			g.Done = append(g.Done, rec)
		} else {
			g.Open = append(g.Open, rec)
		}
	}
	return ix
}

// Match selects the representative record for a title, or ok=false when the
// index holds no record with that title. Open records are preferred; among
// multiple open records the first in snapshot order wins. With only done
// records, the most recently modified one is chosen.
func (ix Index) Match(title string) (Record, bool) {
	g, ok := ix[NormalizeTitle(title)]
	if !ok {
		return Record{}, false
	}
	if len(g.Open) > 0 {
		return g.Open[0], true
	}
	if len(g.Done) == 0 {
		return Record{}, false
	}
	best := g.Done[0]
	for _, rec := range g.Done[1:] {
		if rec.LastModified.After(best.LastModified) {
			best = rec
		}
	}
	return best, true
}

// Has reports whether any record with the given title exists in the index.
func (ix Index) Has(title string) bool {
	_, ok := ix.Match(title)
	return ok
}
