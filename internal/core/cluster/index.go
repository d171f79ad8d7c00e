package cluster

import "lookalike/internal/core/match"

// index buckets record positions by their exact phone, email and phonetic keys
type index struct {
	records []match.Record
	phones  map[string][]int
	emails  map[string][]int
	names   map[string][]int

	// per record keys, computed once
	phoneKey []string
	emailKey []string
	nameKey  []string
}

func buildIndex(records []match.Record, processed Processed) *index {
	ix := &index{
		records:  records,
		phones:   make(map[string][]int),
		emails:   make(map[string][]int),
		names:    make(map[string][]int),
		phoneKey: make([]string, len(records)),
		emailKey: make([]string, len(records)),
		nameKey:  make([]string, len(records)),
	}
	for i, r := range records {
		ix.phoneKey[i] = match.NormalizePhone(r.PhoneNumber)
		ix.emailKey[i] = match.NormalizeEmail(r.Email)
		ix.nameKey[i] = match.PhoneticKey(r.FullName)

		if processed.Has(r.ID) {
			continue
		}
		if k := ix.phoneKey[i]; k != "" {
			ix.phones[k] = append(ix.phones[k], i)
		}
		if k := ix.emailKey[i]; k != "" {
			ix.emails[k] = append(ix.emails[k], i)
		}
		if k := ix.nameKey[i]; k != "" {
			ix.names[k] = append(ix.names[k], i)
		}
	}
	return ix
}

// found accumulates duplicates of one anchor in discovery order
type found struct {
	order []string
	byID  map[string]*match.Candidate
}

func (f *found) add(r match.Record, sim float64, reason ...match.Reason) {
	if c, ok := f.byID[r.ID]; ok {
		if sim > c.Similarity {
			c.Similarity = sim
		}
		for _, x := range reason {
			c.Reasons = c.Reasons.Add(x)
		}
		return
	}
	c := match.FromRecord(r, match.Signal{Similarity: sim, Reasons: reason})
	f.byID[r.ID] = &c
	f.order = append(f.order, r.ID)
}

// clusterFor gathers the duplicates of records[i] from the three buckets
func (ix *index) clusterFor(i int, processed Processed, threshold float64) (Cluster, bool) {
	anchor := ix.records[i]
	f := &found{byID: make(map[string]*match.Candidate)}
	var triggered match.Reasons

	others := func(bucket []int, fn func(j int)) {
		for _, j := range bucket {
			other := ix.records[j]
			if j == i || other.ID == anchor.ID || processed.Has(other.ID) {
				continue
			}
			fn(j)
		}
	}

	if k := ix.phoneKey[i]; k != "" {
		others(ix.phones[k], func(j int) {
			f.add(ix.records[j], match.ExactScore, match.ExactPhone)
			triggered = triggered.Add(match.ExactPhone)
		})
	}
	if k := ix.emailKey[i]; k != "" {
		others(ix.emails[k], func(j int) {
			f.add(ix.records[j], match.ExactScore, match.ExactEmail)
			triggered = triggered.Add(match.ExactEmail)
		})
	}
	if k := ix.nameKey[i]; k != "" {
		others(ix.names[k], func(j int) {
			sim := match.NamePartSimilarity(anchor.FullName, ix.records[j].FullName)
			if sim < threshold {
				return
			}
			f.add(ix.records[j], sim, match.SimilarSoundingName, match.SimilarNameParts)
			triggered = triggered.Add(match.SimilarSoundingName).Add(match.SimilarNameParts)
		})
	}

	if len(f.order) == 0 {
		return Cluster{}, false
	}

	c := Cluster{
		Members: make([]match.Candidate, 0, len(f.order)+1),
		Reasons: triggered,
	}
	c.Members = append(c.Members, match.FromRecord(anchor, match.Signal{Similarity: match.ExactScore, Reasons: triggered}))
	for _, id := range f.order {
		m := *f.byID[id]
		if m.Similarity > c.Similarity {
			c.Similarity = m.Similarity
		}
		c.Members = append(c.Members, m)
	}
	return c, true
}
