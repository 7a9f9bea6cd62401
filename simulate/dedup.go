package simulate

import (
	"sort"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// Dedup merges dye tracks produced by DyeTracks into one entry per
// distinct track value, recording each contributing peptide's total hit
// count across every draw that produced it. This is the reduce step of
// dedup-dye-tracks.h's map-reduce pass, done in a single process: the
// corpus carries no MapReduce dependency to wire, and distributed
// execution is out of scope.
func Dedup(tracks []model.SourcedData[model.DyeTrack, model.SourceCount]) []model.SourcedData[model.DyeTrack, model.SourceCountHitsList] {
	type bucket struct {
		track model.DyeTrack
		hits  map[int]*model.SourceCountHits
	}
	buckets := make(map[uint64][]*bucket)
	var order []*bucket

	for _, t := range tracks {
		h := t.Value.Hash()
		var b *bucket
		for _, cand := range buckets[h] {
			if cand.track.Equal(t.Value) {
				b = cand
				break
			}
		}
		if b == nil {
			b = &bucket{track: t.Value, hits: make(map[int]*model.SourceCountHits)}
			buckets[h] = append(buckets[h], b)
			order = append(order, b)
		}
		if sc, ok := b.hits[t.Source.ID]; ok {
			sc.Hits++
		} else {
			b.hits[t.Source.ID] = &model.SourceCountHits{ID: t.Source.ID, Count: t.Source.Count, Hits: 1}
		}
	}

	if len(order) == 0 {
		return nil
	}
	out := make([]model.SourcedData[model.DyeTrack, model.SourceCountHitsList], len(order))
	for i, b := range order {
		list := make(model.SourceCountHitsList, 0, len(b.hits))
		for _, sc := range b.hits {
			list = append(list, *sc)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		out[i] = model.SourcedData[model.DyeTrack, model.SourceCountHitsList]{Value: b.track, Source: list}
	}
	return out
}
