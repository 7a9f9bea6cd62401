package ioformat

import (
	"fmt"
	"io"

	"github.com/fluoroseq-project/fluoroseq/model"
)

// ReadDyeTracks reads the dye-tracks file format: a three-line header
// "numTimesteps", "numChannels", "numDyeTracks", then one line per track:
// its T*C counts, the number of contributing sources, and id/count/hits
// triplets for each, grounded on dye-tracks-io.cc's
// convert_dye_tracks_from_raw.
func ReadDyeTracks(r io.Reader) ([]model.SourcedData[model.DyeTrack, model.SourceCountHitsList], int, int, error) {
	s := newLineScanner(r)
	numTimesteps, err := readHeaderInt(s)
	if err != nil {
		return nil, 0, 0, err
	}
	numChannels, err := readHeaderInt(s)
	if err != nil {
		return nil, 0, 0, err
	}
	numDyeTracks, err := readHeaderInt(s)
	if err != nil {
		return nil, 0, 0, err
	}

	out := make([]model.SourcedData[model.DyeTrack, model.SourceCountHitsList], 0, numDyeTracks)
	cellsPerTrack := numTimesteps * numChannels
	for i := 0; i < numDyeTracks; i++ {
		fields, ok := s.next()
		if !ok {
			return nil, 0, 0, s.errf("expected %d dye tracks, got %d", numDyeTracks, i)
		}
		if len(fields) < cellsPerTrack+1 {
			return nil, 0, 0, s.errf("dye track row too short: want at least %d fields, got %d", cellsPerTrack+1, len(fields))
		}
		track := model.NewDyeTrack(numTimesteps, numChannels)
		for j := 0; j < cellsPerTrack; j++ {
			v, err := parseInt(s, fields[j])
			if err != nil {
				return nil, 0, 0, err
			}
			track.Counts[j] = v
		}
		numSources, err := parseInt(s, fields[cellsPerTrack])
		if err != nil {
			return nil, 0, 0, err
		}
		want := cellsPerTrack + 1 + 3*numSources
		if len(fields) != want {
			return nil, 0, 0, s.errf("dye track declares %d sources but row has %d fields, want %d", numSources, len(fields), want)
		}
		sources := make(model.SourceCountHitsList, numSources)
		pos := cellsPerTrack + 1
		for j := 0; j < numSources; j++ {
			id, err := parseInt(s, fields[pos])
			if err != nil {
				return nil, 0, 0, err
			}
			count, err := parseInt(s, fields[pos+1])
			if err != nil {
				return nil, 0, 0, err
			}
			hits, err := parseInt(s, fields[pos+2])
			if err != nil {
				return nil, 0, 0, err
			}
			sources[j] = model.SourceCountHits{ID: id, Count: count, Hits: hits}
			pos += 3
		}
		out = append(out, model.SourcedData[model.DyeTrack, model.SourceCountHitsList]{Value: track, Source: sources})
	}
	return out, numTimesteps, numChannels, nil
}

// WriteDyeTracks writes the format ReadDyeTracks parses.
func WriteDyeTracks(w io.Writer, numTimesteps, numChannels int, dyeTracks []model.SourcedData[model.DyeTrack, model.SourceCountHitsList]) error {
	if _, err := fmt.Fprintf(w, "%d\n%d\n%d\n", numTimesteps, numChannels, len(dyeTracks)); err != nil {
		return err
	}
	for _, dt := range dyeTracks {
		for _, v := range dt.Value.Counts {
			if _, err := fmt.Fprintf(w, "%d\t", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d", len(dt.Source)); err != nil {
			return err
		}
		for _, src := range dt.Source {
			if _, err := fmt.Fprintf(w, "\t%d\t%d\t%d", src.ID, src.Count, src.Hits); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func readHeaderInt(s *lineScanner) (int, error) {
	fields, ok := s.next()
	if !ok {
		return 0, s.errf("missing header line")
	}
	if err := requireFields(s, fields, 1); err != nil {
		return 0, err
	}
	return parseInt(s, fields[0])
}
