package dataset

import (
	"fmt"
	"os"

	"github.com/katalvlaran/infomax/matrix"
	"github.com/mjibson/go-dsp/wav"
)

// Recording is one decoded WAV file, de-interleaved by channel.
type Recording struct {
	SampleRate int
	Channels   [][]float64
}

// ReadWAV decodes a PCM WAV file into per-channel float samples.
// Values keep the decoder's fixed scaling, so rows may carry a constant
// offset; center them (matrix.CenterRows) before separation.
func ReadWAV(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	defer f.Close()

	w, err := wav.New(f)
	if err != nil {
		return nil, fmt.Errorf("read wav %s: %v: %w", path, err, ErrUnreadable)
	}
	nch := int(w.NumChannels)
	if nch == 0 || w.Samples == 0 {
		return nil, fmt.Errorf("read wav %s: %w", path, ErrEmpty)
	}
	raw, err := w.ReadFloats(w.Samples)
	if err != nil {
		return nil, fmt.Errorf("read wav %s: %v: %w", path, err, ErrUnreadable)
	}

	frames := len(raw) / nch
	rec := &Recording{SampleRate: int(w.SampleRate), Channels: make([][]float64, nch)}
	for c := range rec.Channels {
		rec.Channels[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < nch; c++ {
			rec.Channels[c][i] = float64(raw[i*nch+c])
		}
	}

	return rec, nil
}

// LoadWAV reads every file in paths and stacks their channels as rows of one
// matrix, stored in the archive under key. Rows are truncated to the shortest
// channel. All files must share a sample rate.
func (a *Archive) LoadWAV(key string, paths ...string) error {
	if len(paths) == 0 {
		return fmt.Errorf("load wav: no files: %w", ErrEmpty)
	}
	var (
		recs   = make([]*Recording, 0, len(paths))
		frames = -1
	)
	for _, p := range paths {
		rec, err := ReadWAV(p)
		if err != nil {
			return err
		}
		if len(recs) > 0 && rec.SampleRate != recs[0].SampleRate {
			return fmt.Errorf("load wav %s: sample rate %d, want %d: %w", p, rec.SampleRate, recs[0].SampleRate, ErrUnreadable)
		}
		for _, ch := range rec.Channels {
			if frames < 0 || len(ch) < frames {
				frames = len(ch)
			}
		}
		recs = append(recs, rec)
	}
	if frames == 0 {
		return fmt.Errorf("load wav: %w", ErrEmpty)
	}

	parts := make([]matrix.Matrix, len(recs))
	for i, rec := range recs {
		rows := make([][]float64, len(rec.Channels))
		for c, ch := range rec.Channels {
			rows[c] = ch[:frames]
		}
		d, err := matrix.NewDenseFrom(rows)
		if err != nil {
			return fmt.Errorf("load wav %s: %w", paths[i], err)
		}
		parts[i] = d
	}
	X, err := matrix.Stack(parts...)
	if err != nil {
		return fmt.Errorf("load wav: %w", err)
	}

	return a.Put(key, X)
}
