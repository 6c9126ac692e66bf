// Package midi writes decoded notes as a Standard MIDI File and reads
// them back.
package midi

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/gabc2ly/model"
	"github.com/jsphweid/gabc2ly/util"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerQuarter = 960

const (
	channel  = 0
	velocity = 100
)

// ticks per duration level, mirroring the lilypond table (8, 4, 2, 2., 1,
// 1., breve)
var levelTicks = []uint32{0, 480, 960, 1920, 2880, 3840, 5760, 7680}

// one note of an ornament triplet
const ornamentTicks = TicksPerQuarter / 3

func LevelTicks(level int) uint32 {
	return levelTicks[util.Clamp(level, 1, len(levelTicks)-1)]
}

// Write renders notes as a single track at bpm quarter notes per minute.
func Write(w io.Writer, notes []*model.Note, bpm float64) error {
	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))

	play := func(pitch int, ticks uint32) {
		key := uint8(util.Clamp(pitch, 0, 127))
		track.Add(0, midi.NoteOn(channel, key, velocity))
		track.Add(ticks, midi.NoteOff(channel, key))
	}

	for _, n := range notes {
		if n.Ornament == nil {
			play(n.Pitch, LevelTicks(n.Duration))
			continue
		}
		play(n.Pitch, ornamentTicks)
		play(n.Ornament.Passing, ornamentTicks)
		play(n.Pitch, ornamentTicks)
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := s.Add(track); err != nil {
		return errors.Wrap(err, "adding track")
	}
	_, err := s.WriteTo(w)
	return errors.Wrap(err, "writing midi")
}

func WriteFile(path string, notes []*model.Note, bpm float64) error {
	var buf bytes.Buffer
	if err := Write(&buf, notes, bpm); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0666)
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, errors.Wrap(err, "Error reading midi file")
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.Wrap(err, "Error parsing midi file")
	}

	return res, nil
}

type Played struct {
	Key   uint8
	Start uint32
	Ticks uint32
}

// PlayedNotes lists the notes of all tracks ordered by start tick.
func PlayedNotes(s *smf.SMF) []Played {
	var res []Played
	for _, track := range s.Tracks {
		var absTicks uint32
		started := make(map[uint8]uint32)
		for _, ev := range track {
			absTicks += ev.Delta
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				started[key] = absTicks
			case ev.Message.GetNoteOff(&ch, &key, &vel),
				ev.Message.GetNoteOn(&ch, &key, &vel):
				start, ok := started[key]
				if !ok {
					continue
				}
				delete(started, key)
				res = append(res, Played{Key: key, Start: start, Ticks: absTicks - start})
			}
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	return res
}

// Tempo returns the first tempo found, or 120 as midi assumes.
func Tempo(s *smf.SMF) float64 {
	for _, track := range s.Tracks {
		for _, ev := range track {
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				return bpm
			}
		}
	}
	return 120
}
