package assets

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// SampleRate is the rate of synthesized sounds and of the audio device.
const SampleRate = beep.SampleRate(44100)

// Sound names match the audio cue names.
const (
	SoundFlap = "flap"
	SoundHit  = "hit"
)

// soundFiles maps each sound to its file name inside an assets directory.
var soundFiles = map[string]string{
	SoundFlap: "wing.wav",
	SoundHit:  "hit.wav",
}

type tone struct {
	freq     float64
	duration time.Duration
}

// Fallback tones used when no assets directory is configured.
var tones = map[string]tone{
	SoundFlap: {freq: 880, duration: 60 * time.Millisecond},
	SoundHit:  {freq: 196, duration: 220 * time.Millisecond},
}

// Synthesize renders a short sine tone into a buffer.
func Synthesize(freq float64, duration time.Duration) (*beep.Buffer, error) {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("assets: synthesize %.0fHz: %w", freq, err)
	}

	quiet := &effects.Gain{Streamer: sine, Gain: -0.7}
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(SampleRate.N(duration), quiet))
	return buf, nil
}

// DecodeWAV reads a whole WAV file into memory.
func DecodeWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return buf, nil
}

func synthesizeAll() (map[string]*beep.Buffer, error) {
	sounds := make(map[string]*beep.Buffer, len(tones))
	for name, t := range tones {
		buf, err := Synthesize(t.freq, t.duration)
		if err != nil {
			return nil, err
		}
		sounds[name] = buf
	}
	return sounds, nil
}
