package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"
)

const (
	chimeRate = beep.SampleRate(44100)
	chimeTone = 150 * time.Millisecond
	chimeGap  = 40 * time.Millisecond
	chimeGain = -0.7
)

var chimeFrequencies = []int{880, 660}

// Chime renders the built-in notification sound: two short falling tones.
func Chime() *beep.Buffer {
	buffer := beep.NewBuffer(beep.Format{SampleRate: chimeRate, NumChannels: 2, Precision: 2})
	for _, frequency := range chimeFrequencies {
		tone, err := generators.SinTone(chimeRate, frequency)
		if err != nil {
			continue
		}
		buffer.Append(&effects.Gain{
			Streamer: beep.Take(chimeRate.N(chimeTone), tone),
			Gain:     chimeGain,
		})
		buffer.Append(beep.Silence(chimeRate.N(chimeGap)))
	}
	return buffer
}
