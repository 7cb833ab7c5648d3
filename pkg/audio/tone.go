package audio

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// ChimePeriod is the length of one alarm chime cycle
const ChimePeriod = 2 * time.Second

// Chime returns one cycle of the alarm pattern: a 440 Hz tone for 800 ms and
// a softer 554 Hz tone for 600 ms starting 200 ms in, followed by silence up
// to two seconds. Loop it for a ringing alarm.
func Chime() []byte {
	total := frames(ChimePeriod)
	mix := make([]float64, total)
	addTone(mix, 0, 800*time.Millisecond, 440, 0.2)
	addTone(mix, 200*time.Millisecond, 600*time.Millisecond, 554, 0.15)
	return encodeStereo(mix)
}

// WhiteNoise returns d of uniform white noise at the given amplitude
func WhiteNoise(d time.Duration, amplitude float64, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	mix := make([]float64, frames(d))
	for i := range mix {
		mix[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return encodeStereo(mix)
}

// addTone mixes a sine tone into mix. The pitch bends up 20% and back over
// the first 200 ms, with 50 ms fades at both ends.
func addTone(mix []float64, start, length time.Duration, freq, volume float64) {
	first := frames(start)
	n := frames(length)
	fade := frames(50 * time.Millisecond)
	phase := 0.0
	for i := 0; i < n && first+i < len(mix); i++ {
		t := float64(i) / SampleRate
		f := freq
		switch {
		case t < 0.1:
			f = freq * (1 + 0.2*t/0.1)
		case t < 0.2:
			f = freq * (1.2 - 0.2*(t-0.1)/0.1)
		}
		phase += 2 * math.Pi * f / SampleRate

		gain := volume
		if i < fade {
			gain *= float64(i) / float64(fade)
		} else if n-i < fade {
			gain *= float64(n-i) / float64(fade)
		}
		mix[first+i] += math.Sin(phase) * gain
	}
}

func frames(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

func encodeStereo(mix []float64) []byte {
	out := make([]byte, len(mix)*bytesPerFrame)
	for i, v := range mix {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], s)
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+bytesPerSample:], s)
	}
	return out
}
