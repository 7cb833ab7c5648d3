package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an MP3 stream to stereo 16-bit PCM at the engine rate
func DecodeMP3(data []byte) ([]byte, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	if dec.SampleRate() != SampleRate {
		return nil, fmt.Errorf("%w: mp3 at %d Hz", ErrUnsupportedFormat, dec.SampleRate())
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	return pcm[:len(pcm)/bytesPerFrame*bytesPerFrame], nil
}
