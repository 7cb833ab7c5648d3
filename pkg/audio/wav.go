package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// wavFormat holds WAV file format information
type wavFormat struct {
	AudioFormat int
	SampleRate  int
	Channels    int
	BitDepth    int
}

// DecodeWAV parses a 16-bit PCM WAV file at 44.1 kHz and returns stereo PCM.
// Mono input is duplicated into both channels.
func DecodeWAV(data []byte) ([]byte, error) {
	format, samples, err := parseWAV(data)
	if err != nil {
		return nil, err
	}
	if format.AudioFormat != 1 || format.BitDepth != 16 || format.SampleRate != SampleRate {
		return nil, fmt.Errorf("%w: wav %d Hz, %d-bit, format %d", ErrUnsupportedFormat,
			format.SampleRate, format.BitDepth, format.AudioFormat)
	}

	switch format.Channels {
	case 2:
		return samples[:len(samples)/bytesPerFrame*bytesPerFrame], nil
	case 1:
		out := make([]byte, 0, len(samples)/bytesPerSample*bytesPerFrame)
		for i := 0; i+1 < len(samples); i += bytesPerSample {
			out = append(out, samples[i], samples[i+1], samples[i], samples[i+1])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: wav with %d channels", ErrUnsupportedFormat, format.Channels)
	}
}

// parseWAV parses a WAV file and returns the format and audio data
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	reader := bytes.NewReader(data)

	header := make([]byte, 12)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, nil, fmt.Errorf("read wav header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrUnsupportedFormat)
	}

	var format *wavFormat

	// Read chunks
	for {
		chunkID := make([]byte, 4)
		if _, err := io.ReadFull(reader, chunkID); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read wav chunk: %w", err)
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, fmt.Errorf("read wav chunk size: %w", err)
		}

		switch string(chunkID) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
				return nil, nil, fmt.Errorf("read wav fmt chunk: %w", err)
			}
			format = &wavFormat{
				AudioFormat: int(fmtChunk.AudioFormat),
				SampleRate:  int(fmtChunk.SampleRate),
				Channels:    int(fmtChunk.NumChannels),
				BitDepth:    int(fmtChunk.BitsPerSample),
			}
			// Skip any extra format bytes
			if chunkSize > 16 {
				if _, err := reader.Seek(int64(chunkSize-16), io.SeekCurrent); err != nil {
					return nil, nil, err
				}
			}
		case "data":
			if format == nil {
				return nil, nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedFormat)
			}
			size := int(chunkSize)
			if size > reader.Len() {
				size = reader.Len()
			}
			audioData := make([]byte, size)
			if _, err := io.ReadFull(reader, audioData); err != nil {
				return nil, nil, fmt.Errorf("read wav data: %w", err)
			}
			return format, audioData, nil
		default:
			// Skip unknown chunk
			if _, err := reader.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return nil, nil, err
			}
		}
	}

	return nil, nil, fmt.Errorf("%w: wav has no data chunk", ErrUnsupportedFormat)
}
