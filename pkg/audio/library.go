package audio

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// whiteNoiseLength is long enough that the loop seam is not noticeable
const whiteNoiseLength = 10 * time.Second

// Downloader fetches raw sound files
type Downloader interface {
	Fetch(ctx context.Context, name, url string) ([]byte, error)
}

// Library turns catalog ids into playable PCM, keeping decoded sounds in memory
type Library struct {
	dl  Downloader
	log *zap.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

// NewLibrary creates a library backed by dl
func NewLibrary(dl Downloader, log *zap.Logger) *Library {
	return &Library{
		dl:    dl,
		log:   log,
		cache: make(map[string][]byte),
	}
}

// PCM returns the decoded audio for a catalog sound
func (l *Library) PCM(ctx context.Context, soundID string) ([]byte, error) {
	sound, err := Resolve(soundID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, soundID)
	}

	l.mu.Lock()
	pcm, ok := l.cache[sound.ID]
	l.mu.Unlock()
	if ok {
		return pcm, nil
	}

	if sound.Generated() {
		pcm = WhiteNoise(whiteNoiseLength, 0.25, time.Now().UnixNano())
	} else {
		raw, err := l.dl.Fetch(ctx, sound.CacheName(), sound.URL)
		if err != nil {
			return nil, err
		}
		pcm, err = decode(sound.URL, raw)
		if err != nil {
			return nil, fmt.Errorf("sound %s: %w", sound.ID, err)
		}
	}

	l.mu.Lock()
	l.cache[sound.ID] = pcm
	l.mu.Unlock()
	l.log.Debug("sound ready", zap.String("sound", sound.ID), zap.Int("bytes", len(pcm)))
	return pcm, nil
}

func decode(url string, raw []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(url)) {
	case ".wav":
		return DecodeWAV(raw)
	case ".mp3":
		return DecodeMP3(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path.Ext(url))
	}
}
