package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// Output format shared by every source: 44.1 kHz, stereo, signed 16-bit little endian
const (
	SampleRate     = 44100
	Channels       = 2
	bytesPerSample = 2
	bytesPerFrame  = Channels * bytesPerSample
)

// Playback is a sound that is playing
type Playback interface {
	Stop()
	SetVolume(v float64)
	Done() <-chan struct{}
}

// Engine owns the audio output context. It is created by the app and passed
// to whoever needs to play sound; the device is opened on first use.
type Engine struct {
	log *zap.Logger

	once sync.Once
	ctx  *oto.Context
	err  error
}

// NewEngine returns an Engine that opens the audio device lazily
func NewEngine(log *zap.Logger) *Engine {
	return &Engine{log: log}
}

func (e *Engine) context() (*oto.Context, error) {
	e.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			e.err = fmt.Errorf("open audio device: %w", err)
			e.log.Error("failed to initialize audio context", zap.Error(err))
			return
		}

		// Wait for the hardware audio devices to be ready
		<-ready

		e.ctx = ctx
		e.log.Info("audio context initialized")
	})
	return e.ctx, e.err
}

// Play starts playing PCM data in the engine's format, looping it until stopped when loop is set
func (e *Engine) Play(pcm []byte, loop bool) (Playback, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("play: empty audio buffer")
	}
	ctx, err := e.context()
	if err != nil {
		return nil, err
	}

	p := &Player{
		log:      e.log,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
		volume:   1,
	}
	go p.playLoop(ctx, pcm, loop)
	return p, nil
}

// Player manages one sound with cancellation support
type Player struct {
	log      *zap.Logger
	stopChan chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	player  *oto.Player
	volume  float64
	stopped bool
}

func (p *Player) playLoop(ctx *oto.Context, pcm []byte, loop bool) {
	defer close(p.done)

	for {
		p.mu.Lock()
		if p.stopped {
			p.mu.Unlock()
			return
		}
		// Create a new player for each loop iteration
		p.player = ctx.NewPlayer(bytes.NewReader(pcm))
		p.player.SetVolume(p.volume)
		p.player.Play()
		current := p.player
		p.mu.Unlock()

		// Wait for the sound to finish playing or stop signal
		for current.IsPlaying() {
			select {
			case <-p.stopChan:
				p.mu.Lock()
				p.player = nil
				p.mu.Unlock()
				if err := current.Close(); err != nil {
					p.log.Debug("failed to close audio player", zap.Error(err))
				}
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		p.mu.Lock()
		p.player = nil
		p.mu.Unlock()
		if err := current.Close(); err != nil {
			p.log.Debug("failed to close audio player", zap.Error(err))
		}

		if !loop {
			return
		}
		select {
		case <-p.stopChan:
			return
		default:
		}
	}
}

// Stop stops the audio playback
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)
		if p.player != nil {
			p.player.Pause()
		}
	}
}

// SetVolume sets the volume in [0, 1] for the current and later loops
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
	if p.player != nil {
		p.player.SetVolume(v)
	}
}

// Done is closed when playback ends
func (p *Player) Done() <-chan struct{} {
	return p.done
}
