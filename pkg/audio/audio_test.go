package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChime_Length(t *testing.T) {
	pcm := Chime()
	assert.Len(t, pcm, 2*SampleRate*bytesPerFrame)

	// silent after both tones end at 800 ms
	tail := pcm[frames(900*time.Millisecond)*bytesPerFrame:]
	assert.Equal(t, make([]byte, len(tail)), tail)
	// first tone fades in from zero
	assert.Equal(t, []byte{0, 0, 0, 0}, pcm[:bytesPerFrame])
}

func TestWhiteNoise_Deterministic(t *testing.T) {
	a := WhiteNoise(100*time.Millisecond, 0.5, 7)
	b := WhiteNoise(100*time.Millisecond, 0.5, 7)
	assert.Equal(t, a, b)
	assert.Len(t, a, frames(100*time.Millisecond)*bytesPerFrame)
	assert.NotEqual(t, make([]byte, len(a)), a)
}

func buildWAV(t *testing.T, rate uint32, channels uint16, samples []int16) []byte {
	t.Helper()
	var data bytes.Buffer
	for _, s := range samples {
		require.NoError(t, binary.Write(&data, binary.LittleEndian, s))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()+12)))
	buf.WriteString("WAVE")
	// an unknown chunk before fmt must be skipped
	buf.WriteString("LIST")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(4)))
	buf.WriteString("INFO")
	buf.WriteString("fmt ")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(16)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, struct {
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{1, channels, rate, rate * uint32(channels) * 2, channels * 2, 16}))
	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(data.Len())))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestDecodeWAV_MonoToStereo(t *testing.T) {
	pcm, err := DecodeWAV(buildWAV(t, SampleRate, 1, []int16{1, -2}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 1, 0, 0xfe, 0xff, 0xfe, 0xff}, pcm)
}

func TestDecodeWAV_Stereo(t *testing.T) {
	pcm, err := DecodeWAV(buildWAV(t, SampleRate, 2, []int16{1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Len(t, pcm, 8)
}

func TestDecodeWAV_Rejects(t *testing.T) {
	_, err := DecodeWAV(buildWAV(t, 22050, 1, []int16{1}))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodeWAV([]byte("not a wav file at all"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodeWAV([]byte("RIF"))
	assert.Error(t, err)
}

func TestDecodeMP3_Garbage(t *testing.T) {
	_, err := DecodeMP3([]byte("definitely not mpeg"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	s, err := Resolve("rain-asmr.mp3")
	require.NoError(t, err)
	assert.Equal(t, "rain-asmr", s.ID)
	assert.Equal(t, KindAmbience, s.Kind)
	assert.False(t, s.Generated())

	s, err = Resolve("Study-Beats")
	require.NoError(t, err)
	assert.Equal(t, KindLofi, s.Kind)

	s, err = Resolve(WhiteNoiseID)
	require.NoError(t, err)
	assert.True(t, s.Generated())

	_, err = Resolve("thunderstorm")
	assert.ErrorIs(t, err, ErrSoundNotFound)
}

func TestCatalog_IsCopy(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 7)
	c[0].ID = "changed"
	assert.Equal(t, WhiteNoiseID, Catalog()[0].ID)
}

func TestFetcher_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("sound-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(dir, 3, time.Second, zap.NewNop(), WithBackoff(time.Millisecond))

	data, err := f.Fetch(context.Background(), "rain.mp3", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "sound-bytes", string(data))
	assert.EqualValues(t, 3, calls.Load())

	cached, err := os.ReadFile(filepath.Join(dir, "rain.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "sound-bytes", string(cached))

	// served from disk the second time
	data, err = f.Fetch(context.Background(), "rain.mp3", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "sound-bytes", string(data))
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetcher_ExhaustedRetriesAreRetryable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher("", 2, time.Second, zap.NewNop(), WithBackoff(time.Millisecond))
	_, err := f.Fetch(context.Background(), "cafe.mp3", srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.Status)
	assert.Equal(t, 2, fe.Attempts)
	assert.True(t, IsRetryable(err))
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher("", 3, time.Second, zap.NewNop(), WithBackoff(time.Millisecond))
	_, err := f.Fetch(context.Background(), "gone.mp3", srv.URL)
	require.Error(t, err)
	assert.False(t, IsRetryable(err))
	assert.EqualValues(t, 1, calls.Load())
}

type stubDownloader struct {
	calls int
	data  []byte
	err   error
}

func (s *stubDownloader) Fetch(ctx context.Context, name, url string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func TestLibrary_WhiteNoiseIsGeneratedAndCached(t *testing.T) {
	dl := &stubDownloader{}
	lib := NewLibrary(dl, zap.NewNop())

	a, err := lib.PCM(context.Background(), WhiteNoiseID)
	require.NoError(t, err)
	assert.Len(t, a, frames(whiteNoiseLength)*bytesPerFrame)

	b, err := lib.PCM(context.Background(), WhiteNoiseID)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Zero(t, dl.calls)
}

func TestLibrary_Errors(t *testing.T) {
	fetchErr := &FetchError{URL: "x", Retryable: true, Err: errors.New("boom")}
	lib := NewLibrary(&stubDownloader{err: fetchErr}, zap.NewNop())

	_, err := lib.PCM(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSoundNotFound)

	_, err = lib.PCM(context.Background(), "rain-asmr")
	assert.True(t, IsRetryable(err))

	lib = NewLibrary(&stubDownloader{data: []byte("garbage")}, zap.NewNop())
	_, err = lib.PCM(context.Background(), "rain-asmr")
	assert.Error(t, err)
	assert.False(t, IsRetryable(err))
}
