package audio

import (
	"errors"
	"path"
	"strings"
)

var ErrSoundNotFound = errors.New("sound not found")

// Kind groups sounds in the picker
type Kind string

const (
	KindAmbience Kind = "ambience"
	KindLofi     Kind = "lofi"
)

// Sound is one entry of the ambient catalog. Sounds without a URL are generated locally.
type Sound struct {
	ID   string
	Name string
	Kind Kind
	URL  string
}

// Generated reports whether the sound is synthesized instead of downloaded
func (s Sound) Generated() bool {
	return s.URL == ""
}

// CacheName is the file name a downloaded sound is cached under
func (s Sound) CacheName() string {
	return s.ID + path.Ext(s.URL)
}

// WhiteNoiseID is the locally generated noise sound
const WhiteNoiseID = "whitenoise"

var catalog = []Sound{
	{ID: WhiteNoiseID, Name: "White Noise", Kind: KindAmbience},
	{ID: "water-asmr", Name: "Forest Stream", Kind: KindAmbience, URL: "https://assets.mixkit.co/sfx/preview/mixkit-forest-stream-ambience-loop-2316.mp3"},
	{ID: "rain-asmr", Name: "Light Rain", Kind: KindAmbience, URL: "https://assets.mixkit.co/sfx/preview/mixkit-light-rain-loop-2393.mp3"},
	{ID: "cafe-asmr", Name: "Cafe", Kind: KindAmbience, URL: "https://assets.mixkit.co/sfx/preview/mixkit-restaurant-crowd-talking-ambience-447.mp3"},
	{ID: "study-beats", Name: "Study Beats", Kind: KindLofi, URL: "https://assets.mixkit.co/music/preview/mixkit-tech-house-vibes-130.mp3"},
	{ID: "chill-vibes", Name: "Chill Vibes", Kind: KindLofi, URL: "https://assets.mixkit.co/music/preview/mixkit-dreaming-big-31.mp3"},
	{ID: "sleep-beats", Name: "Sleep Beats", Kind: KindLofi, URL: "https://assets.mixkit.co/music/preview/mixkit-serene-view-443.mp3"},
}

// Catalog returns every known sound in display order
func Catalog() []Sound {
	out := make([]Sound, len(catalog))
	copy(out, catalog)
	return out
}

// Resolve looks a sound up by id. A trailing ".mp3" is accepted.
func Resolve(name string) (Sound, error) {
	id := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".mp3")
	for _, s := range catalog {
		if s.ID == id {
			return s, nil
		}
	}
	return Sound{}, ErrSoundNotFound
}
