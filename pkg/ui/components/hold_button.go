package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTickInterval = 50 * time.Millisecond

// HoldButton is a button that requires the user to hold it down for
// HoldDuration before OnComplete runs. Releasing early resets the progress.
type HoldButton struct {
	widget.BaseWidget
	Text         string
	HoldDuration time.Duration
	OnComplete   func()

	mu       sync.Mutex
	holding  bool
	hovered  bool
	progress float64
	ticker   *time.Ticker
}

// NewHoldButton creates a new HoldButton
func NewHoldButton(text string, hold time.Duration, onComplete func()) *HoldButton {
	b := &HoldButton{
		Text:         text,
		HoldDuration: hold,
		OnComplete:   onComplete,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = theme.TextSize() * 1.5

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// Progress returns how far the current hold has got, from 0 to 1
func (b *HoldButton) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable
func (b *HoldButton) TappedSecondary(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.mu.Lock()
	b.hovered = true
	b.mu.Unlock()
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.mu.Lock()
	b.hovered = false
	b.mu.Unlock()
	// Stop holding when mouse leaves
	b.release()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.press()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
}

func (b *HoldButton) press() {
	b.mu.Lock()
	if b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = true
	b.progress = 0
	hold := b.HoldDuration
	if hold <= 0 {
		hold = time.Second
	}
	ticker := time.NewTicker(holdTickInterval)
	b.ticker = ticker
	b.mu.Unlock()
	b.Refresh()

	increment := float64(holdTickInterval) / float64(hold)
	go func() {
		for range ticker.C {
			b.mu.Lock()
			if !b.holding || b.ticker != ticker {
				b.mu.Unlock()
				return
			}
			b.progress += increment
			done := b.progress >= 1
			if done {
				b.progress = 1
				b.holding = false
				ticker.Stop()
			}
			b.mu.Unlock()

			fyne.Do(b.Refresh)

			if done {
				if b.OnComplete != nil {
					b.OnComplete()
				}
				return
			}
		}
	}()
}

func (b *HoldButton) release() {
	b.mu.Lock()
	if !b.holding {
		b.mu.Unlock()
		b.Refresh()
		return
	}
	b.holding = false
	b.progress = 0
	if b.ticker != nil {
		b.ticker.Stop()
		b.ticker = nil
	}
	b.mu.Unlock()
	b.Refresh()
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress bar fills from left to right
	progressWidth := size.Width * float32(r.button.Progress())
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	// Large target, the user may be half asleep
	if minWidth < 320 {
		minWidth = 320
	}
	if minHeight < 90 {
		minHeight = 90
	}

	return fyne.NewSize(minWidth, minHeight)
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	r.button.mu.Lock()
	hovered := r.button.hovered
	r.button.mu.Unlock()
	if hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	size := r.bg.Size()
	progressWidth := size.Width * float32(r.button.Progress())
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
