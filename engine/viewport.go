package engine

// --- Viewport Tracking ---

// Viewport tracks the drawing surface dimensions across container layout
// changes and fullscreen transitions. Container width arrives from a layout
// observer because the first measurement, taken before layout settles, is
// unreliable; height outside fullscreen is a fixed caller-supplied value.
type Viewport struct {
	containerWidth float64
	baseHeight     float64

	fullscreen bool
	windowW    float64
	windowH    float64

	// escListener is non-nil exactly while fullscreen is active, mirroring
	// a keyboard listener that is attached on entry and removed on exit.
	escListener func()
}

func NewViewport(baseHeight float64) *Viewport {
	return &Viewport{baseHeight: baseHeight}
}

// Size returns the current drawing dimensions.
func (v *Viewport) Size() (w, h float64) {
	if v.fullscreen {
		return v.windowW, v.windowH
	}
	return v.containerWidth, v.baseHeight
}

// Fullscreen reports whether the fullscreen overlay is active.
func (v *Viewport) Fullscreen() bool {
	return v.fullscreen
}

// ObserveContainerWidth records a container layout measurement. While
// fullscreen is active the measurement is remembered for the eventual exit
// but does not affect the current size.
func (v *Viewport) ObserveContainerWidth(w float64) {
	v.containerWidth = w
}

// EnterFullscreen switches to full-viewport dimensions and attaches the
// escape handler.
func (v *Viewport) EnterFullscreen(windowW, windowH float64, onEscape func()) {
	v.fullscreen = true
	v.windowW = windowW
	v.windowH = windowH
	v.escListener = onEscape
}

// ExitFullscreen reverts to container-relative sizing and detaches the
// escape handler.
func (v *Viewport) ExitFullscreen() {
	v.fullscreen = false
	v.escListener = nil
}

// WindowResize tracks window size changes; only relevant while fullscreen.
func (v *Viewport) WindowResize(windowW, windowH float64) {
	v.windowW = windowW
	v.windowH = windowH
}

// KeyDown routes a keyboard event. Escape cancels fullscreen, but only while
// the listener is attached.
func (v *Viewport) KeyDown(key string) {
	if key != "Escape" || v.escListener == nil {
		return
	}
	esc := v.escListener
	esc()
}
