package action

import "time"

// Kind names an action handled by this package
type Kind string

const (
	KindPress  Kind = "press"
	KindResize Kind = "resize"
)

// Page is the capability an action drives. Implementations wrap a live
// browser tab; the caller owns its lifecycle.
type Page interface {
	Press(key string) error
	Wait(d time.Duration) error
	SetViewport(width, height int) error
}

// Request is the loosely-typed parameter bag read from scripts.
// Fields that do not apply to the named action are ignored. URL is read by
// navigate and Duration (ms) by wait.
type Request struct {
	Type     string `json:"action" yaml:"action"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty"`
	DelayMs  int    `json:"delayMs,omitempty" yaml:"delayMs,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Duration int    `json:"wait,omitempty" yaml:"wait,omitempty"`
}

// PressRequest holds the arguments of a press action
type PressRequest struct {
	Key     string
	DelayMs int
}

// ResizeRequest holds the arguments of a resize action
type ResizeRequest struct {
	Width  int
	Height int
}

// Press projects the bag onto a PressRequest
func (r Request) Press() PressRequest {
	return PressRequest{Key: r.Key, DelayMs: r.DelayMs}
}

// Resize projects the bag onto a ResizeRequest
func (r Request) Resize() ResizeRequest {
	return ResizeRequest{Width: r.Width, Height: r.Height}
}
