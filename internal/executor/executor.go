package executor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"time"

	"github.com/v0xg/pageaction/internal/action"
	"github.com/v0xg/pageaction/internal/browser"
	"github.com/v0xg/pageaction/internal/log"
)

const (
	TypeNavigate = "navigate"
	TypeWait     = "wait"
)

// Options configures execution behavior
type Options struct {
	Record          bool // Capture a frame before the first and after every action
	ContinueOnError bool
	Logger          *log.Logger
}

// StepError ties a failure to the action that produced it
type StepError struct {
	Index int
	Type  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Type, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result holds the outcome of running a script
type Result struct {
	Executed int
	Frames   []image.Image
	Labels   []string // Parallel to Frames, the action each frame follows
	Failures []*StepError
}

// Run executes requests in order against the session page
func Run(session browser.Session, requests []action.Request, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New()
	}

	result := &Result{}
	if opts.Record {
		result.captureFrame(session, logger, "")
	}

	for i, req := range requests {
		logger.Debug("[%d/%d] %s", i+1, len(requests), Describe(req))

		if err := execute(session, req); err != nil {
			stepErr := &StepError{Index: i, Type: req.Type, Err: err}
			if !opts.ContinueOnError {
				return result, stepErr
			}
			logger.Warn("%v", stepErr)
			result.Failures = append(result.Failures, stepErr)
			continue
		}
		result.Executed++

		if opts.Record {
			result.captureFrame(session, logger, Label(req))
		}
	}

	return result, nil
}

// Err joins the failures collected with ContinueOnError
func (r *Result) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

func execute(session browser.Session, req action.Request) error {
	switch req.Type {
	case TypeNavigate:
		if req.URL == "" {
			return fmt.Errorf("url is required for navigate action")
		}
		return session.Navigate(req.URL)
	case TypeWait:
		return session.Page().Wait(time.Duration(req.Duration) * time.Millisecond)
	default:
		return action.Execute(session.Page(), req)
	}
}

func (r *Result) captureFrame(session browser.Session, logger *log.Logger, label string) {
	data, err := session.Screenshot()
	if err != nil {
		logger.Warn("failed to capture frame: %v", err)
		return
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn("failed to decode frame: %v", err)
		return
	}
	r.Frames = append(r.Frames, img)
	r.Labels = append(r.Labels, label)
}

// Label is the badge text for frames recorded after req, empty when the
// action has nothing visible to announce
func Label(req action.Request) string {
	switch req.Type {
	case string(action.KindPress):
		return req.Key
	case string(action.KindResize):
		return fmt.Sprintf("%d×%d", req.Width, req.Height)
	default:
		return ""
	}
}

// Describe renders a one-line summary of a request
func Describe(req action.Request) string {
	switch req.Type {
	case string(action.KindPress):
		if req.DelayMs != 0 {
			return fmt.Sprintf("press → %s (after %dms)", req.Key, req.DelayMs)
		}
		return fmt.Sprintf("press → %s", req.Key)
	case string(action.KindResize):
		return fmt.Sprintf("resize → %dx%d", req.Width, req.Height)
	case TypeWait:
		return fmt.Sprintf("wait → %dms", req.Duration)
	case TypeNavigate:
		return fmt.Sprintf("navigate → %s", req.URL)
	default:
		return req.Type
	}
}
