package executor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/pageaction/internal/action"
	"github.com/v0xg/pageaction/internal/browser"
	"github.com/v0xg/pageaction/internal/log"
)

type fakePage struct {
	calls *[]string
}

func (p fakePage) Press(key string) error {
	*p.calls = append(*p.calls, "press:"+key)
	return nil
}

func (p fakePage) Wait(d time.Duration) error {
	*p.calls = append(*p.calls, fmt.Sprintf("wait:%s", d))
	return nil
}

func (p fakePage) SetViewport(width, height int) error {
	*p.calls = append(*p.calls, fmt.Sprintf("viewport:%dx%d", width, height))
	return nil
}

type fakeSession struct {
	calls       []string
	navigateErr error
	png         []byte
}

func (s *fakeSession) Page() action.Page { return fakePage{calls: &s.calls} }

func (s *fakeSession) Navigate(url string) error {
	s.calls = append(s.calls, "navigate:"+url)
	return s.navigateErr
}

func (s *fakeSession) Info() (browser.PageInfo, error) { return browser.PageInfo{}, nil }

func (s *fakeSession) Screenshot() ([]byte, error) {
	if s.png == nil {
		return nil, errors.New("no screenshot")
	}
	return s.png, nil
}

func (s *fakeSession) Close() error { return nil }

var _ browser.Session = (*fakeSession)(nil)

func quietLogger() *log.Logger {
	return log.NewWithWriter(io.Discard)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRunSequence(t *testing.T) {
	s := &fakeSession{}
	requests := []action.Request{
		{Type: "navigate", URL: "https://example.com"},
		{Type: "press", Key: "Enter"},
		{Type: "wait", Duration: 250},
		{Type: "press", Key: "A", DelayMs: 500},
		{Type: "resize", Width: 800, Height: 600},
	}

	result, err := Run(s, requests, Options{Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Executed)
	assert.Empty(t, result.Frames)
	assert.Equal(t, []string{
		"navigate:https://example.com",
		"press:Enter",
		"wait:250ms",
		"wait:500ms",
		"press:A",
		"viewport:800x600",
	}, s.calls)
}

func TestRunStopsAtFirstError(t *testing.T) {
	s := &fakeSession{}
	requests := []action.Request{
		{Type: "press", Key: "Enter"},
		{Type: "resize", Width: 800},
		{Type: "press", Key: "Tab"},
	}

	result, err := Run(s, requests, Options{Logger: quietLogger()})
	require.Error(t, err)
	assert.ErrorIs(t, err, action.ErrSizeRequired)
	assert.EqualError(t, err, "step 2 (resize): width and height are required for resize action")

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)

	assert.Equal(t, 1, result.Executed)
	assert.Equal(t, []string{"press:Enter"}, s.calls)
}

func TestRunContinueOnError(t *testing.T) {
	s := &fakeSession{navigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	requests := []action.Request{
		{Type: "press"},
		{Type: "navigate", URL: "https://invalid.test"},
		{Type: "navigate"},
		{Type: "scroll"},
		{Type: "press", Key: "Escape"},
	}

	result, err := Run(s, requests, Options{ContinueOnError: true, Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Executed)
	require.Len(t, result.Failures, 4)
	assert.ErrorIs(t, result.Failures[0], action.ErrKeyRequired)
	assert.EqualError(t, result.Failures[2], "step 3 (navigate): url is required for navigate action")
	assert.EqualError(t, result.Failures[3], "step 4 (scroll): unknown action type: scroll")
	assert.ErrorIs(t, result.Err(), action.ErrKeyRequired)

	assert.Equal(t, []string{"navigate:https://invalid.test", "press:Escape"}, s.calls)
}

func TestRunRecordsFrames(t *testing.T) {
	s := &fakeSession{png: testPNG(t)}
	requests := []action.Request{
		{Type: "press", Key: "Enter"},
		{Type: "resize", Width: 640, Height: 480},
	}

	result, err := Run(s, requests, Options{Record: true, Logger: quietLogger()})
	require.NoError(t, err)
	require.Len(t, result.Frames, 3)
	assert.Equal(t, image.Rect(0, 0, 4, 4), result.Frames[0].Bounds())
	assert.Equal(t, []string{"", "Enter", "640×480"}, result.Labels)
}

func TestRunRecordingToleratesScreenshotFailure(t *testing.T) {
	s := &fakeSession{}
	result, err := Run(s, []action.Request{{Type: "press", Key: "Enter"}}, Options{Record: true, Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Executed)
	assert.Empty(t, result.Frames)
	assert.Empty(t, result.Labels)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		req  action.Request
		want string
	}{
		{action.Request{Type: "press", Key: "Enter"}, "Enter"},
		{action.Request{Type: "press", Key: "é", DelayMs: 200}, "é"},
		{action.Request{Type: "resize", Width: 390, Height: 844}, "390×844"},
		{action.Request{Type: "wait", Duration: 100}, ""},
		{action.Request{Type: "navigate", URL: "https://example.com"}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.req), Describe(tt.req))
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "press → Enter", Describe(action.Request{Type: "press", Key: "Enter"}))
	assert.Equal(t, "press → A (after 500ms)", Describe(action.Request{Type: "press", Key: "A", DelayMs: 500}))
	assert.Equal(t, "resize → 800x600", Describe(action.Request{Type: "resize", Width: 800, Height: 600}))
	assert.Equal(t, "wait → 100ms", Describe(action.Request{Type: "wait", Duration: 100}))
	assert.Equal(t, "navigate → https://example.com", Describe(action.Request{Type: "navigate", URL: "https://example.com"}))
	assert.Equal(t, "hover", Describe(action.Request{Type: "hover"}))
}
