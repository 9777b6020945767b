package action_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/pageaction/internal/action"
)

// recordingPage logs every capability call in order
type recordingPage struct {
	calls     []string
	pressErr  error
	waitErr   error
	resizeErr error
}

func (p *recordingPage) Press(key string) error {
	p.calls = append(p.calls, "press:"+key)
	return p.pressErr
}

func (p *recordingPage) Wait(d time.Duration) error {
	p.calls = append(p.calls, fmt.Sprintf("wait:%s", d))
	return p.waitErr
}

func (p *recordingPage) SetViewport(width, height int) error {
	p.calls = append(p.calls, fmt.Sprintf("viewport:%dx%d", width, height))
	return p.resizeErr
}

var _ action.Page = (*recordingPage)(nil)

func TestPress(t *testing.T) {
	testCases := []struct {
		name      string
		req       action.PressRequest
		wantErr   error
		wantCalls []string
	}{
		{
			name:    "missing key",
			req:     action.PressRequest{},
			wantErr: action.ErrKeyRequired,
		},
		{
			name:    "missing key with delay",
			req:     action.PressRequest{DelayMs: 500},
			wantErr: action.ErrKeyRequired,
		},
		{
			name:      "key without delay",
			req:       action.PressRequest{Key: "Enter"},
			wantCalls: []string{"press:Enter"},
		},
		{
			name:      "key with delay waits first",
			req:       action.PressRequest{Key: "A", DelayMs: 500},
			wantCalls: []string{"wait:500ms", "press:A"},
		},
		{
			name:      "negative delay is still forwarded",
			req:       action.PressRequest{Key: "Tab", DelayMs: -1},
			wantCalls: []string{"wait:-1ms", "press:Tab"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := &recordingPage{}
			err := action.Press(page, tc.req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, page.calls, "no capability call expected on validation failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCalls, page.calls)
		})
	}
}

func TestPressErrorMessage(t *testing.T) {
	err := action.Press(&recordingPage{}, action.PressRequest{})
	require.Error(t, err)
	assert.Equal(t, "key is required for press action", err.Error())
}

func TestPressPropagatesPageErrors(t *testing.T) {
	closed := errors.New("target closed")

	page := &recordingPage{pressErr: closed}
	err := action.Press(page, action.PressRequest{Key: "Enter"})
	assert.Same(t, closed, err)

	page = &recordingPage{waitErr: closed}
	err = action.Press(page, action.PressRequest{Key: "Enter", DelayMs: 10})
	assert.Same(t, closed, err)
	assert.Equal(t, []string{"wait:10ms"}, page.calls, "press must not run after a failed wait")
}

func TestResize(t *testing.T) {
	testCases := []struct {
		name      string
		req       action.ResizeRequest
		wantErr   error
		wantCalls []string
	}{
		{name: "empty", req: action.ResizeRequest{}, wantErr: action.ErrSizeRequired},
		{name: "missing height", req: action.ResizeRequest{Width: 800}, wantErr: action.ErrSizeRequired},
		{name: "missing width", req: action.ResizeRequest{Height: 600}, wantErr: action.ErrSizeRequired},
		{name: "zero width", req: action.ResizeRequest{Width: 0, Height: 600}, wantErr: action.ErrSizeRequired},
		{
			name:      "both dimensions",
			req:       action.ResizeRequest{Width: 800, Height: 600},
			wantCalls: []string{"viewport:800x600"},
		},
		{
			name:      "small viewport",
			req:       action.ResizeRequest{Width: 1, Height: 1},
			wantCalls: []string{"viewport:1x1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := &recordingPage{}
			err := action.Resize(page, tc.req)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, page.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCalls, page.calls)
		})
	}
}

func TestResizeErrorMessage(t *testing.T) {
	err := action.Resize(&recordingPage{}, action.ResizeRequest{Width: 800})
	require.Error(t, err)
	assert.Equal(t, "width and height are required for resize action", err.Error())
}

func TestResizePropagatesPageErrors(t *testing.T) {
	closed := errors.New("target closed")
	page := &recordingPage{resizeErr: closed}
	err := action.Resize(page, action.ResizeRequest{Width: 800, Height: 600})
	assert.Same(t, closed, err)
}

func TestExecute(t *testing.T) {
	page := &recordingPage{}
	require.NoError(t, action.Execute(page, action.Request{Type: "press", Key: "Enter"}))
	require.NoError(t, action.Execute(page, action.Request{Type: "resize", Width: 800, Height: 600}))
	assert.Equal(t, []string{"press:Enter", "viewport:800x600"}, page.calls)

	err := action.Execute(page, action.Request{Type: "press"})
	assert.ErrorIs(t, err, action.ErrKeyRequired)

	err = action.Execute(page, action.Request{Type: "click"})
	assert.EqualError(t, err, "unknown action type: click")

	assert.True(t, action.Supported("resize"))
	assert.False(t, action.Supported("navigate"))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, action.PressRequest{}.Validate(), action.ErrKeyRequired)
	assert.NoError(t, action.PressRequest{Key: "é"}.Validate())

	assert.ErrorIs(t, action.ResizeRequest{Height: 600}.Validate(), action.ErrSizeRequired)
	assert.ErrorIs(t, action.ResizeRequest{Width: 800}.Validate(), action.ErrSizeRequired)
	assert.NoError(t, action.ResizeRequest{Width: -1, Height: 600}.Validate())
}
