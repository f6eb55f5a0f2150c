package errors

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindNotInRenderContext, "not-in-render-context"},
		{KindInvalidContainer, "invalid-container"},
		{KindNullRoot, "null-root"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
		{KindScenario, "scenario"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "Kind(%d)", tt.kind)
	}
}

func TestNewMatchesSentinel(t *testing.T) {
	err := New("core.MountRoot", KindNullRoot)

	assert.True(t, Is(err, ErrNullRoot))
	assert.False(t, Is(err, ErrInvalidContainer))
	assert.Contains(t, err.Error(), "core.MountRoot [null-root]")
	assert.False(t, err.Timestamp.IsZero())
}

func TestErrorIsSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("mount failed: %w", New("core.MountRoot", KindInvalidContainer))

	assert.True(t, Is(err, ErrInvalidContainer))

	var typed *Error
	require.True(t, As(err, &typed))
	assert.Equal(t, KindInvalidContainer, typed.Kind)
}

func TestErrorWithCustomCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &Error{Op: "core.render", Kind: KindRender, Err: cause}

	assert.Equal(t, "core.render [render]: boom", err.Error())
	assert.Same(t, cause, err.Unwrap())
	assert.False(t, Is(err, ErrNullRoot))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap("vdom.render", KindScenario, nil))

	cause := os.ErrNotExist
	err := Wrap("vdom.render", KindScenario, cause)
	assert.Equal(t, "vdom.render [scenario]: "+cause.Error(), err.Error())
	assert.True(t, Is(err, os.ErrNotExist))
	assert.True(t, Is(err, ErrScenario))
	assert.False(t, Is(err, ErrConfig))
	assert.False(t, err.Timestamp.IsZero())
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	assert.Equal(t, "panic: test panic", err.Error())

	err.Op = "vdom.render"
	assert.Equal(t, "panic in vdom.render: test panic", err.Error())
}

func TestPanicErrorUnwrapsErrorValues(t *testing.T) {
	inner := New("core.UseState", KindNotInRenderContext)
	err := &PanicError{Value: inner}

	assert.True(t, Is(err, ErrNotInRenderContext))
	assert.Nil(t, (&PanicError{Value: 42}).Unwrap())
}

func TestReport(t *testing.T) {
	var captured *Error
	SetHandler(&testHandler{onError: func(err *Error) { captured = err }})
	defer SetHandler(nil)

	Report(&Error{Op: "test.op", Kind: KindRender})

	require.NotNil(t, captured)
	assert.Equal(t, "test.op", captured.Op)
	assert.False(t, captured.Timestamp.IsZero())

	Report(nil)
}

func TestCatch(t *testing.T) {
	var reported bool
	SetHandler(&testHandler{onPanic: func(*PanicError) { reported = true }})
	defer SetHandler(nil)

	run := func() (err error) {
		defer Catch("vdom.render", &err, func() string { return "/root/cmp-1:0" })
		panic("intentional test panic")
	}
	err := run()

	var pe *PanicError
	require.True(t, As(err, &pe))
	assert.Equal(t, "intentional test panic", pe.Value)
	assert.Equal(t, "vdom.render", pe.Op)
	assert.Equal(t, "/root/cmp-1:0", pe.Path)
	assert.NotEmpty(t, pe.StackTrace)
	assert.Equal(t, "panic in vdom.render at /root/cmp-1:0: intentional test panic", err.Error())
	assert.False(t, reported, "Catch leaves reporting to the caller")
}

func TestCatchWithoutPanicKeepsError(t *testing.T) {
	cause := New("core.Mount", KindNullRoot)
	run := func() (err error) {
		defer Catch[string]("vdom.render", &err, nil)
		return cause
	}
	assert.Same(t, cause, run())
}

func TestCatchWithoutWhere(t *testing.T) {
	run := func() (err error) {
		defer Catch[string]("vdom.render", &err, nil)
		panic(7)
	}
	err := run()
	assert.Equal(t, "panic in vdom.render: 7", err.Error())
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	_, ok := DefaultHandler.(*LogHandler)
	assert.True(t, ok, "SetHandler(nil) should install a LogHandler, got %T", DefaultHandler)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(New("core.MountRoot", KindNullRoot))
	h.HandlePanic(&PanicError{Op: "vdom.render", Value: "bad", StackTrace: "frame"})

	out := buf.String()
	assert.Contains(t, out, "[vdom error] core.MountRoot [null-root]")
	assert.Contains(t, out, "[vdom panic] vdom.render: bad")

	h.HandlePanic(&PanicError{Op: "vdom.render", Path: "/root/li:a", Value: "worse"})
	assert.Contains(t, buf.String(), "[vdom panic] vdom.render at /root/li:a: worse")
	assert.NotContains(t, out, "Stack trace", "stack traces are verbose-only")

	buf.Reset()
	h.Verbose = true
	h.HandlePanic(&PanicError{Value: "bad", StackTrace: "frame"})
	assert.True(t, strings.HasPrefix(buf.String(), "[vdom panic] bad"))
	assert.Contains(t, buf.String(), "Stack trace:\nframe")
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	assert.True(t, strings.Contains(stack, "testing") || strings.Contains(stack, "runtime"),
		"stack trace should contain testing or runtime frames, got: %s", stack)
}
