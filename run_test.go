package oneshot_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/qubelabs/oneshot"
)

func TestRun(t *testing.T) {
	f := oneshot.Run(func() (int, error) { return 42, nil }, strconv.Itoa)

	value, err := f.Get()
	if err != nil {
		t.Errorf("Get() err = %v, want nil", err)
	}
	if value != "42" {
		t.Errorf("Get() = %q, want %q", value, "42")
	}
}

func TestRunError(t *testing.T) {
	sampleErr := errors.New("sample error")
	f := oneshot.Run(func() (int, error) { return 0, sampleErr }, strconv.Itoa)

	value, err := f.Get()
	if err != sampleErr {
		t.Errorf("Get() err = %v, want %v", err, sampleErr)
	}
	if value != "" {
		t.Errorf("Get() = %q, want empty", value)
	}
}

func TestRunPanicRecovery(t *testing.T) {
	sampleErr := errors.New("sample error")
	f := oneshot.Go(func() (int, error) {
		panic(sampleErr)
	})

	_, err := f.Get()
	if !errors.Is(err, oneshot.ErrPanic) {
		t.Errorf("Get() err = %v, want ErrPanic", err)
	}
	if !errors.Is(err, sampleErr) {
		t.Error("Get() err does not wrap sampleErr")
	}
}

func TestRunPanicRecoveryWithString(t *testing.T) {
	f := oneshot.Go(func() (int, error) {
		panic("boom")
	})

	_, err := f.Get()
	if !errors.Is(err, oneshot.ErrPanic) {
		t.Errorf("Get() err = %v, want ErrPanic", err)
	}
	if !strings.HasPrefix(err.Error(), "task panicked: boom") {
		t.Errorf("err.Error() = %q, want prefix 'task panicked: boom'", err.Error())
	}
}

func TestGo(t *testing.T) {
	f := oneshot.Go(func() (int, error) { return 10, nil })

	value, err := f.Get()
	if err != nil || value != 10 {
		t.Errorf("Get() = (%d, %v), want (10, nil)", value, err)
	}
}
