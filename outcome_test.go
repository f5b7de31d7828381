package oneshot_test

import (
	"errors"
	"testing"

	"github.com/qubelabs/oneshot"
)

func TestOutcomeSuccess(t *testing.T) {
	o := oneshot.Success(42)

	if o.Failed() {
		t.Error("Failed() = true, want false")
	}
	if o.Value() != 42 {
		t.Errorf("Value() = %d, want 42", o.Value())
	}
	if o.Err() != nil {
		t.Errorf("Err() = %v, want nil", o.Err())
	}
	if v, err := o.Unpack(); v != 42 || err != nil {
		t.Errorf("Unpack() = (%d, %v), want (42, nil)", v, err)
	}
}

func TestOutcomeSuccessZeroValue(t *testing.T) {
	// A zero success is still a success; the tag is explicit.
	o := oneshot.Success(0)

	if o.Failed() {
		t.Error("Failed() = true for Success(0), want false")
	}
}

func TestOutcomeFailure(t *testing.T) {
	sampleErr := errors.New("sample error")
	o := oneshot.Failure[int](sampleErr)

	if !o.Failed() {
		t.Error("Failed() = false, want true")
	}
	if o.Value() != 0 {
		t.Errorf("Value() = %d, want 0", o.Value())
	}
	if o.Err() != sampleErr {
		t.Errorf("Err() = %v, want %v", o.Err(), sampleErr)
	}
}

func TestOutcomeFailureNilError(t *testing.T) {
	o := oneshot.Failure[int](nil)

	if !o.Failed() {
		t.Error("Failed() = false, want true")
	}
	if !errors.Is(o.Err(), oneshot.ErrFailed) {
		t.Errorf("Err() = %v, want ErrFailed", o.Err())
	}
}
