package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	cause := errors.New("i2c nack")
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, OK},
		{"bare code", NoDevice, NoDevice},
		{"wrapped", Wrap(NoDevice, "npm1300.configure", cause), NoDevice},
		{"foreign", cause, Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.err); got != tt.want {
				t.Errorf("Of(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	if got := Status(nil); got != StatusOK {
		t.Errorf("Status(nil) = %d, want %d", got, StatusOK)
	}
	if got := Status(NoDevice); got != -19 {
		t.Errorf("Status(NoDevice) = %d, want -19", got)
	}
	if got := Status(InvalidParams); got != StatusFailed {
		t.Errorf("Status(InvalidParams) = %d, want %d", got, StatusFailed)
	}
}

func TestE_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("bus stuck")
	err := &E{C: NoDevice, Op: "console.read", Msg: "eof", Err: cause}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is did not find cause")
	}
	if got, want := err.Error(), "console.read: no_device: eof"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
