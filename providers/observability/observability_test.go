package observability

import (
	"errors"
	"testing"
	"time"
)

func TestAttributes(t *testing.T) {
	tests := []struct {
		name      string
		attr      Attribute
		wantKey   string
		wantValue any
	}{
		{"string", String(AttrExtractStrategy, "direct"), AttrExtractStrategy, "direct"},
		{"int", Int(AttrRecordsExtracted, 3), AttrRecordsExtracted, 3},
		{"duration", Duration(AttrDuration, 5*time.Second), AttrDuration, 5 * time.Second},
		{"error", Error(errors.New("boom")), AttrError, "boom"},
		{"nil error", Error(nil), AttrError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.attr.Value, tt.wantValue)
			}
		})
	}
}

func TestStatusCode_String(t *testing.T) {
	tests := map[StatusCode]string{
		StatusUnset:    "unset",
		StatusOK:       "ok",
		StatusError:    "error",
		StatusCode(42): "unset",
	}

	for code, want := range tests {
		if got := code.String(); got != want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", int(code), got, want)
		}
	}
}
