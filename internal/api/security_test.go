package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateJobID(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		id      string
		wantErr bool
	}{
		{id, false},
		{strings.ToUpper(id), false},
		{"", true},
		{"../etc/passwd", true},
		{"urn:uuid:" + id, true},
		{"{" + id + "}", true},
	}
	for _, tt := range tests {
		err := ValidateJobID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateJobID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidID) {
			t.Errorf("ValidateJobID(%q) error should wrap ErrInvalidID", tt.id)
		}
	}
}

func TestValidateBookKey(t *testing.T) {
	valid := []string{"gen", "2-ne", "dc", "js-h"}
	invalid := []string{"", "Gen", "d&c", "a/b", "..", strings.Repeat("a", 40)}
	for _, k := range valid {
		if err := ValidateBookKey(k); err != nil {
			t.Errorf("ValidateBookKey(%q) = %v", k, err)
		}
	}
	for _, k := range invalid {
		if err := ValidateBookKey(k); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ValidateBookKey(%q) = %v, want ErrInvalidKey", k, err)
		}
	}
}
