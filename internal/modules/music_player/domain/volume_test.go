package domain

import (
	"errors"
	"testing"
)

func TestNewVolume(t *testing.T) {
	tests := []struct {
		percent int
		wantErr bool
	}{
		{percent: 500},
		{percent: 201, wantErr: true},
		{percent: -1, wantErr: true},
		{percent: 0},
		{percent: 200},
		{percent: 100},
		{percent: 499, wantErr: true},
		{percent: 501, wantErr: true},
	}

	for _, tt := range tests {
		v, err := NewVolume(tt.percent)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidVolume) {
				t.Errorf("NewVolume(%d) error = %v, expected ErrInvalidVolume", tt.percent, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewVolume(%d) unexpected error: %v", tt.percent, err)
		}
		if int(v) != tt.percent {
			t.Errorf("NewVolume(%d) = %d", tt.percent, v)
		}
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		input   string
		want    Volume
		wantErr bool
	}{
		{input: "earrape", want: EarrapeVolume},
		{input: "EarRape", want: EarrapeVolume},
		{input: "150", want: 150},
		{input: " 80% ", want: 80},
		{input: "loud", wantErr: true},
		{input: "300", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseVolume(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVolume(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseVolume(%q) = %d, expected %d", tt.input, got, tt.want)
		}
	}
}

func TestVolume_Multiplier(t *testing.T) {
	if got := StandardVolume.Multiplier(); got != 1 {
		t.Errorf("standard multiplier = %v, expected 1", got)
	}
	if got := EarrapeVolume.Multiplier(); got != 5 {
		t.Errorf("earrape multiplier = %v, expected 5", got)
	}
	if got := Volume(50).Multiplier(); got != 0.5 {
		t.Errorf("50%% multiplier = %v, expected 0.5", got)
	}
}
