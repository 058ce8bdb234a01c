package modality

import (
	"errors"
	"testing"
)

func TestGetSynthesizer(t *testing.T) {
	for _, m := range AllModalities() {
		syn, err := GetSynthesizer(m)
		if err != nil {
			t.Errorf("GetSynthesizer(%s) failed: %v", m, err)
			continue
		}
		if syn.Modality() != m {
			t.Errorf("Synthesizer for %s reports modality %s", m, syn.Modality())
		}
	}
}

func TestGetSynthesizer_Unknown(t *testing.T) {
	_, err := GetSynthesizer(Modality("PET"))
	if err == nil {
		t.Fatal("Expected error for unknown modality")
	}
	var unknownErr *UnknownModalityError
	if !errors.As(err, &unknownErr) {
		t.Errorf("Expected UnknownModalityError, got %T", err)
	}
	if unknownErr.Modality != "PET" {
		t.Errorf("Error carries modality %q, want PET", unknownErr.Modality)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"MRI", true},
		{"CT", true},
		{"Ultrasound", true},
		{"mri", false}, // case sensitive
		{"US", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultResolutions(t *testing.T) {
	res := DefaultResolutions()
	want := map[Modality]Resolution{
		MRI:        {256, 256},
		CT:         {512, 512},
		Ultrasound: {224, 224},
	}
	for m, r := range want {
		if res[m] != r {
			t.Errorf("Resolution for %s = %v, want %v", m, res[m], r)
		}
	}
}
