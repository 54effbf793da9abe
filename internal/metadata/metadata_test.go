package metadata

import (
	"errors"
	"testing"
)

func TestStaticSource(t *testing.T) {
	tests := []struct {
		name    string
		meta    PrintMetadata
		wantErr bool
	}{
		{
			name: "material and infill set",
			meta: PrintMetadata{Material: "PLA", InfillDensity: 20},
		},
		{
			name: "material only",
			meta: PrintMetadata{Material: "PETG"},
		},
		{
			name: "infill only",
			meta: PrintMetadata{InfillDensity: 15},
		},
		{
			name:    "nothing set",
			meta:    PrintMetadata{},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Static{Meta: tc.meta}.PrintMetadata()
			if tc.wantErr {
				if !errors.Is(err, ErrUnavailable) {
					t.Errorf("expected ErrUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PrintMetadata: %v", err)
			}
			if got != tc.meta {
				t.Errorf("PrintMetadata = %+v, want %+v", got, tc.meta)
			}
		})
	}
}
