package openair

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupClass(t *testing.T) {
	tests := []struct {
		code     string
		wantCode string
		wantName string
		known    bool
	}{
		{"C", "C", "Class C", true},
		{"R", "R", "Restricted", true},
		{"GP", "GP", "Glider prohibited", true},
		{" CTR ", "CTR", "Control zone", true},
		{"RMZ", "RMZ", "Radio mandatory zone", true},
		{"XYZ", ClassUnknown, "Unknown", false},
		{"c", ClassUnknown, "Unknown", false},
		{"", ClassUnknown, "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := LookupClass(tt.code)
			assert.Equal(t, tt.known, ok)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantName, got.Name)
			assert.NotEmpty(t, got.Color)
		})
	}
}

func TestClearanceAndDanger(t *testing.T) {
	tests := []struct {
		class, typ        string
		clearance, danger bool
	}{
		{"D", "", true, false},
		{"G", "", false, false},
		{"G", "atz", true, false},
		{"Q", "", false, true},
		{"G", "GLIDER", false, true},
		{"R", "", true, false},
		{ClassUnknown, "", false, false},
	}
	for _, tt := range tests {
		class, _ := LookupClass(tt.class)
		a := Airspace{Class: class, Type: tt.typ}
		assert.Equal(t, tt.clearance, a.ClearanceRequired(), "%s/%s", tt.class, tt.typ)
		assert.Equal(t, tt.danger, a.Danger(), "%s/%s", tt.class, tt.typ)
	}
}
