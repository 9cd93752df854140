package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantID  int64
		wantA   float64
		wantB   float64
		wantErr bool
	}{
		{name: "integers", args: []string{"3", "120", "80"}, wantID: 3, wantA: 120, wantB: 80},
		{name: "decimals and negatives", args: []string{"7", "-5.5", "0.25"}, wantID: 7, wantA: -5.5, wantB: 0.25},
		{name: "bad id", args: []string{"x", "1", "1"}, wantErr: true},
		{name: "not a number", args: []string{"1", "wide", "1"}, wantErr: true},
		{name: "NaN", args: []string{"1", "NaN", "0"}, wantErr: true},
		{name: "infinite", args: []string{"1", "0", "Inf"}, wantErr: true},
		{name: "negative infinite", args: []string{"1", "-inf", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, a, b, err := parseGeometry(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}
