package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "Valid Date", input: "2005-05-26"},
		{name: "Leap Day", input: "2024-02-29"},
		{name: "First Day Of Year One", input: "0001-01-01"},
		{name: "Not A Leap Year", input: "2023-02-29", wantErr: true},
		{name: "Impossible Day", input: "2021-02-30", wantErr: true},
		{name: "Month Out Of Range", input: "2021-13-01", wantErr: true},
		{name: "Missing Padding", input: "2021-1-01", wantErr: true},
		{name: "With Time", input: "2021-01-01T00:00:00Z", wantErr: true},
		{name: "Slashes", input: "2021/01/01", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "yesterday!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.True(t, d.IsZero())
				return
			}
			require.NoError(t, err)
			assert.False(t, d.IsZero())
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestDate_Calendar(t *testing.T) {
	d := NewDate(2005, time.May, 26)
	assert.Equal(t, "2005-05-26", d.String())
	assert.Equal(t, time.Thursday, d.Weekday())
	assert.Equal(t, "2005-05-28", d.AddDays(2).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
}
