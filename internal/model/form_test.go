package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValue_Unmarshal(t *testing.T) {
	var d ProductDraft
	err := json.Unmarshal([]byte(`{"code":" P009 ","name":"Pala","price":12.5,"quantity":"7","minStock":null}`), &d)
	require.NoError(t, err)

	p := d.Parse()
	assert.Equal(t, "P009", p.Code)
	assert.Equal(t, "Pala", p.Name)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, 7, p.Quantity)
	assert.Equal(t, 0, p.MinStock)
}

func TestFormValue_Parsing(t *testing.T) {
	tests := []struct {
		in    FormValue
		float float64
		int   int
	}{
		{"", 0, 0},
		{"abc", 0, 0},
		{" 3 ", 3, 3},
		{"2.75", 2.75, 2},
		{"NaN", 0, 0},
		{"Inf", 0, 0},
		{"-4", -4, -4},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.float, tt.in.Float())
			assert.Equal(t, tt.int, tt.in.Int())
		})
	}
}

func TestSale_Time(t *testing.T) {
	s := Sale{Timestamp: "2024-05-01T10:30:00.000Z"}
	assert.Equal(t, 2024, s.Time().Year())
	assert.True(t, Sale{Timestamp: "yesterday"}.Time().IsZero())
}
