package datum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDatum(t *testing.T) {
	d := NewDatum([]byte("hello"))
	assert.Equal(t, "hello", d.String())
	assert.Equal(t, 5, d.Len())
}

func TestNewDatumFromString(t *testing.T) {
	d := NewDatumFromString("world")
	assert.Equal(t, "world", string(d.Bytes()))
}

func TestDatumEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Datum
		want bool
	}{
		{"same bytes", NewDatumFromString("key"), NewDatumFromString("key"), true},
		{"different bytes", NewDatumFromString("key"), NewDatumFromString("other"), false},
		{"different length", NewDatumFromString("key"), NewDatumFromString("keys"), false},
		{"both empty", NewDatum(nil), NewDatum(nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestDatumEmpty(t *testing.T) {
	d := NewDatum(nil)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, "", d.String())
}
