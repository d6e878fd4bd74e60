package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"json integer", json.Number("42"), 42, true},
		{"json float", json.Number("0.25"), 0.25, true},
		{"float64", float64(1.5), 1.5, true},
		{"int", 7, 7, true},
		{"int64", int64(1 << 40), float64(1 << 40), true},
		{"bool", true, 0, false},
		{"string", "12", 0, false},
		{"nil", nil, 0, false},
		{"bad json number", json.Number("x"), 0, false},
		{"nan", math.NaN(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestObject_Number(t *testing.T) {
	obj := Object{"fd_used": json.Number("33"), "alarm": false}

	v, err := obj.Number("fd_used")
	require.NoError(t, err)
	assert.Equal(t, float64(33), v)

	_, err = obj.Number("fd_total")
	assert.True(t, errors.Is(err, ErrMissingField))

	_, err = obj.Number("alarm")
	assert.True(t, errors.Is(err, ErrNotNumeric))
}

func TestAsObjectAndList(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"q1","message_stats":{"ack":1}}, 3]`), &doc))

	list, ok := AsList(doc)
	require.True(t, ok)
	require.Len(t, list, 2)

	obj, ok := AsObject(list[0])
	require.True(t, ok)
	name, ok := obj.Name()
	assert.True(t, ok)
	assert.Equal(t, "q1", name)

	stats, ok := obj.Child("message_stats")
	assert.True(t, ok)
	assert.Contains(t, stats, "ack")

	_, ok = obj.Child("missing")
	assert.False(t, ok)

	_, ok = AsObject(list[1])
	assert.False(t, ok)

	_, ok = AsList(nil)
	assert.False(t, ok)
}

func TestVocabularies(t *testing.T) {
	assert.Equal(t, 12, NodeStats.Len())
	assert.Equal(t, 12, MessageStats.Len())
	assert.Equal(t, 4, DetailStats.Len())
	assert.True(t, MessageStats.Contains("return"))
	assert.False(t, MessageStats.Contains("drop_unroutable"))
	assert.Equal(t, "messages_ready_details", DetailsKey("messages_ready"))
}
