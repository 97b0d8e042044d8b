package checklist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSatisfyIsMonotonic(t *testing.T) {
	cp := &Checkpoint{ID: "answer1", Value: "x", Type: TypeString, Weight: 0.5}

	require.False(t, cp.Satisfied())
	require.True(t, cp.Satisfy())
	require.False(t, cp.Satisfy(), "second flip must not report a new credit")
	require.True(t, cp.Satisfied())
}

func TestChecklistQueries(t *testing.T) {
	a := &Checkpoint{ID: "answer1", Type: TypeString, Weight: 0.5}
	b := &Checkpoint{ID: "visit_shop1", Type: TypeURL, Weight: 0.2}
	c := &Checkpoint{ID: "answer1", Type: TypeCart, Weight: 0.3}
	list := New(a, b, c)

	require.Equal(t, []Type{TypeString, TypeURL, TypeCart}, list.UnsatisfiedTypes())

	before := list.Flags()
	b.Satisfy()
	require.Equal(t, []Type{TypeString, TypeCart}, list.UnsatisfiedTypes())
	require.InDelta(t, 0.2, list.TotalScore(), 1e-9)
	require.InDelta(t, 1.0, list.MaxScore(), 1e-9)
	require.False(t, list.AllCompleted())
	require.Len(t, list.Checked(), 1)
	require.Len(t, list.Unchecked(), 2)

	newly := list.NewlySatisfied(before)
	require.Len(t, newly, 1)
	require.Equal(t, "visit_shop1", newly[0].ID)
	require.Empty(t, list.NewlySatisfied(list.Flags()))

	a.Satisfy()
	c.Satisfy()
	require.True(t, list.AllCompleted())
	require.Empty(t, list.UnsatisfiedTypes())
	require.Len(t, list.GroupByType()[TypeCart], 1)
}

func TestUnsatisfiedTypesKeepsUnknownTypes(t *testing.T) {
	list := New(
		&Checkpoint{ID: "x", Type: Type("html")},
		&Checkpoint{ID: "y", Type: TypeCheckout},
	)
	require.Equal(t, []Type{TypeCheckout, Type("html")}, list.UnsatisfiedTypes())
}

func TestRecordsSerialization(t *testing.T) {
	cp := &Checkpoint{
		ID: "answer1", Value: "v", Type: TypeCheckout, Weight: 0.5,
		UserDetails: map[string]any{"zip": float64(12345)},
	}
	cp.Satisfy()
	data, err := json.Marshal(New(cp, &Checkpoint{ID: "visit_shop1", Type: TypeURL}).Records())
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"id":"answer1","value":"v","type":"checkout","flag":true,"weight":0.5,"user_details":{"zip":12345}},
		{"id":"visit_shop1","value":"","type":"url","flag":false,"weight":0}
	]`, string(data))
	require.Equal(t, "12345", cp.UserDetail("zip"))
	require.Equal(t, "", cp.UserDetail("missing"))
}
