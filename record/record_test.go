package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestRecord() *Record {
	return New([]Field{
		{Name: "amount", Kind: Required},
		{Name: "currency", Kind: Optional, Default: Literal("USD")},
		{Name: "note", Kind: Held},
	})
}

func TestRecord_DefaultState(t *testing.T) {
	r := newTestRecord()

	assert.True(t, r.Success())
	assert.False(t, r.Failure())
	assert.Nil(t, r.Err())
	assert.Nil(t, r.ErrCause())
}

func TestRecord_GetSet(t *testing.T) {
	r := newTestRecord()

	assert.True(t, r.Set("amount", 100))
	assert.Equal(t, 100, r.Get("amount"))

	assert.True(t, r.Set("note", "scratch"))
	assert.Equal(t, "scratch", r.Get("note"))

	assert.False(t, r.Set("unknown", 1))
	assert.Nil(t, r.Get("unknown"))
}

func TestRecord_BaseAttributesAlwaysWritable(t *testing.T) {
	r := New(nil)

	assert.True(t, r.Has("error"))
	assert.True(t, r.Has("error_cause"))
	assert.True(t, r.Set("error", "boom"))
	assert.True(t, r.Set("error_cause", "timeout"))
	assert.Equal(t, "boom", r.Err())
	assert.Equal(t, "timeout", r.ErrCause())
}

func TestRecord_LazyDefaultEvaluatedOnce(t *testing.T) {
	calls := 0
	r := New([]Field{
		{Name: "amount", Kind: Required},
		{Name: "total", Kind: Optional, Default: func(r *Record) any {
			calls++
			return r.Get("amount").(int) * 2
		}},
	})
	r.Set("amount", 21)

	assert.Equal(t, 42, r.Get("total"))
	assert.Equal(t, 1, calls)

	// A later change to amount must not re-run the computation.
	r.Set("amount", 100)
	assert.Equal(t, 42, r.Get("total"))
	assert.Equal(t, 1, calls)
}

func TestRecord_ExplicitSetShortCircuitsDefault(t *testing.T) {
	calls := 0
	r := New([]Field{
		{Name: "flag", Kind: Optional, Default: func(*Record) any {
			calls++
			return true
		}},
	})

	// Setting a falsy value still counts as set.
	r.Set("flag", false)
	assert.Equal(t, false, r.Get("flag"))
	assert.Equal(t, 0, calls)

	r2 := newTestRecord()
	r2.Set("currency", nil)
	assert.Nil(t, r2.Get("currency"))
}

func TestRecord_AssignDropsUnknownKeys(t *testing.T) {
	r := newTestRecord()

	require.NotPanics(t, func() {
		r.Assign(map[string]any{
			"amount":   100,
			"unknown":  "ignored",
			"whatever": struct{}{},
		})
	})
	assert.Equal(t, 100, r.Get("amount"))
	assert.Nil(t, r.Get("unknown"))

	_, present := r.ToMap().Get("unknown")
	assert.False(t, present)
}

func TestRecord_Fail(t *testing.T) {
	r := newTestRecord()

	err := r.Fail(map[string]any{"amount": 1, "error": "card declined"})
	require.Error(t, err)

	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Same(t, r, f.Record())

	assert.True(t, r.Failure())
	assert.False(t, r.Success())
	assert.Equal(t, 1, r.Get("amount"))
	assert.Equal(t, "card declined", r.Err())
	assert.Contains(t, err.Error(), "card declined")
}

func TestRecord_FailedFlagNeverReverts(t *testing.T) {
	r := newTestRecord()
	_ = r.Fail(nil)

	// Nothing on the record can undo the failure.
	r.Assign(map[string]any{"amount": 2, "error": nil})
	assert.True(t, r.Failure())
}

func TestRecord_ToMapOrderAndDefaults(t *testing.T) {
	r := newTestRecord()
	r.Set("amount", 100)

	m := r.ToMap()
	assert.Equal(t, []string{"error", "amount", "currency", "note"}, m.Keys())

	v, ok := m.Get("currency")
	require.True(t, ok)
	assert.Equal(t, "USD", v)

	v, ok = m.Get("note")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestRecord_GetAs(t *testing.T) {
	r := newTestRecord()
	r.Set("amount", 100)

	amount, ok := GetAs[int](r, "amount")
	require.True(t, ok)
	assert.Equal(t, 100, amount)

	_, ok = GetAs[string](r, "amount")
	assert.False(t, ok)

	_, ok = GetAs[int](r, "missing")
	assert.False(t, ok)
}

func TestMapping_OrderPreserved(t *testing.T) {
	m := NewMapping()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3) // update keeps original position

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, _ := m.Get("b")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
}

func TestMapping_MarshalYAMLKeepsOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zeta", 1)
	m.Set("alpha", 2)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha: 2\n", string(out))
}
