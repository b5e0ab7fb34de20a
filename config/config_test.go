package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensylisir/flowctx/record"
	"github.com/mensylisir/flowctx/schema"
)

const checkoutFlow = `
apiVersion: flowctx/v1
kind: Flow
metadata:
  name: checkout
spec:
  steps:
    - name: reserve
      receive:
        required: [order_id]
      hold: [reservation_id]
    - name: charge
      extends: reserve
      receive:
        required: [amount]
        optional:
          currency: USD
`

func TestParse_ValidFlow(t *testing.T) {
	cfg, err := Parse([]byte(checkoutFlow))
	require.NoError(t, err)

	assert.Equal(t, "flowctx/v1", cfg.APIVersion)
	assert.Equal(t, "checkout", cfg.Metadata.Name)
	require.Len(t, cfg.Spec.Steps, 2)
	assert.Equal(t, "reserve", cfg.Spec.Steps[1].Extends)
}

func TestParse_EnvelopeValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing apiVersion",
			yaml: "kind: Flow\nmetadata: {name: x}\nspec: {steps: [{name: a}]}",
			want: "apiVersion",
		},
		{
			name: "wrong kind",
			yaml: "apiVersion: flowctx/v1\nkind: Cluster\nmetadata: {name: x}\nspec: {steps: [{name: a}]}",
			want: "kind",
		},
		{
			name: "missing name",
			yaml: "apiVersion: flowctx/v1\nkind: Flow\nmetadata: {}\nspec: {steps: [{name: a}]}",
			want: "metadata.name",
		},
		{
			name: "no steps",
			yaml: "apiVersion: flowctx/v1\nkind: Flow\nmetadata: {name: x}\nspec: {steps: []}",
			want: "at least one step",
		},
		{
			name: "duplicate step names",
			yaml: "apiVersion: flowctx/v1\nkind: Flow\nmetadata: {name: x}\nspec: {steps: [{name: a}, {name: a}]}",
			want: "duplicate step name",
		},
		{
			name: "extends later step",
			yaml: "apiVersion: flowctx/v1\nkind: Flow\nmetadata: {name: x}\nspec: {steps: [{name: a, extends: b}, {name: b}]}",
			want: "extends unknown step",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(checkoutFlow), 0644))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "checkout", cfg.Metadata.Name)

	_, err = NewLoader("").Load()
	require.Error(t, err)

	_, err = NewLoader(filepath.Join(dir, "absent.yaml")).Load()
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = NewLoader(empty).Load()
	require.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &FlowConfig{
		Metadata: Metadata{Name: "checkout"},
		Spec:     &FlowSpec{Steps: []StepConfig{{Name: "reserve"}}},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, SupportedKind, cfg.Kind)
	assert.Equal(t, "checkout", cfg.Metadata.Description)
	assert.Equal(t, "reserve", cfg.Spec.Steps[0].Description)
}

func TestStepTypes_BuildsAccumulatedSchemas(t *testing.T) {
	cfg, err := Parse([]byte(checkoutFlow))
	require.NoError(t, err)

	types, err := cfg.StepTypes()
	require.NoError(t, err)
	require.Len(t, types, 2)

	charge := types[1]
	names := make([]string, 0, 4)
	for _, f := range charge.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"order_id", "reservation_id", "amount", "currency"}, names)

	rec, err := charge.Build(map[string]any{"order_id": "o-1", "amount": 100})
	require.NoError(t, err)
	assert.Equal(t, "USD", rec.Get("currency"))

	var missing *schema.MissingFieldsError
	_, err = charge.Build(map[string]any{"order_id": "o-1"})
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"amount"}, missing.Names)
}

func TestStepTypes_SchemaConflictSurfaced(t *testing.T) {
	conflicting := `
apiVersion: flowctx/v1
kind: Flow
metadata:
  name: broken
spec:
  steps:
    - name: a
      receive:
        required: [token]
      hold: [token]
`
	cfg, err := Parse([]byte(conflicting))
	require.NoError(t, err)

	_, err = cfg.StepTypes()
	require.Error(t, err)

	var conflict *schema.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "token", conflict.Name)
	assert.Equal(t, record.Required, conflict.Existing)
}
