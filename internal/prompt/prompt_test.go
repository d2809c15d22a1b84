package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCheck(t *testing.T) {
	short := func(s string) error {
		if len(s) > 3 {
			return errors.New("too long")
		}
		return nil
	}

	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr string
	}{
		{name: "required empty", field: Field{Key: "name", Required: true}, value: "  ", wantErr: "name is required"},
		{name: "required uses title", field: Field{Key: "name", Title: "Project name?", Required: true}, wantErr: "Project name is required"},
		{name: "optional empty", field: Field{Key: "note"}, value: ""},
		{name: "validator passes", field: Field{Key: "code", Validate: short}, value: "RLP"},
		{name: "validator fails", field: Field{Key: "code", Validate: short}, value: "RLPX", wantErr: "too long"},
		{name: "confirm accepts bool", field: Field{Key: "m", Kind: KindConfirm}, value: "true"},
		{name: "confirm rejects junk", field: Field{Key: "m", Kind: KindConfirm}, value: "maybe", wantErr: "yes or no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Check(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStaticCollect(t *testing.T) {
	fields := []Field{
		{Key: "name", Required: true},
		{Key: "mirror", Kind: KindConfirm, Default: "false"},
		{
			Key:      "mirror_path",
			Required: true,
			When:     func(v map[string]string) bool { return Bool(v["mirror"]) },
		},
	}

	t.Run("fills answers and defaults", func(t *testing.T) {
		values := map[string]string{}
		err := Static{"name": "devlogs"}.Collect(context.Background(), fields, values)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"name": "devlogs", "mirror": "false"}, values)
	})

	t.Run("conditional field is asked when enabled", func(t *testing.T) {
		values := map[string]string{}
		err := Static{"name": "x", "mirror": "true", "mirror_path": "/tmp/m"}.Collect(context.Background(), fields, values)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/m", values["mirror_path"])
	})

	t.Run("missing conditional required field errors", func(t *testing.T) {
		values := map[string]string{}
		err := Static{"name": "x", "mirror": "true"}.Collect(context.Background(), fields, values)
		require.Error(t, err)
	})

	t.Run("keeps already answered values", func(t *testing.T) {
		values := map[string]string{"name": "preset"}
		err := Static{"name": "ignored"}.Collect(context.Background(), fields, values)
		require.NoError(t, err)
		assert.Equal(t, "preset", values["name"])
	})
}

func TestStaticChoose(t *testing.T) {
	idx, err := Static{}.Choose(context.Background(), "pick", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = Static{"choice": "1"}.Choose(context.Background(), "pick", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = Static{"choice": "5"}.Choose(context.Background(), "pick", []string{"a", "b"})
	require.Error(t, err)

	_, err = Static{}.Choose(context.Background(), "pick", nil)
	require.Error(t, err)
}

func TestBool(t *testing.T) {
	assert.True(t, Bool("true"))
	assert.True(t, Bool("1"))
	assert.False(t, Bool("no"))
	assert.False(t, Bool(""))
}
