package syntax

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRange_UnmarshalBothEncodings(t *testing.T) {
	want := SourceRange{StartLine: 1, StartColumn: 2, EndLine: 3, EndColumn: 4}

	t.Run("flat", func(t *testing.T) {
		var r SourceRange
		require.NoError(t, json.Unmarshal(
			[]byte(`{"start_line":1,"start_column":2,"end_line":3,"end_column":4}`), &r))
		assert.Equal(t, want, r)
	})

	t.Run("nested", func(t *testing.T) {
		var r SourceRange
		require.NoError(t, json.Unmarshal(
			[]byte(`{"start":{"line":1,"column":2},"end":{"line":3,"column":4}}`), &r))
		assert.Equal(t, want, r)
	})

	t.Run("nested encoding round-trips", func(t *testing.T) {
		assert.Equal(t, want, want.nested().flat())
	})

	t.Run("round-trip stays flat", func(t *testing.T) {
		data, err := json.Marshal(want)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"start_line":1`)

		var r SourceRange
		require.NoError(t, json.Unmarshal(data, &r))
		assert.Equal(t, want, r)
	})
}

func TestSourceRange_IsUnknown(t *testing.T) {
	assert.True(t, SourceRange{}.IsUnknown())
	assert.False(t, SourceRange{EndLine: 1}.IsUnknown())
}
