package flagset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	flags := Default()
	require.Len(t, flags, 35)
	assert.Equal(t, "Wall", flags[0])
	assert.Equal(t, "Wunused-parameter", flags[len(flags)-1])
	assert.NoError(t, Validate(flags))

	seen := make(map[string]bool)
	for _, f := range flags {
		assert.False(t, seen[f], "duplicate flag %s", f)
		seen[f] = true
	}

	// Callers must not be able to mutate the built-in list.
	flags[0] = "changed"
	assert.Equal(t, "Wall", Default()[0])
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    []string
		wantErr string
	}{
		"plain": {
			input: "Wall\nWerror\n",
			want:  []string{"Wall", "Werror"},
		},
		"comments and blanks": {
			input: "# warnings\n\nWall\n   \n# strict\nWextra",
			want:  []string{"Wall", "Wextra"},
		},
		"leading dash and whitespace": {
			input: "  -Wall  \r\n-Wcomma\r\n",
			want:  []string{"Wall", "Wcomma"},
		},
		"order preserved": {
			input: "Wz\nWa\nWm\n",
			want:  []string{"Wz", "Wa", "Wm"},
		},
		"only comments": {
			input:   "# nothing\n\n",
			wantErr: "no flags defined",
		},
		"embedded whitespace": {
			input:   "Wall\nW extra\n",
			wantErr: "line 2",
		},
		"lone dash": {
			input:   "-\n",
			wantErr: "empty flag name",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse([]byte(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "flags.txt")
	require.NoError(t, os.WriteFile(path, []byte("Wall\n-Wshorten-64-to-32\n"), 0o644))

	flags, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wall", "Wshorten-64-to-32"}, flags)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.Error(t, Validate(nil))
	assert.Error(t, Validate([]string{"Wall", ""}))
	assert.Error(t, Validate([]string{"W\tall"}))
	assert.NoError(t, Validate([]string{"Wall", "Wno-unknown-pragmas"}))
}
