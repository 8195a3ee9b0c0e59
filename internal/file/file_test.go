package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0600))
	require.True(t, Exists(file))
	require.False(t, Exists(filepath.Join(dir, "bogus.json")))
}

func TestReadJSON(t *testing.T) {
	testCases := []struct {
		name       string
		contents   *string
		assertions func(found bool, values map[string]string, err error)
	}{
		{
			name: "file does not exist",
			assertions: func(found bool, values map[string]string, err error) {
				require.NoError(t, err)
				require.False(t, found)
				require.Empty(t, values)
			},
		},
		{
			name:     "file is empty",
			contents: strPtr(""),
			assertions: func(found bool, values map[string]string, err error) {
				require.NoError(t, err)
				require.False(t, found)
			},
		},
		{
			name:     "file is not json",
			contents: strPtr("not json"),
			assertions: func(found bool, values map[string]string, err error) {
				require.IsType(t, &ErrParse{}, err)
				require.Contains(t, err.Error(), "error parsing")
				require.False(t, found)
			},
		},
		{
			name:     "success",
			contents: strPtr(`{"auth_token":"abc"}`),
			assertions: func(found bool, values map[string]string, err error) {
				require.NoError(t, err)
				require.True(t, found)
				require.Equal(t, map[string]string{"auth_token": "abc"}, values)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "values.json")
			if testCase.contents != nil {
				require.NoError(
					t,
					os.WriteFile(name, []byte(*testCase.contents), 0600),
				)
			}
			values := map[string]string{}
			found, err := ReadJSON(name, &values)
			testCase.assertions(found, values, err)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	name := filepath.Join(t.TempDir(), "nested", "values.json")
	require.NoError(t, WriteJSON(name, map[string]string{"a": "1"}))

	info, err := os.Stat(name)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	dirInfo, err := os.Stat(filepath.Dir(name))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), dirInfo.Mode().Perm())

	require.NoError(t, WriteJSON(name, map[string]string{"b": "2"}))
	values := map[string]string{}
	found, err := ReadJSON(name, &values)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, map[string]string{"b": "2"}, values)

	entries, err := os.ReadDir(filepath.Dir(name))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRemove(t *testing.T) {
	name := filepath.Join(t.TempDir(), "values.json")
	require.NoError(t, Remove(name))
	require.NoError(t, os.WriteFile(name, []byte("{}"), 0600))
	require.NoError(t, Remove(name))
	require.False(t, Exists(name))
}

func strPtr(s string) *string {
	return &s
}
