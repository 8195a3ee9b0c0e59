package main

import (
	"bytes"
	"testing"

	"github.com/gosuri/uitable"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"table", "yaml", "json", "JSON"} {
		require.NoError(t, validateOutputFormat(format))
	}
	require.Error(t, validateOutputFormat("xml"))
}

func TestPrintOutput(t *testing.T) {
	obj := struct {
		Username string `json:"username"`
	}{
		Username: "testuser",
	}
	table := func() *uitable.Table {
		table := uitable.New()
		table.AddRow("USERNAME")
		table.AddRow(obj.Username)
		return table
	}
	testCases := []struct {
		format   string
		expected string
	}{
		{
			format:   "table",
			expected: "USERNAME\ntestuser\n",
		},
		{
			format:   "yaml",
			expected: "username: testuser\n\n",
		},
		{
			format:   "json",
			expected: "{\n  \"username\": \"testuser\"\n}\n",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.format, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, printOutput(buf, testCase.format, obj, table))
			require.Equal(t, testCase.expected, buf.String())
		})
	}
}
