package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "table", "yaml", "json":
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

// printOutput writes obj in the specified format. table builds the table
// rendition; it is only called for the table format.
func printOutput(
	w io.Writer,
	outputFormat string,
	obj interface{},
	table func() *uitable.Table,
) error {
	switch strings.ToLower(outputFormat) {
	case "table":
		fmt.Fprintln(w, table())
	case "yaml":
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Fprintln(w, string(yamlBytes))
	case "json":
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Fprintln(w, string(prettyJSON))
	default:
		return validateOutputFormat(outputFormat)
	}
	return nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
