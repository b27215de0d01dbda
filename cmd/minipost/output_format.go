package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case outputTable, outputYAML, outputJSON:
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

// printStructured writes v as yaml or json. It reports false for the table
// format so the caller can render its own table.
func printStructured(outputFormat, operation string, v any) (bool, error) {
	switch strings.ToLower(outputFormat) {
	case outputYAML:
		yamlBytes, err := yaml.Marshal(v)
		if err != nil {
			return true, errors.Wrapf(err, "error formatting output from %s operation", operation)
		}
		fmt.Println(string(yamlBytes))
		return true, nil
	case outputJSON:
		prettyJSON, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, errors.Wrapf(err, "error formatting output from %s operation", operation)
		}
		fmt.Println(string(prettyJSON))
		return true, nil
	}
	return false, nil
}
