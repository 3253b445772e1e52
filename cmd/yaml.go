package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlUnmarshalImpl decodes a single YAML document and rejects unknown keys so
// that a typo in a job file does not silently fall back to a default.
func yamlUnmarshalImpl(b []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}

// yamlUnmarshal is the single entry point used for job files.
func yamlUnmarshal(b []byte, out any) error {
	return yamlUnmarshalImpl(b, out)
}
