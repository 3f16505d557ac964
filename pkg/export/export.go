// Package export converts an assembled SolutionSet to and from its JSON
// document form.
//
// Serialization is tree-shaped: a project referenced from several places is
// written once per occurrence site (structural duplication). This keeps the
// document self-contained at the cost of identity; a deserialized set has
// field-equal but not pointer-shared projects. Exporting is idempotent:
// marshal, unmarshal, marshal again yields the identical document.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JakeWilds-Vertikal/enumerate-projfiles-from-slns/pkg/model"
)

// Marshal renders a SolutionSet as an indented JSON document.
func Marshal(set *model.SolutionSet) ([]byte, error) {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal solution set: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON document produced by Marshal.
func Unmarshal(data []byte) (*model.SolutionSet, error) {
	var set model.SolutionSet
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution set: %w", err)
	}
	return &set, nil
}

// WriteTo writes the JSON document for set to w, with a trailing newline.
func WriteTo(w io.Writer, set *model.SolutionSet) error {
	data, err := Marshal(set)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write solution set: %w", err)
	}
	return nil
}
