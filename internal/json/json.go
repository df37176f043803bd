// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package json

import (
	j "encoding/json"
	"fmt"
	"os"
)

func MarshalIndent(data any) ([]byte, error) {
	return j.MarshalIndent(data, "", "  ")
}

func FromFile[T any](filePath string) (v *T, err error) {
	binaries, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error occurred while reading file '%s': %w", filePath, err)
	}

	err = j.Unmarshal(binaries, &v)
	if err != nil {
		return nil, fmt.Errorf("error occurred while unmarshalling file '%s': %w", filePath, err)
	}

	return v, nil
}

func ToFile(filePath string, data any) error {
	binaries, err := MarshalIndent(data)
	if err != nil {
		return fmt.Errorf("error occurred while marshalling data for file '%s': %w", filePath, err)
	}

	if err := os.WriteFile(filePath, binaries, os.ModePerm); err != nil {
		return fmt.Errorf("error occurred while writing file '%s': %w", filePath, err)
	}
	return nil
}
