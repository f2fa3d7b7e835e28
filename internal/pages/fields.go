package pages

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Fields are key=value pairs collected from repeated -set flags.
type Fields map[string]string

// String implements flag.Value.
func (f Fields) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value. Keys may be camelCase, snake_case or
// kebab-case; they are normalised to the API's camelCase names.
func (f Fields) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	f[strcase.ToLowerCamel(k)] = v
	return nil
}

// Apply decodes fields over dst, leaving unnamed fields untouched. Values are
// weakly typed ("true" becomes a bool) and comma-separated values fill
// slices. Unknown keys are an error.
func (f Fields) Apply(dst any) error {
	if len(f) == 0 {
		return nil
	}

	input := make(map[string]interface{}, len(f))
	for k, v := range f {
		input[k] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
		Result:           dst,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("invalid -set value: %w", err)
	}
	return nil
}

// ReadInput decodes a JSON or YAML document at path into dst. The format is
// taken from the extension; anything but .json is read as YAML, which also
// accepts JSON.
func ReadInput(fs afero.Fs, path string, dst any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("error parsing %s: %w", path, err)
		}
	}
	return nil
}
