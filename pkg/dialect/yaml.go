package dialect

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/loretta-lang/loretta/internal/logging"
)

// ToYAML serializes o to YAML, matching the 2-space indent the rest of
// the project's config-shaped types use.
func (o Options) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encode dialect options: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close dialect options encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses Options from YAML bytes. Fields absent from data
// keep their Go zero values, so a partial document such as
// `version: "5.3"` alone does not recover the 5.3 feature flags — use
// ForVersion for that. FromYAML exists for round-tripping an Options
// a caller already resolved and wants to persist verbatim.
func FromYAML(data []byte) (Options, error) {
	logger := logging.Default()
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		logger.Warn("failed to parse dialect options", logging.FieldError, err)
		return Options{}, fmt.Errorf("parse dialect options: %w", err)
	}
	if o.Version != "" && !o.Version.IsValid() {
		logger.Warn("unrecognized dialect version in loaded options", logging.FieldDialect, o.Version)
	}
	logger.Debug("loaded dialect options", logging.FieldDialect, o.Version)
	return o, nil
}
