package formatter

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/preciselog/core"
	"github.com/philipp01105/preciselog/timestamp"
)

// Config holds formatter configuration. A Config is copied into the
// formatter at construction; later changes to the caller's value have no
// effect on a built formatter.
type Config struct {
	// Format selects the formatter built by New: "text" (default) or "json"
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
	// FracDigits is the number of fractional-second digits (DefaultConfig: 3)
	FracDigits int `yaml:"frac_digits" validate:"gte=0"`
	// Timezone is an IANA zone name; empty uses the host's local zone
	Timezone string `yaml:"timezone" validate:"omitempty,timezone"`
	// MessageFormat is the layout template; empty selects the formatter's default
	MessageFormat string `yaml:"message_format"`
	// FieldRenames maps canonical field names to output names (JSON only)
	FieldRenames map[string]string `yaml:"field_renames"`
	// StrictValidation rejects malformed templates and ambiguous renames
	StrictValidation bool `yaml:"strict_validation"`
	// IncludeCaller enables caller information in log output
	IncludeCaller bool `yaml:"include_caller"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Format:     FormatText,
		FracDigits: timestamp.DefaultFracDigits,
	}
}

var validate = validator.New()

// Validate reports every problem with c. All returned errors wrap
// core.ErrInvalidConfiguration.
func (c Config) Validate() error {
	var errs error

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s fails %q (got %v)",
					core.ErrInvalidConfiguration, fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			errs = multierr.Append(errs, fmt.Errorf("%w: %v", core.ErrInvalidConfiguration, err))
		}
	}

	if c.StrictValidation {
		if c.MessageFormat != "" {
			if _, err := parseTemplate(c.MessageFormat, true); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		errs = multierr.Append(errs, validateRenames(c.FieldRenames))
	}

	return errs
}

// validateRenames rejects empty output names and renames that would make
// two fields share one key. A standard field name is only free as a
// target when that field is itself renamed to something else.
func validateRenames(renames map[string]string) error {
	var errs error
	owners := make(map[string]string, len(renames))
	for from, to := range renames {
		if to == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: field %q renamed to empty name", core.ErrInvalidConfiguration, from))
			continue
		}
		if to != from && isStandardField(to) {
			if moved, ok := renames[to]; !ok || moved == to {
				errs = multierr.Append(errs, fmt.Errorf("%w: field %q renamed to %q, which is still used by the %s field",
					core.ErrInvalidConfiguration, from, to, to))
				continue
			}
		}
		if prev, ok := owners[to]; ok {
			a, b := prev, from
			if a > b {
				a, b = b, a
			}
			errs = multierr.Append(errs, fmt.Errorf("%w: fields %q and %q both renamed to %q", core.ErrInvalidConfiguration, a, b, to))
			continue
		}
		owners[to] = from
	}
	return errs
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", core.ErrInvalidConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML formatter configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read formatter config: %w", err)
	}
	return ParseConfig(data)
}
