package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	werrors "github.com/arthur-debert/waylandify/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report problems with the names used in the config file
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(validateConfig, Config{})

	return v
}

// validateConfig checks the rules that span several fields: unique program
// names, known flag set references and a non-empty effective flag list.
func validateConfig(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	seen := make(map[string]bool)
	for i, p := range cfg.Programs {
		ns := fmt.Sprintf("programs[%d]", i)

		if p.Name != "" {
			if seen[p.Name] {
				sl.ReportError(p.Name, ns+".name", "Name", "unique", p.Name)
			}
			seen[p.Name] = true
		}

		for j, ref := range p.FlagSets {
			if ref == "" {
				continue
			}
			if _, ok := cfg.FlagSets[ref]; !ok {
				sl.ReportError(ref, fmt.Sprintf("%s.flag_sets[%d]", ns, j), "FlagSets", "flagset", ref)
			}
		}

		if len(cfg.EffectiveFlags(p)) == 0 {
			sl.ReportError(p.Flags, ns+".flags", "Flags", "noflags", "")
		}
	}
}

// Validate checks cfg and returns an ErrConfigInvalid error listing every
// problem found, or nil.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return werrors.Wrap(err, werrors.ErrConfigInvalid, "configuration validation failed")
	}

	problems := make([]string, len(verrs))
	for i, fe := range verrs {
		problems[i] = formatFieldError(fe)
	}

	return werrors.Newf(werrors.ErrConfigInvalid, "invalid configuration: %s", strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}

// formatFieldError creates a human-readable error message.
func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s: program name %q is used more than once", field, fe.Param())
	case "flagset":
		return fmt.Sprintf("%s: unknown flag set %q", field, fe.Param())
	case "noflags":
		return field + ": program has no flags to add"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
