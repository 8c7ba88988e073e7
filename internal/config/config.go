package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/common-creation/debugfixture/internal/logging"
)

// Input bounds keep every intermediate value (a*b, a+b, prefix sums) far
// inside the range of int64: |a*b| <= 1e18 and |prefix sum| <= 1024e9.
const (
	MaxInputMagnitude = 1_000_000_000
	MaxItems          = 1024
)

// Config represents the complete configuration for the fixture
type Config struct {
	// Fixture inputs
	Fixture FixtureConfig `yaml:"fixture" json:"fixture"`

	// Program output
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging logging.LoggingConfig `yaml:"logging" json:"logging"`
}

// FixtureConfig holds the literal inputs of a run
type FixtureConfig struct {
	// First line printed by a run
	Banner string `yaml:"banner" json:"banner" validate:"required,max=256"`

	// Operands of the sum/product step
	A int64 `yaml:"a" json:"a" validate:"gte=-1000000000,lte=1000000000"`
	B int64 `yaml:"b" json:"b" validate:"gte=-1000000000,lte=1000000000"`

	// Sequence accumulated into the running total
	Items []int64 `yaml:"items" json:"items" validate:"max=1024,dive,gte=-1000000000,lte=1000000000"`
}

// OutputConfig controls how a run is rendered
type OutputConfig struct {
	// Format is "text" (one line per step) or "json" (a single report)
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`

	// Indent pretty-prints json output
	Indent bool `yaml:"indent" json:"indent"`
}

// Defaults for the fixture inputs.
const (
	DefaultBanner = "Starting Rust debug test"
	DefaultA      = 10
	DefaultB      = 20
)

// DefaultItems returns the default running-total sequence.
func DefaultItems() []int64 {
	return []int64{1, 2, 3, 4, 5}
}

// NewDefaultConfig creates a new configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Fixture: FixtureConfig{
			Banner: DefaultBanner,
			A:      DefaultA,
			B:      DefaultB,
			Items:  DefaultItems(),
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: logging.DefaultConfig(),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(verrs[0])
		}
		return err
	}

	if strings.ContainsAny(c.Fixture.Banner, "\r\n") {
		return fmt.Errorf("fixture.banner must be a single line")
	}

	return nil
}

// describe turns a validator failure into a message naming the yaml key.
func describe(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("invalid %s: %v (must be one of %s)", field, fe.Value(), fe.Param())
	case "gte", "lte":
		return fmt.Errorf("%s must be between -%d and %d, got %v", field, MaxInputMagnitude, MaxInputMagnitude, fe.Value())
	case "max":
		return fmt.Errorf("%s is too long (max %s)", field, fe.Param())
	default:
		return fmt.Errorf("invalid %s: failed %s", field, fe.Tag())
	}
}
