package linsigma

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eon-protocol/linsigma/curve"
)

// Config selects the curve, witness length, setup label and linear form used
// by the command line tools.
type Config struct {
	Curve string `yaml:"curve"`
	Size  int    `yaml:"size"`
	Label string `yaml:"label"`

	// Coefficients of the linear form as integer strings, size+1 of them.
	// Empty means the sum form.
	Coefficients []string `yaml:"coefficients"`
}

func DefaultConfig() Config {
	return Config{
		Curve: DEFAULT_CURVE,
		Size:  DEFAULT_SIZE,
		Label: DEFAULT_SETUP_LABEL,
	}
}

// LoadConfig reads a YAML config over the defaults. An empty path skips the
// file. LINSIGMA_CURVE and LINSIGMA_LABEL override the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if v := os.Getenv("LINSIGMA_CURVE"); v != "" {
		cfg.Curve = v
	}
	if v := os.Getenv("LINSIGMA_LABEL"); v != "" {
		cfg.Label = v
	}
	if !isPowerOfTwo(cfg.Size + 1) {
		return cfg, fmt.Errorf("%w: size + 1 = %d", ErrNotPowerOfTwo, cfg.Size+1)
	}
	return cfg, nil
}

func (cfg Config) NewCurve() (curve.Curve, error) {
	return curve.FromName(cfg.Curve)
}

// LinearForm builds the configured form of size Size+1 over c.
func (cfg Config) LinearForm(c curve.Curve) (LinearForm, error) {
	if len(cfg.Coefficients) == 0 {
		return NewSumForm(c, cfg.Size+1), nil
	}
	if len(cfg.Coefficients) != cfg.Size+1 {
		return nil, fmt.Errorf("%w: %d coefficients for size %d", ErrVectorLenMismatch, len(cfg.Coefficients), cfg.Size)
	}
	coeffs := make([]curve.Scalar, len(cfg.Coefficients))
	for i, s := range cfg.Coefficients {
		v, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("coefficient %d: cannot parse %q", i, s)
		}
		coeffs[i] = c.ScalarFromBigInt(v)
	}
	return NewDotForm(c, coeffs), nil
}

// Params derives fresh generators for the configured curve, size and label.
func (cfg Config) Params(opts ...ParamsOption) (*Params, error) {
	c, err := cfg.NewCurve()
	if err != nil {
		return nil, err
	}
	return NewParams(c, cfg.Size, cfg.Label, opts...)
}
