package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Presets holds suggestion lists shown by the front end when entering a new
// subscription. They are hints only; any value passing validation is accepted.
type Presets struct {
	Categories     []string `yaml:"categories,omitempty"`
	PaymentMethods []string `yaml:"payment_methods,omitempty"`
}

// DefaultPresets returns the built-in suggestion lists.
func DefaultPresets() *Presets {
	return &Presets{
		Categories: []string{
			"Streaming",
			"Music",
			"Software",
			"Cloud Storage",
			"News & Media",
			"Gaming",
			"Fitness",
			"Education",
			"Productivity",
			"Security",
			"Communication",
			"Other",
		},
		PaymentMethods: []string{
			"Credit Card",
			"Debit Card",
			"PayPal",
			"Bank Transfer",
			"Apple Pay",
			"Google Pay",
			"Cryptocurrency",
			"Other",
		},
	}
}

// LoadPresets reads a YAML presets file. An empty path yields the defaults;
// fields missing from the file fall back to the defaults individually.
func LoadPresets(path string) (*Presets, error) {
	if path == "" {
		return DefaultPresets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing presets file: %w", err)
	}

	defaults := DefaultPresets()
	if len(p.Categories) == 0 {
		p.Categories = defaults.Categories
	}
	if len(p.PaymentMethods) == 0 {
		p.PaymentMethods = defaults.PaymentMethods
	}
	return &p, nil
}
