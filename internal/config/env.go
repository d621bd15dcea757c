// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Fields are mapped via the `env` and `envPrefix` tags declared on
// [StructuredConfig] and its nested sections.
//
// Returns a wrapped error if env.Parse fails, e.g. when a value cannot be
// converted to the target field type.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
