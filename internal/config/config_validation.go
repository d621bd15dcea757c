// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Note that the document encryption secret is deliberately NOT required
// here: the key is derived lazily and the pipeline fails closed on first
// use, so a metadata-only deployment can still start.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.EphemeralTokenKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
