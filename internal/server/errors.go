// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoListenAddress is returned by NewServer when the configuration
// carries no HTTP address to bind to.
var errNoListenAddress = errors.New("no http listen address configured")
