// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Authorization header parsing errors. Both the session auth middleware
// and the public QR handlers share these sentinels, so a malformed
// header reads the same on either surface.
var (
	// ErrEmptyAuthorizationHeader indicates the request carried no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader indicates the header could not be
	// split into a scheme and a token value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken indicates the scheme prefix was present but the
	// token value was an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
