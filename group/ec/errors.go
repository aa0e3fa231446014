package ec

import "errors"

// Package-level sentinel errors for the EC group realization.
var (
	// errInvalidEncoding is returned when a wire element is not a valid
	// 33-byte SEC1 compressed SECP256K1 point.
	errInvalidEncoding = errors.New("ec: invalid SEC1 compressed point")

	// errScalarTooLong is returned when a wire scalar exceeds 32 bytes.
	errScalarTooLong = errors.New("ec: scalar encoding too long")

	// ErrDegenerateParams is returned by generator/parameter validation
	// when g == h or either generator is the point at infinity.
	ErrDegenerateParams = errors.New("ec: degenerate parameters (G == H or generator == O)")
)
