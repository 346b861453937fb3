package crypto

import "errors"

var (
	// ErrGeneratingSalt is returned by Hash when the CSPRNG cannot supply a salt.
	ErrGeneratingSalt = errors.New("error generating salt")

	// ErrDerivingKey is returned when scrypt rejects its parameters.
	ErrDerivingKey = errors.New("error deriving key")

	// ErrGeneratingToken is returned by IssueToken when the CSPRNG fails.
	ErrGeneratingToken = errors.New("error generating session token")
)
