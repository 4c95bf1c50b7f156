package paging

import (
	"errors"
	"fmt"
)

// DefaultPerPage is the number of items per page when none is configured.
const DefaultPerPage = 10

// ErrInvalidPerPage is returned by Config.Validate for a non-positive PerPage.
var ErrInvalidPerPage = errors.New("paging: per_page must be positive")

// Config holds process-wide pagination settings. It is set once at startup
// and shared read-only by all Paginate calls.
type Config struct {
	PerPage int `json:"per_page" koanf:"per_page"`
}

// DefaultConfig returns a Config with PerPage set to DefaultPerPage.
func DefaultConfig() Config {
	return Config{PerPage: DefaultPerPage}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.PerPage < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPerPage, c.PerPage)
	}
	return nil
}
