package options

import (
	"fmt"
	"net"

	"github.com/spf13/pflag"
)

// IOptions is implemented by every per-concern options struct. Options are
// populated from defaults, then a config file, then command-line flags.
type IOptions interface {
	// Validate checks the final option values and returns all problems found.
	Validate() []error

	// AddFlags registers the options with the given flag set.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// ValidateAddress checks that addr is a host:port string with a usable port.
func ValidateAddress(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return nil
}

func errEmpty(flag string) error {
	return fmt.Errorf("%s must not be empty", flag)
}
