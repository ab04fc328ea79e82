package app

import (
	"github.com/spf13/pflag"
)

// NamedFlagSets groups flags by concern so help output stays readable.
type NamedFlagSets struct {
	// Order lists group names in registration order.
	Order []string

	// Sets maps a group name to its flag set.
	Sets map[string]*pflag.FlagSet
}

// FlagSet returns the flag set for the given group, creating it on first use.
func (n *NamedFlagSets) FlagSet(name string) *pflag.FlagSet {
	if n.Sets == nil {
		n.Sets = map[string]*pflag.FlagSet{}
	}
	if _, ok := n.Sets[name]; !ok {
		n.Sets[name] = pflag.NewFlagSet(name, pflag.ExitOnError)
		n.Order = append(n.Order, name)
	}
	return n.Sets[name]
}
