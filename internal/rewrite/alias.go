package rewrite

import (
	"fmt"
	"strings"
)

// Alias returns a pattern that renames the template name to to and keeps its
// arguments. A target containing name is rejected: the rewritten text would
// match the same pattern again on every pass.
func Alias(name, to string) (Pattern, error) {
	name = strings.TrimSpace(name)
	to = strings.TrimSpace(to)
	switch {
	case name == "":
		return Pattern{}, fmt.Errorf("alias: empty name")
	case to == "":
		return Pattern{}, fmt.Errorf("alias %q: empty target", name)
	case strings.ContainsAny(to, "<> \t\n"):
		return Pattern{}, fmt.Errorf("alias %q: target %q must be a plain name", name, to)
	case strings.Contains(to, name):
		return Pattern{}, fmt.Errorf("alias %q: target %q contains the name", name, to)
	}
	return Pattern{
		Name: name,
		Doc:  "alias -> " + to,
		Handler: func(args []string) (string, bool) {
			return to + "<" + strings.Join(args, ", ") + ">", true
		},
	}, nil
}
