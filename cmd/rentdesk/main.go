package main

import (
	"os"
	"strings"

	"rentdesk/internal/cli"
)

// resourceForID maps an id prefix to the show command that handles it.
func resourceForID(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "prop-") && len(s) > len("prop-"):
		return "properties"
	case strings.HasPrefix(s, "sub-") && len(s) > len("sub-"):
		return "subscriptions"
	case strings.HasPrefix(s, "user-") && len(s) > len("user-"):
		return "users"
	default:
		return ""
	}
}

func rewriteDirectLookupArgs(argv []string) []string {
	// Convenience: `rentdesk prop-42` works like `rentdesk properties show prop-42`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv
	// before parsing. Persistent flags may come first (e.g. `rentdesk --token ... prop-42`),
	// so we look for the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--api-url": true,
		"--token":   true,
		"--format":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--cached": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		res := resourceForID(a)
		if res == "" {
			return argv
		}
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, res, "show")
		out = append(out, argv[i:]...)
		return out
	}

	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
