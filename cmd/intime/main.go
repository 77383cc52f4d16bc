package main

import (
	"os"
	"strings"

	"intime-cli/internal/cli"
	"intime-cli/internal/model"

	"github.com/google/uuid"
)

func isMilestoneID(s string) bool {
	s = strings.TrimSpace(s)
	if s == model.BirthdayMilestoneID {
		return true
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func rewriteDirectMilestoneLookupArgs(argv []string) []string {
	// Convenience: `intime <milestone-id>` works like `intime milestones show <milestone-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `intime --dir ... <milestone-id>`), so look for
	// the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--backend": true,
		"--config":  true,
		"--format":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			// --flag=value and bool flags carry no separate value.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if isMilestoneID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "milestones", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectMilestoneLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
