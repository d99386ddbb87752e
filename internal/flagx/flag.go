// Package flagx holds small helpers for sharing os.Args between several
// independent flag sets (JSON config lookup, server flags, CLI commands).
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of the allowed flags and their
// values. Both "-f value" and "-f=value" forms are recognised; a value is only
// consumed when the next argument does not itself look like a flag.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// SplitCommand separates leading flags from the first positional argument
// (the command name) and whatever follows it.
//
//	SplitCommand([]string{"-a", ":50051", "rsvp", "h1", "going"})
//	// global: [-a :50051], cmd: "rsvp", rest: [h1 going]
//
// Every global flag is assumed to take a value unless written as -f=value.
func SplitCommand(args []string) (global []string, cmd string, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return args[:i], arg, args[i+1:]
		}
		if !strings.Contains(arg, "=") && i+1 < len(args) {
			i++
		}
	}
	return args, "", nil
}

// JsonConfigFlags extracts the config file path given via -c or -config.
// Other arguments are ignored, so callers may parse their own flags later.
// An empty string means no file was requested.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
