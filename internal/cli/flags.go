package cli

import (
	"github.com/spf13/pflag"
)

// flagKeys maps configuration flags to their configuration keys.
var flagKeys = map[string]string{
	"output":     "generate.output",
	"type":       "generate.types",
	"directive":  "generate.directive",
	"marker":     "generate.markers",
	"tags":       "generate.tags",
	"unions":     "generate.unions",
	"partial":    "generate.partial",
	"comments":   "generate.comments",
	"build-tags": "generate.build_tags",
	"workers":    "generate.workers",
	"log-level":  "log.level",
	"log-json":   "log.json",
	"log-source": "log.source",
}

func addFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "configuration file (default .ctor-generator.yaml when present)")
	fs.StringP("output", "o", "ctor_gen.go", "generated file name in each package")
	fs.StringSliceP("type", "t", nil, "generate for these types only (repeatable)")
	fs.String("directive", "ctor", "directive name")
	fs.StringSlice("marker", []string{"HostLayout", "noCopy", "NoCopy"}, "type names treated as zero-sized markers")
	fs.Bool("tags", true, "read field policies from struct tags")
	fs.Bool("unions", true, "generate factories for annotated interfaces")
	fs.Bool("partial", false, "write the valid types of packages with errors")
	fs.Bool("comments", true, "add doc comments to generated factories")
	fs.StringSlice("build-tags", nil, "build tags used when loading packages")
	fs.IntP("workers", "j", 0, "packages processed concurrently (0 = GOMAXPROCS)")
	fs.String("log-level", "info", "log level (debug, info, warn, error, disabled)")
	fs.Bool("log-json", false, "log in JSON format")
	fs.Bool("log-source", false, "include source locations in logs")
}

// overrides returns the configuration keys of the flags set on the command
// line. Flags left at their default do not override the file or environment.
func overrides(fs *pflag.FlagSet) map[string]any {
	out := make(map[string]any)

	fs.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		var (
			value any
			err   error
		)

		switch f.Value.Type() {
		case "stringSlice":
			value, err = fs.GetStringSlice(f.Name)
		case "bool":
			value, err = fs.GetBool(f.Name)
		case "int":
			value, err = fs.GetInt(f.Name)
		default:
			value = f.Value.String()
		}

		if err == nil {
			out[key] = value
		}
	})

	return out
}
