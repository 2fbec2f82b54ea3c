package config

// Config is the complete generator configuration.
type Config struct {
	Generate GenerateConfig `koanf:"generate" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// GenerateConfig controls what is generated and where.
type GenerateConfig struct {
	// Directive is the comment prefix that marks annotated types, "ctor" for //ctor(...).
	Directive string `koanf:"directive" validate:"required,goident"`
	// Output is the file written into each package.
	Output string `koanf:"output" validate:"required,endswith=.go,excludes=/"`
	// Types restricts generation to the named types; empty means all annotated types.
	Types []string `koanf:"types" validate:"dive,goident"`
	// Markers are the type names treated as zero-size markers.
	Markers []string `koanf:"markers" validate:"dive,goident"`
	// Tags enables field policies written as struct tags.
	Tags bool `koanf:"tags"`
	// Unions enables factories for annotated interfaces.
	Unions bool `koanf:"unions"`
	// Partial emits the valid types of a package that has errors.
	Partial bool `koanf:"partial"`
	// Comments adds doc comments to generated factories.
	Comments  bool     `koanf:"comments"`
	BuildTags []string `koanf:"build_tags"`
	// Workers bounds the packages processed at once; 0 means GOMAXPROCS.
	Workers int `koanf:"workers" validate:"min=0,max=256"`
}

type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Directive: "ctor",
			Output:    "ctor_gen.go",
			Types:     []string{},
			Markers:   []string{"HostLayout", "noCopy", "NoCopy"},
			Tags:      true,
			Unions:    true,
			Comments:  true,
			BuildTags: []string{},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
