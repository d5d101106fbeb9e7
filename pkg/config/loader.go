package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/dirmod/pkg/emit"
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every configuration environment variable
const EnvPrefix = "DIRMOD_"

// FileNames are looked up, in order, when no config file is given
var FileNames = []string{".dirmod.toml", "dirmod.toml"}

// LoadOptions selects the user layers
type LoadOptions struct {
	// ConfigFile is an explicit user file; it must exist
	ConfigFile string
	// Dir is searched for FileNames when ConfigFile is empty; "" means the
	// working directory
	Dir string
	// NoUserFile skips the user file layer
	NoUserFile bool
	// Overrides are dotted keys applied last, e.g. "output.format"
	Overrides map[string]interface{}
}

// Load merges every layer into a validated Config
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load the user file if there is one
	path, err := userFilePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Load env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Apply overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	// 6. Validate
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("extension", cfg.Source.Extension).
		Str("moduleRoot", cfg.Source.ModuleRoot).
		Str("format", cfg.Output.Format).
		Bool("strictDefaults", cfg.Resolve.StrictDefaults).
		Msg("Configuration loaded")
	return &cfg, nil
}

// Default loads the defaults and the environment, skipping any user file
func Default() (*Config, error) {
	return Load(LoadOptions{NoUserFile: true})
}

// envKey maps DIRMOD_SOURCE__MODULE_ROOT to source.module_root
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func userFilePath(opts LoadOptions) (string, error) {
	if opts.NoUserFile {
		return "", nil
	}
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// output_format accepts any renderer registered with emit
	_ = v.RegisterValidation("output_format", func(fl validator.FieldLevel) bool {
		_, err := emit.NewRenderer(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks the field constraints of cfg
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
		WithDetail("fields", problems)
}

// describe renders one failure as "output.format must be one of [...]"
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.IndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "oneof":
		return key + " must be one of [" + fe.Param() + "]"
	case "output_format":
		return key + " must be one of [" + strings.Join(emit.Formats(), " ") + "]"
	case "startswith":
		return key + " must start with " + fe.Param()
	case "excludesall":
		return key + " must not contain any of " + strings.Join(strings.Split(fe.Param(), ""), " ")
	default:
		return key + " failed " + fe.Tag()
	}
}
