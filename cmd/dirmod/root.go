package dirmod

import (
	"github.com/arthur-debert/dirmod/internal/version"
	"github.com/arthur-debert/dirmod/pkg/config"
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/help"
	"github.com/arthur-debert/dirmod/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app holds the global flags and the configuration loaded for a run
type app struct {
	verbosity  int
	configFile string
	output     string
	sorted     bool
	strict     bool

	cfg    *config.Config
	topics *help.Manager
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dirmod",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&a.configFile, "config", "", MsgFlagConfig)
	pf.StringVarP(&a.output, "output", "o", "", MsgFlagOutput)
	pf.BoolVar(&a.sorted, "sorted", false, MsgFlagSorted)
	pf.BoolVar(&a.strict, "strict", false, MsgFlagStrict)

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "expand", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate("dirmod " + version.String() + "\n")

	rootCmd.AddCommand(newAllCmd(a))
	rootCmd.AddCommand(newConditionalCmd(a, "os", MsgOSShort))
	rootCmd.AddCommand(newConditionalCmd(a, "family", MsgFamilyShort))
	rootCmd.AddCommand(newConditionalCmd(a, "feature", MsgFeatureShort))
	rootCmd.AddCommand(newCfgCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newSyntaxCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help, rendered with glamour
	topics, err := help.New(help.Options{Renderer: help.NewGlamourRenderer()})
	if err == nil {
		a.topics = topics
		topics.Install(rootCmd)
	} else {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig merges the configuration layers with the flags given on the
// command line. It runs once per invocation.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	overrides := make(map[string]interface{})
	flags := cmd.Flags()
	if flags.Changed("output") {
		overrides["output.format"] = a.output
	}
	if flags.Changed("sorted") {
		overrides["resolve.sorted"] = a.sorted
	}
	if flags.Changed("strict") {
		overrides["resolve.strict_defaults"] = a.strict
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}
