package dirmod

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/dirmod/internal/version"
	"github.com/arthur-debert/dirmod/pkg/config"
	"github.com/arthur-debert/dirmod/pkg/core"
	"github.com/arthur-debert/dirmod/pkg/emit"
	"github.com/arthur-debert/dirmod/pkg/errors"
	"github.com/arthur-debert/dirmod/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func outputFormats() []string {
	return emit.Formats()
}

// invokerPath makes the invoking file absolute
func invokerPath(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidLocation, MsgErrInvoker, arg)
	}
	return abs, nil
}

// readConfigText joins the remaining arguments into the configuration, or
// reads it from stdin ("-") or from file
func readConfigText(args []string, file string, stdin io.Reader) (string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", errors.New(errors.ErrInvalidInput, MsgErrBothSources)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, MsgErrReadFile, file).
				WithDetail("path", file)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, MsgErrReadStdin)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

// runExpand expands args[0] with the configuration in the rest of args
// and renders the result
func runExpand(cmd *cobra.Command, a *app, variant core.Variant, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	invoker, err := invokerPath(args[0])
	if err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("file")
	text, err := readConfigText(args[1:], file, cmd.InOrStdin())
	if err != nil {
		return err
	}
	renderer, err := emit.NewRenderer(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger := logging.WithFields(map[string]interface{}{
		"command": cmd.Name(),
		"variant": string(variant),
	})
	done := logging.LogOperationStart(logger, "expand")
	defer done()

	exp, err := core.NewExpander(cfg.ExpanderOptions()).Expand(variant, invoker, text)
	if err != nil {
		return err
	}
	return renderer.Render(cmd.OutOrStdout(), exp)
}

func newAllCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "all <file> [config...]",
		Short:   MsgAllShort,
		Long:    MsgAllLong,
		Example: MsgAllExample,
		GroupID: "expand",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, a, core.VariantAll, args)
		},
	}
	cmd.Flags().StringP("file", "f", "", MsgFlagFile)
	return cmd
}

func newConditionalCmd(a *app, name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     name + " <file> [config...]",
		Short:   short,
		Long:    MsgConditionalLong,
		Example: MsgConditionalExample,
		GroupID: "expand",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, a, core.Variant(name), args)
		},
	}
	cmd.Flags().StringP("file", "f", "", MsgFlagFile)
	return cmd
}

func newCfgCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cfg <flag> <file> [config...]",
		Short:   MsgCfgShort,
		Long:    MsgConditionalLong,
		Example: MsgConditionalExample,
		GroupID: "expand",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, a, core.CfgVariant(args[0]), args[1:])
		},
	}
	cmd.Flags().StringP("file", "f", "", MsgFlagFile)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list <file>",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "expand",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			invoker, err := invokerPath(args[0])
			if err != nil {
				return err
			}

			entries, err := core.NewExpander(cfg.ExpanderOptions()).List(invoker)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, MsgNoEntries)
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, MsgEntryFormat, e.Kind, e.Name)
			}
			return tw.Flush()
		},
	}
}

func newSyntaxCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "syntax",
		Short:   MsgSyntaxShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.topics == nil {
				return errors.New(errors.ErrInternal, MsgErrNoTopics)
			}
			return a.topics.Show(cmd.OutOrStdout(), "syntax")
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var effective bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !effective {
				_, err := fmt.Fprint(out, config.DefaultContent())
				return err
			}
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, MsgErrEncodeConfig)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
