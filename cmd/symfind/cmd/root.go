package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/corey/symfind/internal/domain/finder"
)

const rootLongDescription = `symfind parses a C, C++ or CUDA source file and prints every declaration
of <name> that matches the selected category, as line:column followed by the
source line. The walk stops at the first declaration coming from a system
header.`

// options holds the flag values for one invocation.
type options struct {
	function        bool
	member          bool
	parameter       bool
	record          bool
	variable        bool
	insensitiveOnly bool
	ignoreCase      bool

	color       string
	noColor     bool
	systemDirs  []string
	lang        string
	grammarDirs []string
	watch       bool

	configFile string
	verbose    bool
	logFile    string
}

// parserConfig is the parser setup resolved from flags and configuration.
type parserConfig struct {
	systemDirs  []string
	grammarDirs []string
	lang        string
}

// category returns the selected category flag. Flags are mutually
// exclusive, so at most one is set.
func (o *options) category() finder.Category {
	switch {
	case o.function:
		return finder.CategoryFunction
	case o.member:
		return finder.CategoryMember
	case o.parameter:
		return finder.CategoryParameter
	case o.record:
		return finder.CategoryRecord
	case o.variable:
		return finder.CategoryVariable
	case o.insensitiveOnly:
		return finder.CategoryInsensitiveOnly
	}
	return finder.CategoryNone
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "symfind [flags] <name> <file>",
		Short:         "Find declarations of a name in a C/C++ source file",
		Long:          rootLongDescription,
		Args:          requireNameAndFile,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, opts, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.function, "function", false, "Match function declarations")
	f.BoolVar(&opts.member, "member", false, "Match member functions")
	f.BoolVar(&opts.parameter, "parameter", false, "Match function parameters")
	f.BoolVar(&opts.record, "record", false, "Match struct and class declarations")
	f.BoolVar(&opts.variable, "variable", false, "Match variable declarations")
	f.BoolVar(&opts.insensitiveOnly, "insensitive-only", false, "Category marker with no kinds (matches nothing)")
	cmd.MarkFlagsMutuallyExclusive("function", "member", "parameter", "record", "variable", "insensitive-only")

	f.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "Case insensitive name matching")
	f.StringVar(&opts.color, "color", defaultColor, "Highlight positions: auto, always, never")
	f.BoolVar(&opts.noColor, "no-color", false, "Suppress highlighting")
	f.StringArrayVar(&opts.systemDirs, "isystem", nil, "Additional system include directory (repeatable)")
	f.StringVar(&opts.lang, "lang", "", "Parse as c, cpp or cuda instead of detecting from the extension")
	f.StringArrayVar(&opts.grammarDirs, "grammar-dir", nil, "Directory searched for grammar shared libraries (repeatable)")
	f.BoolVar(&opts.watch, "watch", false, "Re-run whenever the file changes")
	f.StringVar(&opts.configFile, "config", "", "Config file (default ./.symfind.yaml)")
	f.BoolVar(&opts.verbose, "verbose", false, "Debug logging")
	f.StringVar(&opts.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitError{code: exitUsageError, err: err}
	})
	return cmd
}

// requireNameAndFile accepts <name> <file>. The name may be empty.
func requireNameAndFile(_ *cobra.Command, args []string) error {
	if len(args) < 2 {
		return usageError("requires <name> and <file> arguments")
	}
	if len(args) > 2 {
		return usageError("unexpected arguments after <file>: %v", args[2:])
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func runFind(cmd *cobra.Command, opts *options, name, file string) error {
	v, err := loadConfig(opts.configFile)
	if err != nil {
		return exitError{code: exitUsageError, err: err}
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return exitError{code: exitUsageError, err: err}
	}

	logCloser, err := configureLogger(v, opts.verbose, cmd.ErrOrStderr())
	if err != nil {
		return exitError{code: exitUsageError, err: err}
	}
	defer logCloser.Close()

	color, err := resolveColor(v.GetString(colorKey), opts.noColor, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	parser, err := newParser(parserConfig{
		systemDirs:  append(opts.systemDirs, v.GetStringSlice(systemDirsKey)...),
		grammarDirs: append(opts.grammarDirs, v.GetStringSlice(grammarDirsKey)...),
		lang:        v.GetString(langKey),
	})
	if err != nil {
		return err
	}
	defer parser.Close()

	findOpts := finder.Options{
		Query: finder.Query{
			Name:       name,
			Category:   opts.category(),
			IgnoreCase: opts.ignoreCase,
		},
		Color: color,
	}
	log.Debug().
		Str("name", name).
		Str("file", file).
		Stringer("category", findOpts.Category).
		Bool("ignore_case", findOpts.IgnoreCase).
		Msg("symfind: query")

	run := func() error {
		_, err := finder.Find(parser, file, findOpts, cmd.OutOrStdout())
		return err
	}
	if err := run(); err != nil {
		return reportFindError(cmd.ErrOrStderr(), err)
	}
	if !opts.watch {
		return nil
	}
	w, err := newWatcher()
	if err != nil {
		return exitError{code: exitParseError, err: err}
	}
	return runWatch(cmd.Context(), w, file, run)
}

// bindFlags lets flags override config and environment for the keys they
// share. Unset flags fall through to config, then to the flag default.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		colorKey:   "color",
		langKey:    "lang",
		logFileKey: "log-file",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}
	return nil
}
