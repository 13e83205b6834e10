package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/caseinspect/pkg/casestudy"
	"github.com/grovetools/caseinspect/pkg/config"
	"github.com/grovetools/caseinspect/pkg/logger"
	"github.com/grovetools/caseinspect/pkg/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalOptions are shared by every command.
type globalOptions struct {
	configPath string
	dataset    string
	verbose    bool
}

// inspectOptions are the root command's own flags.
type inspectOptions struct {
	match string
	count int
	limit int
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		global  globalOptions
		inspect inspectOptions
	)

	cmd := &cobra.Command{
		Use:   "caseinspect",
		Short: "Inspect paragraphs of a case study report",
		Long: `Inspect the case-study dataset.

Run without a subcommand to select the first case study whose title contains
the match string, split its full text on blank lines, and preview the first
paragraphs.

Example usage:
  caseinspect
  caseinspect --match "Festival" --count 5
  caseinspect list --substance lsd`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, &global, &inspect)
		},
	}

	bindGlobalFlags(cmd.PersistentFlags(), &global)
	bindInspectFlags(cmd.Flags(), &inspect)

	cmd.AddCommand(newListCmd(&global))
	cmd.AddCommand(newShowCmd(&global))
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newConfigCmd(&global))

	return cmd
}

func bindGlobalFlags(fs *pflag.FlagSet, o *globalOptions) {
	fs.StringVar(&o.configPath, "config", "", "Path to a TOML or YAML config file")
	fs.StringVarP(&o.dataset, "file", "f", "", "Path to the case-study dataset")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
}

func bindInspectFlags(fs *pflag.FlagSet, o *inspectOptions) {
	fs.StringVarP(&o.match, "match", "m", "", "Title substring selecting the case study")
	fs.IntVarP(&o.count, "count", "n", report.DefaultCount, "Number of paragraphs to preview")
	fs.IntVarP(&o.limit, "limit", "l", report.DefaultLimit, "Preview length in characters")
}

// resolveConfig layers the config file and changed flags over the defaults.
func resolveConfig(cmd *cobra.Command, global *globalOptions, log *logrus.Entry) (config.Config, error) {
	cfg := config.Default()

	path := global.configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cfg, fmt.Errorf("could not get current directory: %w", err)
		}
		path = config.Discover(cwd)
	}
	if path != "" {
		loaded, err := config.Load(path, log)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if flagChanged(cmd, "file") {
		cfg.Dataset = global.dataset
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// loadDataset reads the configured dataset and enforces the version constraint.
func loadDataset(cfg config.Config, log *logrus.Entry) (*casestudy.Dataset, error) {
	log.WithField("path", cfg.Dataset).Debug("Loading dataset")

	ds, err := casestudy.Load(cfg.Dataset)
	if err != nil {
		return nil, err
	}
	if err := ds.CheckVersion(cfg.RequireVersion); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"case_studies": len(ds.CaseStudies),
		"version":      ds.Version,
	}).Debug("Dataset loaded")
	return ds, nil
}

func newLogger(cmd *cobra.Command, global *globalOptions, component string) *logrus.Entry {
	return logger.New(cmd.ErrOrStderr(), component, global.verbose)
}

func runInspect(cmd *cobra.Command, global *globalOptions, opts *inspectOptions) error {
	log := newLogger(cmd, global, "inspect")

	cfg, err := resolveConfig(cmd, global, log)
	if err != nil {
		return err
	}
	if flagChanged(cmd, "match") {
		cfg.Match = opts.match
	}
	if flagChanged(cmd, "count") {
		cfg.Count = opts.count
	}
	if flagChanged(cmd, "limit") {
		cfg.Limit = opts.limit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ds, err := loadDataset(cfg, log)
	if err != nil {
		return err
	}

	cs, err := ds.FindByTitle(cfg.Match)
	if err != nil {
		return err
	}
	log.WithField("title", cs.Title).Debug("Selected case study")

	paragraphs, err := cs.Paragraphs()
	if err != nil {
		return fmt.Errorf("%w: %q", err, cs.Title)
	}

	return report.Write(cmd.OutOrStdout(), paragraphs, cfg.ReportOptions())
}
