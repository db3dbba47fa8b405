package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/de-tools/rankboard/pkg/runtime/terminal/commands"
	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env        *commands.Env
	logOutput  io.Writer
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry registry.Registry
	Output   io.Writer
	// LogOutput receives log lines (default: stderr)
	LogOutput io.Writer
	Now       func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Registry == nil {
		opts.Registry = registry.NewDefaultRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		env: &commands.Env{
			Registry: opts.Registry,
			Output:   opts.Output,
			Now:      opts.Now,
		},
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mostly for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rankboard",
		Short:             "Student attendance, test analytics and report cards",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&cli.env.Institute, "institute", "", "Institute id (default: institute from the config)")

	cmd.AddCommand(commands.NewStudentsCmd(cli.env))
	cmd.AddCommand(commands.NewInsightsCmd(cli.env))
	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewImportCmd(cli.env))
	cmd.AddCommand(commands.NewMirrorCmd(cli.env))
	cmd.AddCommand(commands.NewAttendanceCmd(cli.env))
	cmd.AddCommand(commands.NewTestsCmd(cli.env))
	cmd.AddCommand(commands.NewFeesCmd(cli.env))
	cmd.AddCommand(commands.NewGuidanceCmd(cli.env))
	cmd.AddCommand(commands.NewBrandingCmd(cli.env))
	cmd.AddCommand(commands.NewInstitutesCmd(cli.env))

	return cmd
}

// setup loads the configuration and attaches the logger before any command runs
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log, cli.logOutput)
	if err != nil {
		return err
	}

	cli.env.Config = cfg
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
