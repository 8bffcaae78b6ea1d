// Package cli implements the statemod command line: reading, rewriting,
// exporting and checking data files, plus the workspace snapshot store,
// the file catalog and signed manifests.
package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/iudanet/statemod/internal/config"
	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/iocli"
)

// ErrCheckFailed is returned by the check command when problems were found.
var ErrCheckFailed = errors.New("check found problems")

// Version describes the build.
type Version struct {
	Version   string
	BuildDate string
	GitCommit string
}

type Cli struct {
	io       iocli.IO
	errOut   io.Writer
	settings *config.Settings
	logger   *slog.Logger
	version  Version
}

func New(io iocli.IO, version Version) *Cli {
	return &Cli{
		io:      io,
		errOut:  os.Stderr,
		version: version,
		logger:  slog.Default(),
	}
}

// Execute runs the command line in args.
func (c *Cli) Execute(ctx context.Context, args []string) error {
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(c.io)
	root.SetErr(c.errOut)
	return root.ExecuteContext(ctx)
}

func (c *Cli) rootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "statemod",
		Short:         "Read, write and check StateMod and StateCU input files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to YAML config file")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("encoding", "utf-8", "Text encoding of data files")
	flags.String("delimiter", ",", "List file delimiter")
	flags.Int("interv", -1, "Delay table values count; negative reads it per table, -100 for fractions")
	flags.Bool("monthly", true, "Delay tables are monthly (false for daily)")
	flags.Int("precision", 2, "Decimals written for delay table values")
	flags.String("bolt", "statemod-workspace.db", "Path to the snapshot database")
	flags.String("catalog", "statemod-catalog.db", "Path to the catalog database")
	flags.String("secret", "", "Manifest signing secret")
	flags.Duration("ttl", 0, "Manifest lifetime, 0 for no expiry")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return err
		}
		level, err := settings.LogLevel()
		if err != nil {
			return err
		}
		c.settings = settings
		c.logger = slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
		return nil
	}

	root.AddCommand(
		c.readCommand(),
		c.rewriteCommand(),
		c.exportCommand(),
		c.importCommand(),
		c.checkCommand(),
		c.snapshotCommand(),
		c.catalogCommand(),
		c.manifestCommand(),
		c.configCommand(),
		c.versionCommand(),
	)

	return root
}

// header returns the header options for a written file. Comments of
// previous are carried into it.
func (c *Cli) header(previous string) fixedformat.HeaderOptions {
	h := fixedformat.HeaderOptions{
		PreviousFile: previous,
		Program:      "statemod " + c.version.Version,
		User:         currentUser(),
	}
	if c.settings != nil {
		h.CommentMarkers = []string{c.settings.Comments.Marker}
		h.Encoding = c.settings.Encoding
		if c.settings.Comments.Header != "" {
			h.IgnoredMarkers = []string{c.settings.Comments.Header}
		}
	}
	return h
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

func (c *Cli) printf(format string, a ...any) {
	c.io.Printf(format, a...)
}

// line prints one line cut to the terminal width.
func (c *Cli) line(s string) {
	if w := c.io.Width(); w > 0 {
		if r := []rune(s); len(r) > w {
			s = string(r[:w])
		}
	}
	c.io.Println(s)
}

func (c *Cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printf("statemod\n")
			c.printf("Version:    %s\n", c.version.Version)
			c.printf("Build Date: %s\n", c.version.BuildDate)
			c.printf("Git Commit: %s\n", c.version.GitCommit)
			return nil
		},
	}
}

func (c *Cli) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := c.settings.Marshal()
				if err != nil {
					return err
				}
				_, err = c.io.Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "init <path>",
			Short: "Write a config file with default settings",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.WriteDefault(args[0]); err != nil {
					return err
				}
				c.printf("Config written to %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
