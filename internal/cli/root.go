package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"team-formation/internal/app"
	"team-formation/internal/config"
	"team-formation/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configFile string
	jsonOut    bool

	cfg config.Config
	log *zap.Logger
}

// NewRootCommand builds the teamctl command tree. Every subcommand opens the
// configured record store on its own and closes it before returning.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "teamctl",
		Short:         "Form, score and commit project teams from the record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logging.NewWithWriter(cfg.Log, zapcore.AddSync(cmd.ErrOrStderr()))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		newRecommendCommand(opts),
		newScoreCommand(opts),
		newCompareCommand(opts),
		newCommitCommand(opts),
		newStatusCommand(opts),
		newSeedCommand(opts),
	)
	return root
}

// Execute runs teamctl and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func (o *options) withContainer(ctx context.Context, fn func(c *app.Container) error) error {
	c, err := app.NewContainer(ctx, o.cfg, o.log, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			o.log.Warn("close container", zap.Error(cerr))
		}
	}()
	return fn(c)
}

func (o *options) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
