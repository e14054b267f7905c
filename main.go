package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/muhammadolammi/skillmatch/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "skillmatch"

// cli carries what every command shares.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: newViper(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          app,
		Short:        "skillmatch scores resumes against job descriptions by the skills they mention",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			l, err := logger.New(c.v.GetBool("json"), c.v.GetBool("debug"))
			if err != nil {
				return err
			}
			c.logger = l
			zap.ReplaceGlobals(l)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = c.logger.Sync()
		},
	}

	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().Bool("json", false, "json format for logging")
	_ = c.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = c.v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(
		newAnalyzeCmd(c),
		newWorkerCmd(c),
		newResultsCmd(c),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
