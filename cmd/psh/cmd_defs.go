package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "psh",
	Short: "A demonstration shell around the process-subsystem kernel.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if resolveVerbosity(cmd.Flags()) {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

const verboseFlag = "verbose"

// resolveVerbosity reads the persistent --verbose flag straight off the
// pflag.FlagSet cobra hands back, the same direct fs.GetBool call
// arctir-proctor's newOptions uses rather than going through cobra's typed
// flag accessor.
func resolveVerbosity(fs *pflag.FlagSet) bool {
	v, err := fs.GetBool(verboseFlag)
	if err != nil {
		return false
	}
	return v
}

var bootCmd = &cobra.Command{
	Use:   "boot",
	Short: "Boot a kernel, run the demo fork/sleep/exit workload, report what happened.",
	RunE:  runBoot,
}

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "Boot the demo workload and list every live process.",
	RunE:  runPs,
}

var psinfoCmd = &cobra.Command{
	Use:   "psinfo",
	Short: "Boot the demo workload and list processes plus running CPUs.",
	RunE:  runPsinfo,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Boot the demo workload and change a worker's scheduling priority mid-run.",
	RunE:  runSet,
}

var exectimeCmd = &cobra.Command{
	Use:   "exectime",
	Short: "Time a fork+wait round trip against the kernel's clock.",
	RunE:  runExectime,
}

func init() {
	rootCmd.PersistentFlags().Bool(verboseFlag, false, "enable debug-level logging")

	for _, c := range []*cobra.Command{bootCmd, psCmd, psinfoCmd, setCmd} {
		c.Flags().Int("cpus", 2, "number of scheduler CPUs to run")
		c.Flags().Int("workers", 4, "number of demo worker processes to fork")
		c.Flags().Duration("tick-interval", tickIntervalDefault, "simulated clock tick interval")
		c.Flags().Duration("duration", runDurationDefault, "how long to let the demo run before reporting")
		c.Flags().Uint64("sleep-ticks", 5, "ticks each worker sleeps before exiting")
	}
	setCmd.Flags().Int("pid", 0, "pid to reprioritize; 0 selects the lowest-pid live worker")
	setCmd.Flags().Int("priority", 0, "new priority value (lower preempts higher)")

	exectimeCmd.Flags().Duration("tick-interval", tickIntervalDefault, "simulated clock tick interval")
}
