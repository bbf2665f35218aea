package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kernel-sim/kernel-sim/sim"
	"github.com/kernel-sim/kernel-sim/sim/hardware"
	"github.com/kernel-sim/kernel-sim/sim/trace"
	"github.com/kernel-sim/kernel-sim/sim/workload"
)

var (
	workloadPath string // Path to the workload YAML file
	logLevel     string // Log verbosity level
	scheduler    string // Scheduling policy, overrides the workload file
	quantum      int    // Timer quantum in ticks, overrides the workload file
	ioDuration   int    // Ticks per I/O operation, overrides the workload file
	memorySize   int    // Memory cells, overrides the workload file
	maxTicks     int64  // Simulation horizon (0 = until power-off)
	useColor     bool   // Colour the Gantt chart
	showSummary  bool   // Print the per-process summary table
	seed         int64  // Generator seed, overrides the workload file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kernel-sim",
	Short: "Discrete-event simulator of an OS kernel's process scheduler",
}

// runCmd executes the simulation using the workload file and CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workload and print its Gantt chart",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec := loadSpec()
		kernelCfg, hwCfg := resolveConfig(cmd.Flags(), spec)
		if err := kernelCfg.Validate(); err != nil {
			logrus.Fatalf("Invalid kernel config: %v", err)
		}
		if err := hwCfg.Validate(); err != nil {
			logrus.Fatalf("Invalid hardware config: %v", err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = seed
		}
		arrivals, err := spec.Arrivals()
		if err != nil {
			logrus.Fatalf("Building programs: %v", err)
		}

		res, err := workload.Execute(kernelCfg, hwCfg, arrivals, maxTicks)
		if err != nil && !errors.Is(err, hardware.ErrHorizonReached) {
			logrus.Fatalf("%v", err)
		}
		report(os.Stdout, res)
		if err != nil {
			logrus.Warnf("Simulation stopped at the horizon (%d ticks) before all processes terminated", maxTicks)
			os.Exit(2)
		}
		logrus.Info("Simulation complete.")
	},
}

// validateCmd checks a workload file without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a workload file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		spec := loadSpec()
		arrivals, err := spec.Arrivals()
		if err != nil {
			logrus.Fatalf("Building programs: %v", err)
		}
		color.New(color.FgGreen).Fprintf(os.Stdout, "%s: %d programs OK\n", workloadPath, len(arrivals))
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func loadSpec() *workload.WorkloadSpec {
	if workloadPath == "" {
		logrus.Fatalf("Workload file not provided (--workload). Exiting simulation.")
	}
	spec, err := workload.LoadWorkloadSpec(workloadPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if err := spec.Validate(); err != nil {
		logrus.Fatalf("Invalid workload %s: %v", workloadPath, err)
	}
	return spec
}

// resolveConfig merges the workload file with CLI flags. A flag only wins
// when the user set it explicitly, so file values are not clobbered by flag
// defaults.
func resolveConfig(flags *pflag.FlagSet, spec *workload.WorkloadSpec) (sim.Config, hardware.Config) {
	kernelCfg := sim.Config{Scheduler: spec.Kernel.Scheduler}
	if flags.Changed("scheduler") {
		kernelCfg.Scheduler = scheduler
	}
	hwCfg := spec.HardwareConfig(hardware.DefaultConfig())
	if flags.Changed("quantum") {
		hwCfg.Quantum = quantum
	}
	if flags.Changed("io-duration") {
		hwCfg.IODuration = ioDuration
	}
	if flags.Changed("memory-size") {
		hwCfg.MemorySize = memorySize
	}
	roundRobin := kernelCfg.Scheduler == "rr" || kernelCfg.Scheduler == "round-robin"
	if roundRobin && hwCfg.Quantum == 0 {
		logrus.Warnf("round-robin without a quantum never preempts; set --quantum")
	}
	if !roundRobin && hwCfg.Quantum > 0 {
		logrus.Warnf("scheduler %q does not preempt on timeout; every %d ticks a TIMEOUT uses a tick with no instruction executed", kernelCfg.Scheduler, hwCfg.Quantum)
	}
	return kernelCfg, hwCfg
}

func report(w io.Writer, res *workload.Result) {
	header := color.New(color.Bold)
	header.Fprintln(w, "=== Gantt ===")
	trace.WriteGantt(w, res.Chart, trace.RenderOptions{Color: useColor})
	if showSummary {
		header.Fprintln(w, "=== Summary ===")
		trace.WriteSummary(w, trace.Summarize(res.Chart))
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := hardware.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&workloadPath, "workload", "", "Path to the workload YAML file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&scheduler, "scheduler", "fcfs", "Scheduling policy (fcfs, priority, priority-preemptive, rr)")
	runCmd.Flags().IntVar(&quantum, "quantum", defaults.Quantum, "Timer quantum in ticks (0 disables the timer)")
	runCmd.Flags().IntVar(&ioDuration, "io-duration", defaults.IODuration, "Ticks per I/O operation")
	runCmd.Flags().IntVar(&memorySize, "memory-size", defaults.MemorySize, "Memory size in instruction cells")
	runCmd.Flags().Int64Var(&maxTicks, "max-ticks", 10000, "Simulation horizon in ticks (0 = until power-off)")
	runCmd.Flags().BoolVar(&useColor, "color", true, "Colour Gantt cells by process state")
	runCmd.Flags().BoolVar(&showSummary, "summary", true, "Print the per-process summary")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the workload generator section (overrides the file)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
