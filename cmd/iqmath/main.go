package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/iqmath/internal/config"
	"github.com/san-kum/iqmath/internal/experiment"
	"github.com/san-kum/iqmath/internal/logging"
	"github.com/san-kum/iqmath/internal/sweep"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	start     int64
	stop      int64
	step      int64
	tolerance float64
	radius    int32
	noSave    bool

	freq       float64
	sampleRate int
	amplitude  float64
	toneLength float64

	addr string

	liveStep      int32
	liveTolerance float64

	fftSize   int
	fftCycles int

	withSamples bool
	svgOut      string
	lissajous   bool

	scanRadii []int32
	scanStep  int64
)

var logger *slog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "iqmath",
		Short: "Q15 fixed-point trig and sqrt kernels",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel)
			slog.SetDefault(logger)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	evalCmd := &cobra.Command{
		Use:   "eval [op] [args...]",
		Short: "evaluate one kernel (sin, cos, sincos, atan2, sqrt, mag, clarke, park)",
		Args:  cobra.MinimumNArgs(2),
		RunE:  evalKernel,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [kernel]",
		Short: "sweep a kernel against float64 reference and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Int64Var(&start, "start", 0, "first input")
	sweepCmd.Flags().Int64Var(&stop, "stop", 0, "last input (inclusive)")
	sweepCmd.Flags().Int64Var(&step, "step", 0, "input increment (0 uses the kernel domain)")
	sweepCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "error bound in LSB")
	sweepCmd.Flags().Int32Var(&radius, "radius", config.DefaultRadius, "vector length for atan2 and magnitude")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	kernelsCmd := &cobra.Command{
		Use:   "kernels",
		Short: "list sweepable kernels",
		RunE:  listKernels,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run output and error",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withSamples, "samples", false, "include samples")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a run's error curve, or the sin/cos locus, as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().BoolVar(&lissajous, "lissajous", false, "draw the sin/cos locus instead of a run")

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "print the sine and arctangent tables",
		RunE:  printTables,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "spectral purity of the table sine",
		RunE:  runSpectrum,
	}
	spectrumCmd.Flags().IntVar(&fftSize, "n", 1024, "record length (power of two)")
	spectrumCmd.Flags().IntVar(&fftCycles, "cycles", 8, "whole periods in the record")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark every kernel over its domain",
		RunE:  benchKernels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kernel]",
		Short: "list available presets for a kernel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for kernel: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				r := config.GetPreset(args[0], p).Sweep
				fmt.Printf("  %-10s [%d, %d] step %d\n", p, r.Start, r.Stop, r.Step)
			}
			return nil
		},
	}

	toneCmd := &cobra.Command{
		Use:   "tone",
		Short: "play a sine tone from the Q15 oscillator",
		RunE:  playTone,
	}
	toneCmd.Flags().Float64Var(&freq, "freq", config.DefaultFrequency, "frequency in Hz")
	toneCmd.Flags().IntVar(&sampleRate, "rate", config.DefaultSampleRate, "sample rate in Hz")
	toneCmd.Flags().Float64Var(&amplitude, "amp", config.DefaultAmplitude, "output amplitude (0-1)")
	toneCmd.Flags().Float64Var(&toneLength, "time", config.DefaultToneLength, "duration in seconds")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "rotate a table phasor in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Int32Var(&liveStep, "step", 64, "angle step per frame in LSB")
	liveCmd.Flags().Float64Var(&liveTolerance, "tolerance", 40, "round-trip error bound in LSB")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve kernels over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "error bound for sweep requests")
	serveCmd.Flags().Int32Var(&radius, "radius", config.DefaultRadius, "vector length for atan2 and magnitude")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of sweeps with accuracy checks",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [kernel]",
		Short: "find the worst-case radius for atan2 or magnitude",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().Int32SliceVar(&scanRadii, "radii", []int32{8, 64, 512, 4096, 16384, 30000, 32767}, "radii to sweep")
	scanCmd.Flags().Int64Var(&scanStep, "step", 7, "angle step in LSB")

	rootCmd.AddCommand(evalCmd, sweepCmd, listCmd, kernelsCmd, plotCmd, exportCmd, exportCSVCmd, svgCmd,
		tableCmd, spectrumCmd, benchCmd, presetsCmd, toneCmd, liveCmd, serveCmd, initCmd, scenarioCmd, scanCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the config file, then a preset, then explicitly set
// flags over the defaults.
func loadConfig(cmd *cobra.Command, kernel string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if kernel != "" {
		cfg.Kernel = kernel
	}

	if preset != "" {
		p := config.GetPreset(cfg.Kernel, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Kernel))
		}
		cfg.Sweep = p.Sweep
		cfg.Tolerance = p.Tolerance
		if p.Radius != 0 {
			cfg.Radius = p.Radius
		}
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("start") {
		cfg.Sweep.Start = start
	}
	if flags.Changed("stop") {
		cfg.Sweep.Stop = stop
	}
	if flags.Changed("step") {
		cfg.Sweep.Step = step
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("freq") {
		cfg.Audio.Frequency = freq
	}
	if flags.Changed("rate") {
		cfg.Audio.SampleRate = sampleRate
	}
	if flags.Changed("amp") {
		cfg.Audio.Amplitude = amplitude
	}
	if flags.Changed("time") {
		cfg.Audio.Duration = toneLength
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.LogLevel != logLevel {
		logger = logging.NewLogger(cfg.LogLevel)
		slog.SetDefault(logger)
	}
	return cfg, nil
}

// newRegistry returns the kernel registry with atan2 and magnitude bound to
// the configured radius.
func newRegistry(cfg *config.Config) *experiment.Registry {
	reg := experiment.NewRegistry()
	if cfg.Radius > 0 && cfg.Radius != experiment.DefaultRadius {
		r := cfg.Radius
		reg.Register("atan2", func() sweep.Kernel { return sweep.NewAtan2Kernel(r) })
		reg.Register("magnitude", func() sweep.Kernel { return sweep.NewMagnitudeKernel(r) })
	}
	return reg
}
