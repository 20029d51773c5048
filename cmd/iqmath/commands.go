package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/iqmath/iq"
	"github.com/san-kum/iqmath/internal/analysis"
	"github.com/san-kum/iqmath/internal/audio"
	"github.com/san-kum/iqmath/internal/automation"
	"github.com/san-kum/iqmath/internal/experiment"
	"github.com/san-kum/iqmath/internal/export"
	"github.com/san-kum/iqmath/internal/optim"
	"github.com/san-kum/iqmath/internal/server"
	"github.com/san-kum/iqmath/internal/storage"
	"github.com/san-kum/iqmath/internal/viz"
)

var errArgs = errors.New("wrong number of arguments")

// evalLine is one named Q15 output of an eval op.
type evalLine struct {
	Name  string
	Value int64
	// Angle marks values in turns rather than unit amplitude.
	Angle bool
}

func parseArgs(args []string) ([]int32, error) {
	out := make([]int32, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", a, err)
		}
		out[i] = int32(v)
	}
	return out, nil
}

func evaluate(op string, raw []string) ([]evalLine, error) {
	if op == "sqrt" {
		if len(raw) != 1 {
			return nil, fmt.Errorf("sqrt: %w", errArgs)
		}
		n, err := strconv.ParseUint(raw[0], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", raw[0], err)
		}
		return []evalLine{{Name: "sqrt", Value: int64(iq.Sqrt(uint32(n)))}}, nil
	}

	args, err := parseArgs(raw)
	if err != nil {
		return nil, err
	}

	want := map[string]int{"sin": 1, "cos": 1, "sincos": 1, "atan2": 2, "mag": 2, "clarke": 2, "park": 3}
	n, ok := want[op]
	if !ok {
		return nil, fmt.Errorf("unknown op: %s", op)
	}
	if len(args) != n {
		return nil, fmt.Errorf("%s takes %d arguments: %w", op, n, errArgs)
	}

	switch op {
	case "sin":
		return []evalLine{{Name: "sin", Value: int64(iq.Sin(args[0]))}}, nil
	case "cos":
		return []evalLine{{Name: "cos", Value: int64(iq.Cos(args[0]))}}, nil
	case "sincos":
		s, c := iq.SinCos(args[0])
		return []evalLine{{Name: "sin", Value: int64(s)}, {Name: "cos", Value: int64(c)}}, nil
	case "atan2":
		return []evalLine{{Name: "atan2", Value: int64(iq.Atan2(args[0], args[1])), Angle: true}}, nil
	case "mag":
		return []evalLine{{Name: "mag", Value: int64(iq.Magnitude(args[0], args[1]))}}, nil
	case "clarke":
		alpha, beta := iq.Clarke(args[0], args[1])
		return []evalLine{{Name: "alpha", Value: int64(alpha)}, {Name: "beta", Value: int64(beta)}}, nil
	default:
		d, q := iq.Park(args[0], args[1], iq.NewPhasor(args[2]))
		return []evalLine{{Name: "d", Value: int64(d)}, {Name: "q", Value: int64(q)}}, nil
	}
}

func evalKernel(cmd *cobra.Command, args []string) error {
	lines, err := evaluate(args[0], args[1:])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range lines {
		if l.Angle {
			fmt.Fprintf(w, "%s\t%d\t%.3f°\n", l.Name, l.Value, float64(l.Value)*360/float64(iq.One))
		} else {
			fmt.Fprintf(w, "%s\t%d\t%.6f\n", l.Name, l.Value, iq.Q15ToFloat(int32(l.Value)))
		}
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	kernel := ""
	if len(args) > 0 {
		kernel = args[0]
	}
	cfg, err := loadConfig(cmd, kernel)
	if err != nil {
		return err
	}

	registry := newRegistry(cfg)
	exp := experiment.New(experiment.Config{
		Kernel:    cfg.Kernel,
		Range:     cfg.SweepRange(),
		Tolerance: cfg.Tolerance,
	})
	if err := exp.SetupFromRegistry(registry); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Debug("sweep starting", "kernel", cfg.Kernel, "range", cfg.SweepRange())
	fmt.Printf("sweeping %s...\n", cfg.Kernel)
	startTime := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(startTime)
	logger.Info("sweep done", "kernel", cfg.Kernel, "samples", len(result.Samples), "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Tolerance, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("range: [%d, %d] step %d\n", result.Config.Start, result.Config.Stop, result.Config.Step)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	printMetrics(os.Stdout, result.Metrics)

	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

// openStore returns the run store at the configured data directory, so the
// config file's data_dir applies to reads as well as to sweeps.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKERNEL\tTIME\tRANGE\tSAMPLES\tMAX ERR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%d, %d]/%d\t%d\t%.1f\n",
			run.ID,
			run.Kernel,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start, run.Stop, run.Step,
			run.Samples,
			run.Metrics["max_abs_error"],
		)
	}

	return w.Flush()
}

func listKernels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KERNEL\tDOMAIN")
	for _, name := range registry.ListKernels() {
		k, _ := registry.GetKernel(name)
		d := k.Domain()
		fmt.Fprintf(w, "%s\t[%d, %d] step %d\n", name, d.Start, d.Stop, d.Step)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kernel: %s\n", meta.Kernel)
	fmt.Printf("samples: %d\n\n", len(samples))

	outputs := make([]float64, len(samples))
	errs := make([]float64, len(samples))
	for i, s := range samples {
		outputs[i] = float64(s.Output)
		errs[i] = s.Error
	}

	fmt.Println(viz.Plot(outputs, meta.Kernel+" output"))
	fmt.Println()
	fmt.Println(viz.Plot(errs, meta.Kernel+" error (LSB)"))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if !withSamples {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := storage.WriteSamplesCSV(w, samples); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func renderSVG(cmd *cobra.Command, args []string) error {
	var svg string
	if lissajous {
		svg = export.LissajousSVG(analysis.TracePhasor(64), 600, 600, "#00ffff")
	} else {
		if len(args) != 1 {
			return fmt.Errorf("svg: run id required unless --lissajous: %w", errArgs)
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		samples, err := st.LoadSamples(args[0])
		if err != nil {
			return err
		}
		svg = export.ErrorCurveSVG(samples, 800, 300, "#00ff88")
	}
	if svg == "" {
		return fmt.Errorf("nothing to render")
	}

	if svgOut == "" {
		_, err := fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func printTables(cmd *cobra.Command, args []string) error {
	tab := iq.SinCosTable()
	fmt.Println(viz.Title.Render("quarter-wave sine table (Q15)"))
	for i := 0; i < len(tab); i += 8 {
		fmt.Printf("%3d:", i)
		for _, v := range tab[i : i+8] {
			fmt.Printf(" 0x%04X", v)
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Println(viz.Title.Render("arctangent steps (Q15 turns)"))
	for i, v := range iq.AtanDiv() {
		fmt.Printf("  atan(2^-%-2d) = %5d\n", i, v)
	}
	return nil
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return fmt.Errorf("n must be a power of two >= 16, got %d", fftSize)
	}
	if fftCycles < 1 || fftCycles >= fftSize/2 {
		return fmt.Errorf("cycles must be in [1, %d), got %d", fftSize/2, fftCycles)
	}

	ps := analysis.PowerSpectrum(analysis.SineWave(fftSize, fftCycles))
	s := analysis.Analyze(ps, fftCycles)

	// Floor empty bins so the chart keeps a finite scale.
	plot := make([]float64, len(ps))
	for i, v := range ps {
		plot[i] = math.Max(20*math.Log10(v/ps[fftCycles]), -140)
	}
	fmt.Println(viz.Plot(plot, "spectrum (dBc)"))
	fmt.Println()

	fmt.Println(viz.Metric("bin", strconv.Itoa(s.Fundamental)))
	fmt.Println(viz.Metric("amplitude", fmt.Sprintf("%.1f", s.Amplitude)))
	fmt.Println(viz.Metric("THD", fmt.Sprintf("%.2f dB", s.THD)))
	fmt.Println(viz.Metric("SFDR", fmt.Sprintf("%.2f dB (bin %d)", s.SFDR, s.Spur)))
	return nil
}

func benchKernels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KERNEL\tSAMPLES\tTIME\tEVALS/SEC\tMAX ERR")

	for _, name := range registry.ListKernels() {
		exp := experiment.New(experiment.Config{Kernel: name, Tolerance: cfg.Tolerance})
		if err := exp.SetupFromRegistry(registry); err != nil {
			return err
		}
		startTime := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(startTime)
		n := len(result.Samples)
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.1f\n",
			name, n, elapsed, float64(n)/elapsed.Seconds(), result.Metrics["max_abs_error"])
	}
	return w.Flush()
}

func playTone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}

	osc, err := audio.NewOscillator(cfg.Audio.Frequency, float64(cfg.Audio.SampleRate))
	if err != nil {
		return err
	}
	osc.Amplitude = cfg.Audio.Amplitude

	player := audio.NewPlayer(osc, logger)
	if err := player.Start(); err != nil {
		return err
	}
	defer player.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Printf("playing %.1f Hz for %.1fs\n", cfg.Audio.Frequency, cfg.Audio.Duration)
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cfg.Audio.Duration * float64(time.Second))):
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	m := viz.NewPhasorModel(liveStep, liveTolerance)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(newRegistry(cfg), cfg.Tolerance, logger)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, st, logger)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tKERNEL\tSAMPLES\tMAX ERR\tLIMIT\tRESULT")
	for i, r := range results {
		verdict := viz.Good.Render("pass")
		if !r.Pass {
			verdict = viz.Bad.Render("FAIL")
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.1f\t%.1f\t%s\n", i+1, r.Step.Kernel, len(r.Result.Samples),
			r.Result.Metrics["max_abs_error"], r.Step.MaxError, verdict)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !automation.Passed(results) {
		return fmt.Errorf("scenario %s: accuracy checks failed", sc.Name)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	worst, points, err := optim.RadiusScan(context.Background(), args[0], scanRadii, scanStep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RADIUS\tMAX ERR")
	for _, p := range points {
		fmt.Fprintf(w, "%.0f\t%.1f\n", p.Params["radius"], p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nworst radius: %.0f (%.1f LSB)\n", worst.Params["radius"], worst.Value)
	return nil
}
