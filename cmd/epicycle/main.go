package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/epicycle/internal/config"
	"github.com/san-kum/epicycle/internal/export"
	"github.com/san-kum/epicycle/internal/gui"
	"github.com/san-kum/epicycle/internal/logging"
	"github.com/san-kum/epicycle/internal/observability"
	"github.com/san-kum/epicycle/internal/orbit"
	"github.com/san-kum/epicycle/internal/scene"
	"github.com/san-kum/epicycle/internal/viz"
)

var (
	configFile string
	preset     string
	mode       string
	view       string
	speed      float64
	trailLen   int
	resetScope string
	logLevel   string
	// tui
	logFile string
	gifPath string
	// snapshot
	atTime  float64
	format  string
	snapOut string
	braille bool
	// record
	recFrames int
	delay     int
	recOut    string
	// trace
	traceFrames int
	svgPath     string
	plot        bool
	dumpStats   bool
)

// main registers the commands and runs the window host when no subcommand
// is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "epicycle",
		Short:        "heliocentric and ptolemaic planetary motion",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&mode, "mode", "venus", "venus, mars or ptolemaic")
	pf.StringVar(&view, "view", "top-down", "top-down or from-earth")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "simulation speed multiplier")
	pf.IntVar(&trailLen, "trail", 500, "trail length per series")
	pf.StringVar(&resetScope, "reset-scope", "active", "active or all")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the scene in a window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the scene in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&logFile, "log-file", "epicycle.log", "log destination while the terminal is in use")
	tuiCmd.Flags().StringVar(&gifPath, "gif", "epicycle.gif", "gif recording path")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to svg or png",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&atTime, "t", 0, "simulation time to render at")
	snapshotCmd.Flags().StringVar(&format, "format", "svg", "svg or png")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal canvas (svg only)")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record frames into an animated gif",
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&recFrames, "frames", 300, "number of frames")
	recordCmd.Flags().IntVar(&delay, "delay", 2, "delay between frames in 1/100s")
	recordCmd.Flags().StringVarP(&recOut, "out", "o", "epicycle.gif", "output file")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "print positions for a number of frames",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&traceFrames, "frames", 500, "number of frames")
	traceCmd.Flags().BoolVar(&plot, "plot", false, "plot apparent longitude instead of csv")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write the geocentric planet path as svg")
	traceCmd.Flags().BoolVar(&dumpStats, "metrics", false, "print scene metrics after the run")

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list modes, presets and their tables",
		RunE:  listModes,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, snapshotCmd, recordCmd, traceCmd, modesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file or preset, then applies explicitly set
// flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("view") {
		cfg.View = view
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("trail") {
		cfg.TrailLength = trailLen
	}
	if flags.Changed("reset-scope") {
		cfg.ResetScope = resetScope
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, metrics *observability.Metrics) (*config.Config, *scene.Controller, logging.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log := logging.New(cfg.Log)
	ctrl, err := cfg.NewController(log, metrics)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, ctrl, log, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, ctrl, log, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info(ctx, "opening window",
		logging.String("mode", cfg.Mode), logging.String("view", cfg.View), logging.Float("speed", cfg.Speed))
	return gui.Run(ctx, ctrl, cfg.SpeedRange, cfg.Window.FPS, log)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	cfg.Log.Output = f
	log := logging.New(cfg.Log)

	ctrl, err := cfg.NewController(log, nil)
	if err != nil {
		return err
	}
	return viz.Run(ctrl, viz.Controls{
		FPS:     cfg.Window.FPS,
		Speed:   cfg.SpeedRange,
		GIFPath: gifPath,
	}, log)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, ctrl, log, err := setup(cmd, nil)
	if err != nil {
		return err
	}
	if err := ctrl.Seek(atTime); err != nil {
		return fmt.Errorf("--t: %w", err)
	}

	out := os.Stdout
	if snapOut != "" {
		f, err := os.Create(snapOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w, h := ctrl.Size()
	switch strings.ToLower(format) {
	case "svg":
		if braille {
			canvas := viz.NewCanvas(100, 40)
			ctrl.Render(viz.NewSurface(canvas, w, h))
			_, err = fmt.Fprint(out, export.CanvasToSVG(canvas, 4))
			break
		}
		s := export.NewSVG(w, h)
		ctrl.Render(s)
		_, err = s.WriteTo(out)
	case "png":
		r := export.NewRaster(cfg.Window.Width, cfg.Window.Height)
		ctrl.Render(r)
		err = r.EncodePNG(out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	log.Debug(context.Background(), "snapshot written",
		logging.String("format", format), logging.Float("time", ctrl.State().Time))
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	if recFrames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}
	cfg, ctrl, log, err := setup(cmd, nil)
	if err != nil {
		return err
	}

	anim := export.NewGIF(delay)
	for i := 0; i < recFrames; i++ {
		r := export.NewRaster(cfg.Window.Width, cfg.Window.Height)
		ctrl.Frame(r)
		anim.Add(r.Image())
	}

	f, err := os.Create(recOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := anim.Encode(f); err != nil {
		return err
	}
	log.Info(context.Background(), "recording saved",
		logging.String("path", recOut), logging.Int("frames", anim.Len()))
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	if traceFrames <= 0 {
		return fmt.Errorf("--frames must be positive")
	}
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}
	_, ctrl, _, err := setup(cmd, metrics)
	if err != nil {
		return err
	}

	var (
		longitudes []float64
		prev       float64
		w          *csv.Writer
	)
	if !plot {
		w = csv.NewWriter(os.Stdout)
		w.Write([]string{"t", "planet_x", "planet_y", "apparent_x", "apparent_y", "longitude", "held"})
	}
	for i := 0; i < traceFrames; i++ {
		snap := ctrl.Tick()
		lon := snap.ApparentLongitude()
		if i > 0 {
			lon = orbit.Unwrap(prev, lon)
		}
		prev = lon
		longitudes = append(longitudes, lon)
		if w == nil {
			continue
		}
		// ptolemaic frames have no apparent position
		a := snap.Apparent
		if !snap.Mode.Heliocentric() {
			a = snap.Planet
		}
		w.Write([]string{
			strconv.FormatFloat(snap.Time, 'f', 4, 64),
			strconv.FormatFloat(snap.Planet.X, 'f', 3, 64),
			strconv.FormatFloat(snap.Planet.Y, 'f', 3, 64),
			strconv.FormatFloat(a.X, 'f', 3, 64),
			strconv.FormatFloat(a.Y, 'f', 3, 64),
			strconv.FormatFloat(lon, 'f', 3, 64),
			strconv.FormatBool(snap.ApparentHeld),
		})
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	} else {
		fmt.Println(asciigraph.Plot(longitudes,
			asciigraph.Height(15),
			asciigraph.Width(72),
			asciigraph.Caption("apparent longitude (deg)")))
	}

	if svgPath != "" {
		body := orbit.BodyGeoPlanet
		if !ctrl.State().Mode.Heliocentric() {
			body = orbit.BodyPlanet
		}
		svg := export.PathToSVG(ctrl.Trail(body), 600, 600, "#ff6600")
		if svg == "" {
			return fmt.Errorf("not enough points for %s path", body)
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
	}

	if dumpStats {
		return metrics.WriteText(os.Stdout)
	}
	return nil
}

func listModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tBODY\tRADII\tSPEEDS\tCOLOR")
	for _, m := range []orbit.Mode{orbit.ModeVenus, orbit.ModeMars} {
		t, _ := orbit.PlanetTable(m)
		fmt.Fprintf(w, "%s\t%s\tplanet %.0f, earth %.0f\tplanet %.3f, earth %.3f\t%s\n",
			m, t.Name, t.PlanetOrbitRadius, t.EarthOrbitRadius, t.PlanetAngularSpeed, t.EarthAngularSpeed, t.Color)
	}
	p := orbit.Ptolemaic
	fmt.Fprintf(w, "%s\t%s\tdeferent %.0f, epicycle %.0f, sun %.0f\tdeferent %.1f, epicycle %.1f, sun %.1f\t%s\n",
		orbit.ModePtolemaic, p.Name, p.DeferentRadius, p.EpicycleRadius, p.SunOrbitRadius,
		p.DeferentAngularSpeed, p.EpicycleAngularSpeed, p.SunAngularSpeed, p.Color)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("presets:", strings.Join(config.ListPresets(), ", "))
	return nil
}
