// Command sandrun runs the sand simulation headless and logs species counts.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"mad-sand/internal/sims/sand"

	log "github.com/sirupsen/logrus"
)

var errBadPaint = errors.New("paint spec must look like species@x,y,r")

type paintOp struct {
	species sand.Species
	x, y, r int
}

// parsePaint reads a species@x,y,r brush stroke.
func parsePaint(arg string) (paintOp, error) {
	name, coords, ok := strings.Cut(arg, "@")
	if !ok {
		return paintOp{}, fmt.Errorf("%w: %q", errBadPaint, arg)
	}
	species, err := sand.ParseSpecies(name)
	if err != nil {
		return paintOp{}, err
	}
	parts := strings.Split(coords, ",")
	if len(parts) != 3 {
		return paintOp{}, fmt.Errorf("%w: %q", errBadPaint, arg)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return paintOp{}, fmt.Errorf("%w: %q: %v", errBadPaint, arg, err)
		}
		nums[i] = n
	}
	if nums[2] < 0 {
		return paintOp{}, fmt.Errorf("%w: negative radius in %q", errBadPaint, arg)
	}
	return paintOp{species: species, x: nums[0], y: nums[1], r: nums[2]}, nil
}

type paintList []paintOp

func (p *paintList) String() string { return fmt.Sprintf("%d strokes", len(*p)) }

func (p *paintList) Set(s string) error {
	op, err := parsePaint(s)
	if err != nil {
		return err
	}
	*p = append(*p, op)
	return nil
}

// setList applies key=value tunable overrides to a config as they are parsed.
type setList struct{ cfg *sand.Config }

func (s setList) String() string { return "" }

func (s setList) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	return s.cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value))
}

type options struct {
	cfg    sand.Config
	ticks  int
	report int
	paints []paintOp
}

// run builds the universe and its scene, applies the paint strokes and ticks
// it, logging a census every report ticks and once at the end.
func run(opts options, logger *log.Logger) (map[sand.Species]int, error) {
	u, err := sand.NewWithConfig(opts.cfg)
	if err != nil {
		return nil, fmt.Errorf("create universe: %w", err)
	}
	u.Reset(opts.cfg.Seed)
	for _, op := range opts.paints {
		u.Paint(op.x, op.y, op.r, op.species)
	}
	logger.WithFields(log.Fields{
		"w":       opts.cfg.Width,
		"h":       opts.cfg.Height,
		"seed":    opts.cfg.Seed,
		"scene":   opts.cfg.Scene,
		"ticks":   opts.ticks,
		"strokes": len(opts.paints),
	}).Info("start")

	for i := 1; i <= opts.ticks; i++ {
		u.Tick()
		if opts.report > 0 && i%opts.report == 0 && i != opts.ticks {
			logCensus(logger, u.Ticks(), u.Census(), "census")
		}
	}
	census := u.Census()
	logCensus(logger, u.Ticks(), census, "done")
	return census, nil
}

func logCensus(logger *log.Logger, tick uint64, census map[sand.Species]int, msg string) {
	fields := log.Fields{"tick": tick}
	species := make([]sand.Species, 0, len(census))
	for s := range census {
		species = append(species, s)
	}
	sort.Slice(species, func(i, j int) bool { return species[i] < species[j] })
	for _, s := range species {
		if s == sand.Empty {
			continue
		}
		fields[strings.ToLower(s.String())] = census[s]
	}
	logger.WithFields(fields).Info(msg)
}

func main() {
	cfg := sand.DefaultConfig()
	opts := options{cfg: cfg}
	var paints paintList
	level := flag.String("log", "info", "log level (debug, info, warn, error)")
	flag.IntVar(&opts.cfg.Width, "w", cfg.Width, "grid width")
	flag.IntVar(&opts.cfg.Height, "h", cfg.Height, "grid height")
	flag.Int64Var(&opts.cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.StringVar(&opts.cfg.Scene, "scene", sand.SceneDunes, "initial scene (empty or dunes)")
	flag.IntVar(&opts.ticks, "ticks", 600, "ticks to simulate")
	flag.IntVar(&opts.report, "report", 100, "log a census every n ticks (0 disables)")
	flag.Var(&paints, "paint", "brush stroke species@x,y,r (repeatable)")
	flag.Var(setList{cfg: &opts.cfg}, "set", "tunable override key=value (repeatable)")
	flag.Parse()

	logger := log.New()
	logger.SetOutput(os.Stderr)
	lvl, err := log.ParseLevel(*level)
	if err != nil {
		logger.Fatalf("bad -log value: %v", err)
	}
	logger.SetLevel(lvl)

	if opts.cfg.Scene != sand.SceneEmpty && opts.cfg.Scene != sand.SceneDunes {
		logger.Fatalf("unknown scene %q", opts.cfg.Scene)
	}
	opts.paints = paints
	if _, err := run(opts, logger); err != nil {
		logger.Fatal(err)
	}
}
