// Public domain.

// Package natalprog implements the natal command.
package natalprog

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/soniakeys/exit"

	"github.com/soniakeys/natal/chart"
	"github.com/soniakeys/natal/houses"
	"github.com/soniakeys/natal/internal/config"
	"github.com/soniakeys/natal/internal/logging"
	"github.com/soniakeys/natal/internal/metrics"
	"github.com/soniakeys/natal/internal/server"
	"github.com/soniakeys/natal/zodiac"
)

const versionString = "natal version 0.1 Go source."
const copyrightString = "Public domain."

// errUsage reports a command line that could not be parsed.
var errUsage = errors.New("usage")

// Main runs the command and terminates the process on error.
func Main() {
	defer exit.Handler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case errors.Is(err, errUsage):
		os.Exit(1)
	case err != nil:
		exit.Log(err)
	}
}

type commandLine struct {
	config  string // config file
	system  string // house system
	minor   bool   // -m option
	json    bool   // -j option
	workers int    // -w option
	http    string // serve HTTP on this address
	help    bool   // -h option
	version bool   // -v option
	input   string // birth records
}

func parseCommandLine(args []string, stderr io.Writer) (*commandLine, error) {
	var cl commandLine
	fs := flag.NewFlagSet("natal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cl.help, "h", false, "")
	fs.BoolVar(&cl.version, "v", false, "")
	fs.StringVar(&cl.config, "c", "", "")
	fs.StringVar(&cl.system, "s", "", "")
	fs.BoolVar(&cl.minor, "m", false, "")
	fs.BoolVar(&cl.json, "j", false, "")
	fs.IntVar(&cl.workers, "w", 0, "")
	fs.StringVar(&cl.http, "http", "", "")
	fs.Usage = func() {
		io.WriteString(stderr, `
Usage: natal [options] <file>     compute charts for birth records in file
       natal [options] -          compute charts for records from stdin
       natal [options] -http <addr>
                                  serve charts over HTTP
       natal -h                   display help and quick reference
       natal -v                   display version and copyright

Options:
       -c <config-file>
       -s <house-system>          placidus, koch, equal or whole-sign
       -m                         include minor aspects
       -j                         print charts as JSON lines
       -w <workers>
`)
	}
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	switch {
	case cl.help, cl.version:
	case cl.http != "" && fs.NArg() == 0:
	case fs.NArg() != 1:
		fs.Usage()
		return nil, errUsage
	default:
		cl.input = fs.Arg(0)
	}
	return &cl, nil
}

// apply lets command line options override the configuration.
func (cl *commandLine) apply(cfg *config.Config) {
	if cl.system != "" {
		cfg.HouseSystem = cl.system
	}
	if cl.minor {
		cfg.MinorAspects = true
	}
	if cl.workers > 0 {
		cfg.Workers = cl.workers
	}
	if cl.http != "" {
		cfg.HTTP.Addr = cl.http
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cl, err := parseCommandLine(args, stderr)
	if err != nil {
		return err
	}
	switch {
	case cl.help:
		printHelp(stdout)
		return nil
	case cl.version:
		fmt.Fprintln(stdout, versionString)
		fmt.Fprintln(stdout, copyrightString)
		return nil
	}

	cfg, err := config.Load(cl.config)
	if err != nil {
		return err
	}
	cl.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	system, _ := cfg.System()
	log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Out: stderr})

	var rec *metrics.Collector
	if cl.http != "" {
		if rec, err = metrics.NewCollector(nil); err != nil {
			return err
		}
	}
	opts := []chart.Option{
		chart.WithHouseSystem(system),
		chart.WithMinorAspects(cfg.MinorAspects),
		chart.WithTimeout(cfg.Timeout),
		chart.WithLogger(logging.Component(log, "engine")),
	}
	if rec != nil {
		opts = append(opts, chart.WithRecorder(rec))
	}
	eng := chart.New(opts...)

	if cl.http != "" {
		return server.New(server.Config{
			Addr:        cfg.HTTP.Addr,
			Log:         log,
			Engine:      eng,
			Metrics:     rec,
			CORSOrigins: cfg.HTTP.CORSOrigins,
			Version:     versionString,
		}).Run(ctx, 5*time.Second)
	}

	in := stdin
	if cl.input != "-" {
		f, err := os.Open(cl.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return batch(ctx, in, stdout, eng, cfg.WorkerCount(), cl.json, log)
}

// batch computes a chart for every record of in and prints one line per
// record, in input order.
func batch(ctx context.Context, in io.Reader, out io.Writer, eng *chart.Engine,
	workers int, asJSON bool, log zerolog.Logger) error {
	log = logging.Component(log, "batch")
	recCh := make(chan record)
	errCh := make(chan error)
	go splitter(in, recCh, errCh)

	solve := func(r record) string {
		if r.err != nil {
			log.Warn().Int("line", r.line).Err(r.err).Msg("record rejected")
			return formatError(r.line, r.err, asJSON)
		}
		if z := nameZone(r.birth.Name); z != "" {
			log.Warn().Int("line", r.line).Str("zone", z).
				Msg("name starts with a time zone; clock time taken as UTC")
		}
		c, err := eng.Compute(ctx, r.birth)
		if err != nil {
			return formatError(r.line, err, asJSON)
		}
		if asJSON {
			return formatJSON(r.line, c)
		}
		return summary(c)
	}
	if !asJSON {
		fmt.Fprintf(out, "# %s  houses %s\n", versionString, eng.System())
	}
	start := time.Now()
	n := 0
	err := process(recCh, errCh, workers, solve, func(s string) {
		fmt.Fprintln(out, s)
		n++
	})
	log.Info().Int("records", n).Dur("elapsed", time.Since(start)).Msg("done")
	return err
}

func formatError(line int, err error, asJSON bool) string {
	if asJSON {
		b, _ := json.Marshal(map[string]any{"line": line, "error": err.Error()})
		return string(b)
	}
	return fmt.Sprintf("# line %d: %v", line, err)
}

func formatJSON(line int, c *chart.NatalChart) string {
	b, err := json.Marshal(struct {
		Line      int               `json:"line"`
		Chart     *chart.NatalChart `json:"chart"`
		Dominance chart.Dominance   `json:"dominance"`
	}{line, c, c.Dominance()})
	if err != nil {
		return formatError(line, err, true)
	}
	return string(b)
}

// summary formats the main placements of c on one line.
func summary(c *chart.NatalChart) string {
	name := c.Birth.Name
	if name == "" {
		name = "-"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %s", name, c.Instant.Format("2006-01-02 15:04Z"))
	for _, body := range []zodiac.Body{zodiac.Sun, zodiac.Moon, zodiac.Ascendant, zodiac.Midheaven} {
		p, _ := c.Position(body)
		fmt.Fprintf(&b, "  %s %s %s", body.Abbr(), zodiac.FormatDegree(p.SignDegree), p.Sign.Abbr())
	}
	d := c.Dominance()
	fmt.Fprintf(&b, "  %s %s  %d aspects", d.Element, d.Modality, len(c.Aspects))
	if c.Approximated {
		b.WriteString("  (approx. houses)")
	}
	return b.String()
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `
Natal computes natal charts: planetary positions, lunar nodes, house cusps
and aspects.  Input is a file of birth records, one per line:

   YYYY-MM-DD HH:MM latitude longitude [zone] [name...]

Latitude is degrees north, longitude degrees east.  Zone is an IANA time
zone name, UTC, or an offset such as +05:30.  Without a zone the clock time
is taken as UTC.  Blank lines and lines starting with # are ignored.

Output is one line per record in input order, or with -j one JSON chart
per line.

House systems:
`)
	for _, s := range houses.Systems {
		fmt.Fprintf(w, "   %s\n", s)
	}
	fmt.Fprint(w, `
Config file keys (YAML), with NATAL_ environment overrides:
   house_system   minor_aspects   timeout   workers
   log.level      log.pretty      http.addr http.cors_origins
`)
}
