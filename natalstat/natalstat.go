// Public domain.

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/soniakeys/natal/aspect"
	"github.com/soniakeys/natal/chart"
	"github.com/soniakeys/natal/zodiac"
)

const parentImport = "github.com/soniakeys/natal"
const versionString = "natalstat version 0.1"
const copyrightString = "Public domain."

func main() {
	flag.Usage = func() {
		os.Stderr.WriteString("Usage: natalstat [options] <file>...\n")
		flag.PrintDefaults()
		os.Stderr.WriteString(`
For full documentation:
   go doc ` + parentImport + `/natalstat
`)
	}
	bodyName := flag.String("b", "", "count only aspects involving this body")
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	s := newStats()
	if *bodyName != "" {
		b, err := zodiac.ParseBody(*bodyName)
		if err != nil {
			log.Fatalln("-b:", err)
		}
		s.body = &b
	}
	for _, fn := range flag.Args() {
		f, err := os.Open(fn)
		if err != nil {
			log.Fatalln(err)
		}
		err = s.read(f)
		f.Close()
		if err != nil {
			log.Fatalln(fn+":", err)
		}
	}
	s.report(os.Stdout)
}

// line is one line of natal -j output.
type line struct {
	Line  int               `json:"line"`
	Error string            `json:"error"`
	Chart *chart.NatalChart `json:"chart"`
}

type aspectStat struct {
	applying int
	orbs     []float64
}

type stats struct {
	body *zodiac.Body // if not nil, count only aspects involving body

	charts, failed, ignored int

	elements   map[zodiac.Element]int
	modalities map[zodiac.Modality]int
	retrograde map[zodiac.Body]int
	aspects    map[aspect.Type]*aspectStat
}

func newStats() *stats {
	return &stats{
		elements:   map[zodiac.Element]int{},
		modalities: map[zodiac.Modality]int{},
		retrograde: map[zodiac.Body]int{},
		aspects:    map[aspect.Type]*aspectStat{},
	}
}

// read accumulates the charts of r.
func (s *stats) read(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		var l line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			s.ignored++
			continue
		}
		switch {
		case l.Error != "":
			s.failed++
		case l.Chart == nil:
			s.ignored++
		default:
			s.add(l.Chart)
		}
	}
	return sc.Err()
}

func (s *stats) add(c *chart.NatalChart) {
	s.charts++
	d := c.Dominance()
	s.elements[d.Element]++
	s.modalities[d.Modality]++
	for _, p := range c.Positions {
		if p.Retrograde {
			s.retrograde[p.Body]++
		}
	}
	as := c.Aspects
	if s.body != nil {
		as = aspect.FilterByBody(as, *s.body)
	}
	for _, a := range as {
		st := s.aspects[a.Type]
		if st == nil {
			st = &aspectStat{}
			s.aspects[a.Type] = st
		}
		st.orbs = append(st.orbs, a.Orb)
		if a.Applying {
			st.applying++
		}
	}
}

func (s *stats) report(w io.Writer) {
	fmt.Fprintln(w, "Charts:           ", s.charts)
	if s.failed != 0 {
		fmt.Fprintln(w, "Failed records:   ", s.failed)
	}
	if s.ignored != 0 {
		fmt.Fprintln(w, "Lines ignored:    ", s.ignored)
	}
	if s.charts == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dominant element   charts")
	for _, e := range zodiac.Elements {
		fmt.Fprintf(w, "  %-16s %7d\n", e, s.elements[e])
	}
	fmt.Fprintln(w, "Dominant modality  charts")
	for _, m := range zodiac.Modalities {
		fmt.Fprintf(w, "  %-16s %7d\n", m, s.modalities[m])
	}
	fmt.Fprintln(w, "Retrograde         charts")
	for _, b := range zodiac.Bodies {
		if n := s.retrograde[b]; n > 0 {
			fmt.Fprintf(w, "  %-16s %7d\n", b, n)
		}
	}

	fmt.Fprintln(w)
	if s.body != nil {
		fmt.Fprintln(w, "Aspects involving", *s.body)
	}
	fmt.Fprintln(w, "Aspect             count  applying  mean orb  sd")
	for _, t := range append(append([]aspect.Type{}, aspect.Major...), aspect.Minor...) {
		st := s.aspects[t]
		if st == nil {
			continue
		}
		mean, sd := stat.MeanStdDev(st.orbs, nil)
		if len(st.orbs) < 2 {
			sd = 0
		}
		fmt.Fprintf(w, "  %-16s %5d  %7.0f%%  %8.2f  %.2f\n", t, len(st.orbs),
			100*float64(st.applying)/float64(len(st.orbs)), mean, sd)
	}
}
