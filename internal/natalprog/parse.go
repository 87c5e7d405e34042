// Public domain.

package natalprog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/natal/chart"
)

// record is one input line.
type record struct {
	line  int
	birth chart.BirthData
	err   error // parse error, reported in place of a chart
}

var rxOffset = regexp.MustCompile(`^(?:UTC)?([+-])(\d{1,2}):?(\d{2})$`)

// parseRecord parses a line of the form
//
//	YYYY-MM-DD HH:MM lat lon [zone] [name...]
//
// where zone is an IANA name such as Europe/Paris, the word UTC, or a
// fixed offset such as +05:30 or -0800.
func parseRecord(s string) (chart.BirthData, error) {
	f := strings.Fields(s)
	if len(f) < 4 {
		return chart.BirthData{}, fmt.Errorf("%w: want date, time, latitude and longitude",
			chart.ErrInvalidBirthData)
	}
	lat, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return chart.BirthData{}, fmt.Errorf("%w: latitude %q", chart.ErrInvalidBirthData, f[2])
	}
	lon, err := strconv.ParseFloat(f[3], 64)
	if err != nil {
		return chart.BirthData{}, fmt.Errorf("%w: longitude %q", chart.ErrInvalidBirthData, f[3])
	}
	b := chart.BirthData{
		Date:     f[0],
		Time:     f[1],
		Location: &chart.Location{Latitude: lat, Longitude: lon},
	}
	rest := f[4:]
	if len(rest) > 0 {
		z := rest[0]
		switch m := rxOffset.FindStringSubmatch(z); {
		case m != nil:
			h, _ := strconv.Atoi(m[2])
			mi, _ := strconv.Atoi(m[3])
			off := h*60 + mi
			if m[1] == "-" {
				off = -off
			}
			b.UTCOffset = &off
			rest = rest[1:]
		case z == "UTC" || z == "Z":
			off := 0
			b.UTCOffset = &off
			rest = rest[1:]
		case strings.Contains(z, "/"):
			b.Location.Timezone = z
			rest = rest[1:]
		}
	}
	b.Name = strings.Join(rest, " ")
	b.Location.Name = b.Name
	return b, b.Validate()
}

// nameZone returns the first word of name if it is a time zone name.  Such
// a record was likely written with a zone like Japan or EST, which
// parseRecord does not recognize, so its clock time was taken as UTC.
func nameZone(name string) string {
	z, _, _ := strings.Cut(name, " ")
	if z == "" || z == "Local" {
		return ""
	}
	if _, err := time.LoadLocation(z); err != nil {
		return ""
	}
	return z
}

// splitter sends a record for each non-blank, non-comment line of r, then
// closes recCh.  A read error is sent on errCh and ends the input.
func splitter(r io.Reader, recCh chan<- record, errCh chan<- error) {
	defer close(recCh)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		l := strings.TrimSpace(sc.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		b, err := parseRecord(l)
		recCh <- record{line: n, birth: b, err: err}
	}
	if err := sc.Err(); err != nil {
		errCh <- err
	}
}
