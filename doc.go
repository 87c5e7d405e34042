/*
Command natal computes natal charts: planetary positions, lunar nodes, house
cusps and aspects for a moment and place of birth.

Contents

Version 0.1

  Program overview
  Command line usage
  Configuration
  HTTP service
  File formats
  Algorithm outline


Program overview

Input is a file of birth records, one per line.  Output is one line per
record summarizing the chart, or with -j the complete chart as JSON.

Sample run:

Put these records in a file, say births.txt,

     # date     time  lat      lon      zone          name
     1990-06-15 14:30 48.8566  2.3522   Europe/Paris  Paris
     2001-09-09 01:46 40.7128  -74.006  -04:00        New York

type "natal births.txt" and get output like

  # natal version 0.1 Go source.  houses placidus
  Paris        1990-06-15 12:30Z  Sun 24°09′ Gem  Moo 15°29′ Pis  ...
  New York     2001-09-09 05:46Z  Sun 16°27′ Vir  ...

Each line gives the name, the instant of birth in UTC, the sign placement
of the Sun, Moon, Ascendant and Midheaven, the dominant element and
modality, and the number of aspects.  Records that cannot be computed are
reported in place as comment lines naming the input line and the problem.
Output is always in input order even though records are computed
concurrently.


Command line usage

  natal [options] <file>     compute charts for birth records in file
  natal [options] -          compute charts for records from stdin
  natal [options] -http <addr>
                             serve charts over HTTP
  natal -h                   display help and quick reference
  natal -v                   display version and copyright

Options:

  -c <config-file>   read configuration from this file
  -s <house-system>  placidus, koch, equal or whole-sign
  -m                 include minor aspects
  -j                 print charts as JSON lines
  -w <workers>       number of concurrent computations


Configuration

Settings are read from a YAML file, natal.yaml in the current directory by
default, then overridden by environment variables, then by command line
options.  A .env file in the current directory is loaded into the
environment first.

  house_system        NATAL_HOUSE_SYSTEM     placidus
  minor_aspects       NATAL_MINOR_ASPECTS    false
  timeout             NATAL_TIMEOUT          2s
  workers             NATAL_WORKERS          0, meaning one per CPU
  log.level           NATAL_LOG_LEVEL        info
  log.pretty          NATAL_LOG_PRETTY       false
  http.addr           NATAL_HTTP_ADDR        :8080
  http.cors_origins   NATAL_CORS_ORIGINS     *

Logs are written to stderr as JSON lines, or in a console format with
log.pretty.


HTTP service

With -http the program serves

  GET  /health        liveness and version
  GET  /api/systems   supported house systems
  POST /api/chart     compute a chart
  GET  /metrics       Prometheus metrics

POST /api/chart takes a JSON body

  {
    "name": "Paris",
    "date": "1990-06-15",
    "time": "14:30",
    "location": {"latitude": 48.8566, "longitude": 2.3522,
                 "timezone": "Europe/Paris"},
    "house_system": "koch"
  }

and returns the chart and its dominance summary.  Invalid birth data is
reported with status 400, a chart that could not be computed with 422, and
a computation exceeding the configured timeout with 504.


File formats

A birth record is

  YYYY-MM-DD HH:MM latitude longitude [zone] [name...]

Latitude is degrees north, longitude degrees east.  Zone is an IANA time
zone name such as America/New_York, the word UTC, or a fixed offset from
UTC such as +05:30 or -0800.  A zone must contain a slash or look like an
offset; anything else starts the name.  A name that starts with a zone
name such as Japan or EST draws a warning in the log.  Without a zone the
clock time is taken as UTC.  Blank lines and lines starting with # are
ignored.


Algorithm outline

The clock time is converted to UTC and then to a Julian Day.  Terrestrial
time corrections are not applied.

The Sun is found from the Earth's mean orbital elements, the Moon from the
leading terms of the lunar theory.  Planets use mean orbital elements with
secular rates, solved with Kepler's equation and reduced to geocentric
ecliptic coordinates.  Longitudes are referred to the mean equinox of date.
Planet speeds are a forward difference over one hour; a negative speed
marks the body retrograde.  Sun and Moon speeds are their mean daily rates,
so neither is ever retrograde.  The north node is the mean node and the
south node is opposite it.

House cusps follow from sidereal time, obliquity and latitude.  Placidus
cusps are an approximation at every latitude: cusps 11, 12, 2 and 3 divide
the MC to Ascendant and Ascendant to IC arcs into equal thirds of
longitude, not of time.  Koch cusps are true Koch, the ascendants of
sidereal times offset by thirds of the MC degree's semi-arc.  Where Koch
is undefined, inside the polar circles, or its cusps leave their
quadrants, the quadrants are trisected as for Placidus and the chart is
marked approximated.  Equal and whole sign houses are exact everywhere.

Aspects are tested in order conjunction, opposition, trine, square,
sextile, then with -m the minor aspects.  The allowed orb of each aspect
type is scaled by the bodies involved: wider for the Sun and Moon, narrower
for the slow planets and the nodes.  An aspect is applying if the orb will
be smaller one day later at current speeds.


Public domain.
*/
package main
