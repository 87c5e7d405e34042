/*
Command natalstat summarizes charts computed by natal.

  Usage: natalstat [options] <file>...
    -b="": count only aspects involving this body
    -v=false: display version and copyright

The files are captured output of "natal -j", one JSON chart per line.  Lines
that report an error are counted as failed records.  Lines that are not JSON
charts are counted as ignored.

The report gives the number of charts, how many charts have each element
and modality dominant, how many charts have each body retrograde, and for
each aspect type the number of occurrences, the fraction applying, and the
mean and standard deviation of the orb.

Example:

  natal -j -m births.txt > births.json
  natalstat -b Moon births.json

counts the aspects to the Moon in all charts of births.txt, minor aspects
included.
*/
package main
