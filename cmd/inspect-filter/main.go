// Command inspect-filter prints the DC gain and pole radius of catalog
// entries in both widths, flagging entries whose float32 coefficients are
// unstable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tphakala/go-iir-bench/internal/catalog"
	"github.com/tphakala/go-iir-bench/internal/kernel"
)

const (
	// Display limits
	maxSectionsToShow = 8
	tabPadding        = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	filter := flag.String("name", "", "Only entries whose name contains this substring")
	sections := flag.Bool("sections", false, "Print per-section DC gains of cascade entries")
	unstableOnly := flag.Bool("unstable", false, "Only entries with a pole on or outside the unit circle")
	flag.Parse()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	fmt.Printf("=== %d entries at %d Hz ===\n\n", cat.Len(), cat.SampleRate())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "name\tdc f64\tdc f32\tdc drift\tradius f64\tradius f32\t")

	shown := 0
	for _, s := range cat.All() {
		if *filter != "" && !strings.Contains(s.Name, *filter) {
			continue
		}
		e, err := inspect(s)
		if err != nil {
			return err
		}
		if *unstableOnly && e.stable() {
			continue
		}
		shown++

		fmt.Fprintf(tw, "%s\t%.10f\t%.10f\t%.3e\t%.6f\t%.6f\t%s\n",
			s.Name, e.dc64, e.dc32, e.dc32-e.dc64, e.radius64, e.radius32, e.flag())

		if *sections && s.Structure == kernel.Cascade {
			for i, g := range catalog.SectionGains(s.F64) {
				if i == maxSectionsToShow {
					fmt.Fprintf(tw, "  ... (%d more sections)\t\t\t\t\t\t\n", s.Sections()-maxSectionsToShow)
					break
				}
				fmt.Fprintf(tw, "  section %d\t%.10f\t\t\t\t\t\n", i, g)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d entries shown\n", shown)
	return nil
}

type entry struct {
	dc64, dc32         float64
	radius64, radius32 float64
}

func inspect(s catalog.FilterSpec) (entry, error) {
	var e entry
	var err error

	e.dc64 = catalog.DCGain(s.Structure, s.F64)
	e.dc32 = catalog.DCGain(s.Structure, s.F32)
	if e.radius64, err = catalog.PoleRadius(s.Structure, s.F64); err != nil {
		return e, fmt.Errorf("%s float64: %w", s.Name, err)
	}
	if e.radius32, err = catalog.PoleRadius(s.Structure, s.F32); err != nil {
		return e, fmt.Errorf("%s float32: %w", s.Name, err)
	}
	return e, nil
}

func (e entry) stable() bool {
	return e.radius64 < 1 && e.radius32 < 1
}

func (e entry) flag() string {
	switch {
	case e.radius64 >= 1:
		return "UNSTABLE"
	case e.radius32 >= 1:
		return "UNSTABLE f32"
	default:
		return ""
	}
}
