// Command herdctl inspects a herd database from the command line. It opens
// the configured persistent store read-mostly and prints herd summaries,
// due lists, or the full animal report.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"herdcore/internal/core"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "herdctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("herdctl", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "enable debug logging")
	envFile := fs.String("env", "", "load environment from file before opening storage")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: herdctl [flags] summary|due|animals")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing subcommand")
	}

	// OS environment wins over .env entries.
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("load %s: %w", *envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
		}
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	store, err := core.OpenPersistentStore(core.NewDefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	svc := core.NewService(store, core.WithLogger(core.NewSlogLogger(logger)))

	switch fs.Arg(0) {
	case "summary":
		return printSummary(svc)
	case "due":
		return printDueLists(svc)
	case "animals":
		return printAnimals(svc)
	default:
		fs.Usage()
		return fmt.Errorf("unknown subcommand %q", fs.Arg(0))
	}
}

func printSummary(svc *core.Service) error {
	summary := svc.HerdSummary()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "active animals\t%d\n", summary.Total)
	fmt.Fprintf(w, "sold\t%d\n", summary.Sold)
	fmt.Fprintln(w)
	writeCounts(w, "status", summary.ByStatus)
	writeCounts(w, "category", summary.ByCategory)
	writeCounts(w, "farm", summary.ByFarm)
	return w.Flush()
}

// writeCounts prints one breakdown section with stable key ordering.
func writeCounts[K ~string](w *tabwriter.Writer, label string, counts map[K]int) {
	keys := make([]K, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\t%d\n", label, string(k), counts[k])
	}
}

func printDueLists(svc *core.Service) error {
	lists := svc.DueLists()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	writeDueSection(w, "pregnancy check due", lists.PregnancyCheckDue)
	writeDueSection(w, "calving due", lists.CalvingDue)
	writeDueSection(w, "dry-off due", lists.DryOffDue)
	writeDueSection(w, "ready for heat", lists.ReadyForHeat)
	return w.Flush()
}

func writeDueSection(w *tabwriter.Writer, title string, animals []core.Animal) {
	fmt.Fprintf(w, "%s\t(%d)\n", title, len(animals))
	for _, a := range animals {
		fmt.Fprintf(w, "\t%s\t%s\t%s\n", a.TagNumber, a.Category, a.Status)
	}
}

func printAnimals(svc *core.Service) error {
	rows := svc.ReportSnapshot()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tCATEGORY\tSTATUS\tFARM\tSEMEN\tINSEMINATED\tEXPECTED CALVING\tDRY DAYS\tSIRE")
	for _, row := range rows {
		dryDays := ""
		if row.DaysInDry != nil {
			dryDays = fmt.Sprintf("%d", *row.DaysInDry)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.TagNumber, row.Category, row.Status, row.Farm,
			row.SemenName, row.InseminationDate, row.ExpectedCalvingDate, dryDays, row.Sire)
	}
	return w.Flush()
}
