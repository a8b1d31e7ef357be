package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quotebridge/internal/config"
	"quotebridge/internal/directory"
	"quotebridge/internal/pipeline"
	"quotebridge/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "portal export (.xlsx or delimited text)")
		reseller := fs.String("reseller", "", "reseller name")
		endUser := fs.String("end-user", "", "end user name (optional)")
		currency := fs.String("currency", "", "EUR|USD|SEK|NOK|DKK")
		rate := fs.Float64("rate", 0, "exchange rate")
		margin := fs.Float64("margin", 0, "margin percent")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*reseller) == "" || strings.TrimSpace(*currency) == "" {
			must(fmt.Errorf("--input, --reseller and --currency are required"))
		}

		blob, err := os.ReadFile(*input)
		must(err)
		proc := pipeline.NewProcessingService(db, cfg)
		result, err := proc.ProcessFile(filepath.Base(*input), blob, pipeline.Params{
			Reseller:     *reseller,
			EndUser:      *endUser,
			Currency:     strings.ToUpper(*currency),
			ExchangeRate: *rate,
			MarginPct:    *margin,
		})
		must(err)
		fmt.Printf("processed run=%s rows=%d output=%s\n", result.RunID, result.Rows, result.OutputPath)
	case "resellers:list":
		entries, err := directory.New(cfg.ResellerFile).List()
		must(err)
		for _, entry := range entries {
			fmt.Println(entry)
		}
	case "uploads:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max rows")
		_ = fs.Parse(os.Args[2:])
		uploads, err := db.ListUploads(*limit)
		must(err)
		for _, u := range uploads {
			line := fmt.Sprintf("%s  %-9s rows=%-4d %s", u.RunID, u.Status, u.RowCount, u.Filename)
			if u.Error != "" {
				line += "  error: " + u.Error
			}
			fmt.Println(line)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: quotebridge <command>")
	fmt.Println("commands:")
	fmt.Println("  process --input=export.xlsx --reseller=... --currency=EUR --rate=1.0 --margin=10 [--end-user=...]")
	fmt.Println("  resellers:list")
	fmt.Println("  uploads:list [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
