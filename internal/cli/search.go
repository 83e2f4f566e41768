package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jstrzelecki/filesearch/internal/config"
	"github.com/jstrzelecki/filesearch/internal/search"
	"github.com/jstrzelecki/filesearch/pkg/timefmt"
)

var searchCmd = &cobra.Command{
	Use:   "search <fraza>",
	Short: "Scan a directory once and print matches, without the HTTP layer",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("root", ".", "Directory (or file) to scan")
	searchCmd.Flags().String("ext", ".txt", "File name suffix filter (empty string matches all files)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	fraza := args[0]
	if strings.TrimSpace(fraza) == "" {
		return fmt.Errorf("fraza nie może być pusta")
	}

	root, _ := cmd.Flags().GetString("root")
	ext, _ := cmd.Flags().GetString("ext")

	cfg := config.FromViper()
	logger := newLogger(cfg.LogLevel)
	decode, err := search.ParseDecodePolicy(cfg.DecodePolicy)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := search.Search(cmd.Context(), root, ext, fraza, search.Options{
		Decode:      decode,
		MaxFileSize: cfg.MaxFileSize,
		SkipBinary:  cfg.SkipBinary,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	for _, m := range out.Matches {
		fmt.Printf("%s:%d: %s\n", m.Path, m.Line, m.Text)
	}

	color.Cyan("Znaleziono: %d (czas: %s)", len(out.Matches), timefmt.Czytelny(time.Since(start).Seconds()))
	if len(out.Skipped) > 0 {
		color.Yellow("Pominięto nieczytelnych plików: %d", len(out.Skipped))
	}
	return nil
}
