// secfilings: search SEC EDGAR filings by company name or ticker.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/secfilings/api"
	"github.com/seenimoa/secfilings/internal/config"
	"github.com/seenimoa/secfilings/internal/edgar"
	"github.com/seenimoa/secfilings/internal/filings"
	"github.com/seenimoa/secfilings/internal/logging"
	"github.com/seenimoa/secfilings/internal/lookup"
	"github.com/seenimoa/secfilings/internal/present"
	"github.com/seenimoa/secfilings/internal/tui"
	"github.com/seenimoa/secfilings/internal/ui"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	err := rootCmd.Execute()
	if logger != nil {
		logger.Sync() //nolint:errcheck
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "secfilings",
	Short: "Search SEC EDGAR filings by company name or ticker",
	Long: `secfilings resolves a company name or ticker to its SEC CIK, retrieves
the company's recent filings from EDGAR, and filters them by form type and
date range. Use it as a web server, a terminal UI, or one-shot commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		zap.ReplaceGlobals(logger)
		api.Version = version
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(filingsCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(statusCmd)
}

// newEngine wires the EDGAR client into the search engine.
func newEngine() (*edgar.Client, *lookup.Service, *ui.Engine) {
	client := api.NewEdgarClient(cfg.SEC, logger)
	resolver := lookup.NewService(client, logger)
	return client, resolver, ui.NewEngine(resolver, filings.NewClient(client, logger))
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("secfilings %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.API.Port = port
		}
		srv, err := api.NewServer(cfg, logger)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(cfg.API.Addr())
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config and PORT)")
}

// --- Lookup Command ---

var lookupCmd = &cobra.Command{
	Use:   "lookup [company or ticker]",
	Short: "Resolve a company name or ticker to its CIK",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, resolver, _ := newEngine()
		rec, err := resolver.Resolve(cmd.Context(), args[0])
		if err != nil {
			return errors.New(ui.Message(err))
		}

		out, err := json.MarshalIndent(api.CIKLookupResponse{
			Identifier:  edgar.PadCIK(rec.Identifier),
			CIK:         rec.Identifier,
			CompanyName: rec.DisplayName,
			Ticker:      rec.Ticker,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// --- Filings Command ---

var filingsCmd = &cobra.Command{
	Use:   "filings [company or ticker]",
	Short: "List a company's recent filings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		asJSON, _ := cmd.Flags().GetBool("json")

		_, _, engine := newEngine()
		state := ui.NewState()
		state = ui.Update(state, ui.SetQuery{Value: args[0]})
		state = ui.Update(state, ui.SetFormType{Value: form})
		state = ui.Update(state, ui.SetStartDate{Value: start})
		state = ui.Update(state, ui.SetEndDate{Value: end})

		state = engine.Search(cmd.Context(), state)
		if state.Err != "" {
			return errors.New(state.Err)
		}

		cards := state.Cards()
		if asJSON {
			out, err := json.MarshalIndent(cards, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		c := state.Company
		fmt.Printf("%s (%s), CIK %s: %d filings\n", c.DisplayName, c.Ticker, edgar.PadCIK(c.Identifier), len(cards))
		if len(cards) > 0 {
			fmt.Println(tui.RenderCards(cards, 100))
		}
		return nil
	},
}

func init() {
	filingsCmd.Flags().String("form", "all", "form type (all, 10-K, 10-Q, 8-K, 20-F, DEF 14A, 10-K/A, 10-Q/A)")
	filingsCmd.Flags().String("start", "", "earliest filing date (YYYY-MM-DD)")
	filingsCmd.Flags().String("end", "", "latest filing date (YYYY-MM-DD)")
	filingsCmd.Flags().Bool("json", false, "print filings as JSON")
}

// --- Latest Command ---

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the most recent filings across EDGAR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		count, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")

		client, _, _ := newEngine()
		records, err := client.CurrentFilings(cmd.Context(), form, count)
		if err != nil {
			logger.Warn("current feed failed", zap.Error(err))
			return errors.New(ui.MsgFetchFailure)
		}

		// Feed entries carry the filer name rather than a document name.
		cards := present.Cards(records)
		for i := range cards {
			cards[i].Description = records[i].Description
		}

		if asJSON {
			out, err := json.MarshalIndent(cards, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%d latest filings\n", len(cards))
		if len(cards) > 0 {
			fmt.Println(tui.RenderCards(cards, 100))
		}
		return nil
	},
}

func init() {
	latestCmd.Flags().String("form", "all", "form type filter (all, 10-K, 8-K, ...)")
	latestCmd.Flags().Int("count", 40, "number of entries (max 100)")
	latestCmd.Flags().Bool("json", false, "print filings as JSON")
}

// --- TUI Command ---

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, engine := newEngine()
		p := tea.NewProgram(tui.New(cmd.Context(), engine), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and EDGAR connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  secfilings — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Server:        %s\n", cfg.API.Addr())
		fmt.Printf("    Company index: %s\n", cfg.SEC.TickersURL)
		fmt.Printf("    Submissions:   %s\n", cfg.SEC.SubmissionsURL)
		fmt.Printf("    Current feed:  %s\n", cfg.SEC.FeedURL)
		fmt.Printf("    Timeout:       %s\n", cfg.SEC.Timeout())
		fmt.Println()

		fmt.Println("  Settings:")
		for _, s := range config.Describe(cfg) {
			fmt.Printf("    %-17s %s (%s: %s)\n", s.Name+":", s.Value, s.Source, s.EnvVar)
		}
		fmt.Println()

		client, _, _ := newEngine()
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			fmt.Printf("  EDGAR:         ❌ %v\n", err)
		} else {
			fmt.Println("  EDGAR:         ✅ reachable")
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
