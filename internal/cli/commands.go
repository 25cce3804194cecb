package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dyike/TickerTalk/config"
	"github.com/dyike/TickerTalk/internal/server"
)

// Version is overridden at build time with -ldflags.
var Version = "v0.1.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Initialize configuration early
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tickertalk",
		Short: "TickerTalk - chat about stocks",
		Long: `TickerTalk answers natural-language questions about stocks.
A chat model looks up company attributes and historical prices, and price
histories are drawn as an interactive chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyFlags(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start the chat loop
			return runInteractiveMode(cmd.Context(), cfg)
		},
	}

	rootCmd.AddCommand(newAskCmd(cfg))
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().Bool("eino-debug", false, "Start the Eino visual debug server")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider (groq, openai, deepseek)")
	rootCmd.PersistentFlags().String("model", "", "LLM model identifier")
	rootCmd.PersistentFlags().String("market-data", "", "Market data provider (yahoo, finnhub, longport)")

	return rootCmd
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("eino-debug") {
		cfg.EinoDebugEnabled, _ = flags.GetBool("eino-debug")
	}
	if flags.Changed("provider") {
		v, _ := flags.GetString("provider")
		cfg.LLMProvider = strings.ToLower(v)
	}
	if flags.Changed("model") {
		cfg.LLMModel, _ = flags.GetString("model")
	}
	if flags.Changed("market-data") {
		v, _ := flags.GetString("market-data")
		cfg.MarketDataProvider = strings.ToLower(v)
	}
	return nil
}

// newAskCmd creates the ask command
func newAskCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Answer a single question and exit",
		Long: `Answer one question and print the answer.
Example: tickertalk ask "What is the current price of Meta stock?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			answer, err := app.Dispatcher.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				DisplayFailure(err)
				return fmt.Errorf("%w: %w", errQuestionFailed, err)
			}
			DisplayAnswer(answer)
			return nil
		},
	}
}

// newServeCmd creates the serve command
func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.ServerAddr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := NewApp(ctx, cfg)
			if err != nil {
				return err
			}
			srv, err := server.New(app.Dispatcher, server.Options{
				Addr:       cfg.ServerAddr,
				ModelID:    cfg.LLMModel,
				ChartDir:   cfg.ChartDir(),
				AskTimeout: 2 * cfg.HTTPTimeout,
			})
			if err != nil {
				return err
			}
			DisplayInfo(fmt.Sprintf("Serving on http://localhost%s", cfg.ServerAddr))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("TickerTalk " + Version)
			fmt.Println("Stock question answering with tool-calling LLMs")
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Inspect and validate TickerTalk configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

// showConfig displays the current configuration
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current TickerTalk Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Printf("Results Directory:    %s\n", cfg.ResultsDir)
	fmt.Printf("Chart Directory:      %s\n", cfg.ChartDir())
	fmt.Println()
	fmt.Printf("LLM Provider:         %s\n", cfg.LLMProvider)
	fmt.Printf("LLM Model:            %s\n", cfg.LLMModel)
	fmt.Printf("LLM Endpoint:         %s\n", cfg.Endpoint())
	fmt.Printf("Market Data:          %s\n", cfg.MarketDataProvider)
	fmt.Printf("HTTP Timeout:         %s\n", cfg.HTTPTimeout)
	fmt.Printf("Server Address:       %s\n", cfg.ServerAddr)
	fmt.Println()
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Printf("Eino Debug:           %t\n", cfg.EinoDebugEnabled)
	if cfg.EinoDebugEnabled {
		fmt.Printf("Eino Debug Port:      %d\n", cfg.EinoDebugPort)
	}
	fmt.Println()

	fmt.Println("🔌 API Configuration:")
	fmt.Println("─────────────────────")
	fmt.Println(credentialLine("LLM API key:", cfg.APIKey() != ""))
	fmt.Println(credentialLine("Finnhub API:", cfg.FinnhubAPIKey != ""))
	fmt.Println(credentialLine("Longport API:",
		cfg.LongportAppKey != "" && cfg.LongportAppSecret != "" && cfg.LongportAccessToken != ""))
}

func credentialLine(label string, ok bool) string {
	if ok {
		return fmt.Sprintf("%-22s✅ Configured", label)
	}
	return fmt.Sprintf("%-22s❌ Not configured", label)
}

// validateConfig validates the configuration and dependencies
func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating TickerTalk Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("📁 Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("✅")

	fmt.Print("🔑 Checking providers and credentials... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		if errors.Is(err, config.ErrMissingCredential) {
			fmt.Println()
			fmt.Println("💡 Tips:")
			fmt.Println("  • Set GROQ_API_KEY (or OPENAI_API_KEY / DEEPSEEK_API_KEY with LLM_PROVIDER)")
			fmt.Println("  • MARKET_DATA_PROVIDER=finnhub needs FINNHUB_API_KEY")
			fmt.Println("  • MARKET_DATA_PROVIDER=longport needs LONGPORT_APP_KEY, LONGPORT_APP_SECRET and LONGPORT_ACCESS_TOKEN")
		}
		return err
	}
	fmt.Println("✅")

	fmt.Println()
	DisplaySuccess("Configuration validation completed successfully!")
	return nil
}

// runInteractiveMode starts the chat loop. Each question is independent.
func runInteractiveMode(ctx context.Context, cfg *config.Config) error {
	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}

	DisplayWelcomeBanner(cfg.LLMModel)
	if url := app.Debugger.URL(); url != "" {
		DisplayInfo("Eino debug server: " + url)
	}

	for {
		question, err := PromptForQuestion()
		if errors.Is(err, ErrQuit) {
			fmt.Println("👋 Thank you for using TickerTalk!")
			return nil
		}
		if err != nil {
			return err
		}
		if question == "" {
			continue
		}

		DisplayThinking()
		answer, err := app.Dispatcher.Ask(ctx, question)
		if err != nil {
			DisplayFailure(err)
			continue
		}
		DisplayAnswer(answer)
	}
}
