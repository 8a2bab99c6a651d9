package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"firesim/internal/config"
	"firesim/internal/domain"
	"firesim/internal/output"
	"firesim/internal/returns"
	"firesim/internal/server"
	"firesim/internal/simulation"
	"firesim/internal/solve"
	"firesim/internal/tui"
)

// cliLogger implements simulation.Logger on the standard log package.
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "firesim",
	Short: "FIRE retirement simulator",
	Long:  "Simulates household finances year by year from now to life expectancy: incomes, expenses, taxes, contributions, withdrawals, and market returns.",
}

func engineLogger(cmd *cobra.Command) simulation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return cliLogger{}
	}
	return nil
}

func loadInputs(path string) *domain.SimulatorInputs {
	parser := config.NewInputParser()
	inputs, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return inputs
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run a single deterministic simulation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs := loadInputs(args[0])

		provider, mode, err := simulationProvider(cmd, inputs)
		if err != nil {
			log.Fatal(err)
		}
		opts := []simulation.Option{simulation.WithMode(mode)}
		if l := engineLogger(cmd); l != nil {
			opts = append(opts, simulation.WithLogger(l))
		}
		if startYear, _ := cmd.Flags().GetInt("start-year"); startYear != 0 {
			opts = append(opts, simulation.WithStartYear(startYear))
		}

		engine, err := simulation.NewEngine(inputs, provider, opts...)
		if err != nil {
			log.Fatal(err)
		}
		result, err := engine.Run(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		renderReport(cmd, output.NewReport(result))
	},
}

// simulationProvider picks the returns source for a single run: historical
// replay from a chosen calendar year, or the fixed assumptions otherwise.
func simulationProvider(cmd *cobra.Command, inputs *domain.SimulatorInputs) (returns.Provider, string, error) {
	if year, _ := cmd.Flags().GetInt("historical-start-year"); year != 0 {
		provider, err := returns.NewHistoricalProvider(year)
		return provider, "historical", err
	}
	return returns.NewFixedProvider(inputs.Market), "fixed", nil
}

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo [input-file]",
	Short: "Run a stochastic Monte Carlo ensemble",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { runEnsemble(cmd, args[0], simulation.ModeStochastic) },
}

var backtestCmd = &cobra.Command{
	Use:   "backtest [input-file]",
	Short: "Run an ensemble over historical market sequences",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { runEnsemble(cmd, args[0], simulation.ModeBacktest) },
}

func runEnsemble(cmd *cobra.Command, inputFile string, mode simulation.Mode) {
	inputs := loadInputs(inputFile)

	numSims, _ := cmd.Flags().GetInt("simulations")
	baseSeed, _ := cmd.Flags().GetInt64("seed")
	retirementYear, _ := cmd.Flags().GetInt("retirement-year")

	cfg := simulation.MultiConfig{
		NumSimulations:      numSims,
		BaseSeed:            baseSeed,
		Mode:                mode,
		RetirementStartYear: retirementYear,
		Logger:              engineLogger(cmd),
	}
	engine, err := simulation.NewMultiEngine(inputs, cfg)
	if err != nil {
		log.Fatal(err)
	}

	started := time.Now()
	ensemble, err := engine.Run(cmd.Context())
	if err != nil {
		log.Fatal(err)
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		log.Printf("DEBUG: ensemble of %d finished in %s", numSims, time.Since(started))
	}

	renderReport(cmd, output.NewEnsembleReport(ensemble))
}

func renderReport(cmd *cobra.Command, rep *output.Report) {
	format, _ := cmd.Flags().GetString("format")
	data, err := output.Render(rep, format)
	if err != nil {
		log.Fatal(err)
	}
	if outFile, _ := cmd.Flags().GetString("output"); outFile != "" {
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %s report to %s\n", format, outFile)
		return
	}
	fmt.Print(string(data))
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadInputs(args[0])
		fmt.Printf("Input file %s is valid\n", args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")

		var opts []server.ServerOption
		if l := engineLogger(cmd); l != nil {
			opts = append(opts, server.WithLogger(l))
		}
		srv := server.NewServer(opts...)

		log.Printf("listening on %s", addr)
		if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
			log.Fatal(err)
		}
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui [input-file]",
	Short: "Explore a simulation interactively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		numSims, _ := cmd.Flags().GetInt("simulations")
		baseSeed, _ := cmd.Flags().GetInt64("seed")
		mode := simulation.ModeStochastic
		if useBacktest, _ := cmd.Flags().GetBool("backtest"); useBacktest {
			mode = simulation.ModeBacktest
		}

		model := tui.NewModel(args[0], numSims, mode, baseSeed)
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve [input-file]",
	Short: "Solve for max sustainable spending or earliest retirement age",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs := loadInputs(args[0])

		numSims, _ := cmd.Flags().GetInt("simulations")
		baseSeed, _ := cmd.Flags().GetInt64("seed")
		target, _ := cmd.Flags().GetFloat64("target")

		options := solve.DefaultOptions()
		if target > 0 {
			options.TargetSuccessRate = decimal.NewFromFloat(target)
		}
		solver, err := solve.NewSolver(inputs, simulation.MultiConfig{
			NumSimulations: numSims,
			BaseSeed:       baseSeed,
			Mode:           simulation.ModeStochastic,
			Logger:         engineLogger(cmd),
		}, options)
		if err != nil {
			log.Fatal(err)
		}

		if earliest, _ := cmd.Flags().GetBool("earliest-retirement"); earliest {
			result, err := solver.EarliestRetirement(cmd.Context())
			if err != nil {
				log.Fatal(err)
			}
			if !result.Achievable {
				fmt.Printf("No retirement age up to %d reaches a %s success rate (best: %s)\n",
					inputs.Timeline.LifeExpectancy,
					output.FormatPercentage(options.TargetSuccessRate),
					output.FormatPercentage(result.SuccessRate))
				return
			}
			fmt.Printf("Earliest retirement age: %d (success rate %s, %d ensembles)\n",
				result.Age, output.FormatPercentage(result.SuccessRate), result.Iterations)
			return
		}

		result, err := solver.MaxSpending(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Max sustainable spending: %s per year (%sx configured, success rate %s, %d ensembles)\n",
			output.FormatCurrency(result.AnnualSpending),
			result.ScaleFactor.StringFixed(2),
			output.FormatPercentage(result.SuccessRate),
			result.Iterations)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [input-file]",
	Short: "Write a report file for a run or an ensemble",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs := loadInputs(args[0])
		numSims, _ := cmd.Flags().GetInt("simulations")

		var rep *output.Report
		if numSims > 1 {
			baseSeed, _ := cmd.Flags().GetInt64("seed")
			engine, err := simulation.NewMultiEngine(inputs, simulation.MultiConfig{
				NumSimulations: numSims,
				BaseSeed:       baseSeed,
				Mode:           simulation.ModeStochastic,
				Logger:         engineLogger(cmd),
			})
			if err != nil {
				log.Fatal(err)
			}
			ensemble, err := engine.Run(cmd.Context())
			if err != nil {
				log.Fatal(err)
			}
			rep = output.NewEnsembleReport(ensemble)
		} else {
			engine, err := simulation.NewEngine(inputs, returns.NewFixedProvider(inputs.Market))
			if err != nil {
				log.Fatal(err)
			}
			result, err := engine.Run(cmd.Context())
			if err != nil {
				log.Fatal(err)
			}
			rep = output.NewReport(result)
		}

		renderReport(cmd, rep)
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "firesim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

func init() {
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")
	simulateCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	simulateCmd.Flags().Int("start-year", 0, "Calendar year the simulation starts in (default: current year)")
	simulateCmd.Flags().Int("historical-start-year", 0, "Replay actual market history starting from this calendar year")
	simulateCmd.Flags().Bool("debug", false, "Enable debug output")

	for _, c := range []*cobra.Command{montecarloCmd, backtestCmd} {
		c.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")
		c.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
		c.Flags().IntP("simulations", "n", 1000, "Number of simulations in the ensemble")
		c.Flags().Int64("seed", 1, "Base seed; simulation i runs with a seed derived from it")
		c.Flags().Bool("debug", false, "Enable debug output")
	}
	backtestCmd.Flags().Int("retirement-year", 0, "Re-splice each backtest to this historical year at retirement")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Bool("debug", false, "Enable debug output")

	solveCmd.Flags().IntP("simulations", "n", 200, "Number of simulations per ensemble evaluation")
	solveCmd.Flags().Int64("seed", 1, "Base seed")
	solveCmd.Flags().Float64("target", 0.90, "Target ensemble success rate")
	solveCmd.Flags().Bool("earliest-retirement", false, "Search for the earliest retirement age instead of spending")
	solveCmd.Flags().Bool("debug", false, "Enable debug output")

	reportCmd.Flags().StringP("format", "f", "pdf", "Output format (console, csv, json, pdf)")
	reportCmd.Flags().StringP("output", "o", "report.pdf", "Report file to write")
	reportCmd.Flags().IntP("simulations", "n", 0, "Ensemble size; 1 or less runs a single deterministic simulation")
	reportCmd.Flags().Int64("seed", 1, "Base seed for ensemble reports")
	reportCmd.Flags().Bool("debug", false, "Enable debug output")

	tuiCmd.Flags().IntP("simulations", "n", 200, "Number of simulations in the ensemble")
	tuiCmd.Flags().Int64("seed", 1, "Base seed")
	tuiCmd.Flags().Bool("backtest", false, "Use historical sequences instead of stochastic draws")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(montecarloCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
