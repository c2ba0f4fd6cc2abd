package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nirmitee/drugregimen/internal/config"
	"github.com/nirmitee/drugregimen/internal/platform/db"
	"github.com/nirmitee/drugregimen/internal/platform/logging"
	"github.com/nirmitee/drugregimen/internal/regimen/condition"
	"github.com/nirmitee/drugregimen/internal/regimen/engine"
	"github.com/nirmitee/drugregimen/internal/regimen/solver"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drugregimen",
		Short: "Drug regimen recommender and optimizer",
	}

	rootCmd.AddCommand(solveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Recommend a drug regimen covering the given conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions, _ := cmd.Flags().GetStringSlice("condition")
			text, _ := cmd.Flags().GetString("text")
			mode, _ := cmd.Flags().GetString("mode")
			enrich, _ := cmd.Flags().GetBool("enrich")

			if text != "" {
				conditions = append(conditions, condition.NaiveSplit(text)...)
			}
			if len(conditions) == 0 {
				return fmt.Errorf("at least one --condition or --text is required")
			}

			return runSolve(conditions, mode, enrich)
		},
	}
	cmd.Flags().StringSlice("condition", nil, "A condition to cover (repeatable)")
	cmd.Flags().String("text", "", "Free-text patient note; split into conditions when no NER pipeline is available")
	cmd.Flags().String("mode", "", "Solver backend override: ilp or greedy (defaults to SOLVER_MODE)")
	cmd.Flags().Bool("enrich", false, "Attach synonyms, food interactions, pathways, and enzyme roles to each selected drug")
	return cmd
}

func runSolve(conditions []string, modeOverride string, enrich bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer pool.Close()

	weights := solver.Weights{
		Count:        cfg.WeightCount,
		Direct:       cfg.WeightDirect,
		Metabolic:    cfg.WeightMetabolic,
		Safety:       cfg.WeightSafety,
		Price:        cfg.WeightPrice,
		Cover:        cfg.WeightCover,
		Conflict:     cfg.WeightConflict,
		RoutePenalty: cfg.WeightRoute,
	}

	mode := engine.Mode(cfg.SolverMode)
	if modeOverride != "" {
		mode = engine.Mode(modeOverride)
	}

	eng := engine.New(pool, weights, logger)
	result, err := eng.Solve(ctx, conditions, mode)
	if err != nil {
		logger.Error().Err(err).Msg("solve failed")
		return err
	}

	if enrich {
		if err := eng.Enrich(ctx, &result); err != nil {
			logger.Error().Err(err).Msg("enrich failed")
			return err
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
