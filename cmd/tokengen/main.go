// Command tokengen bulk-generates single-use access tokens and issues them
// into the feedback database, optionally exporting the codes to a file for
// printing and distribution.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/config"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/repository"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/service"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/database"
)

func main() {
	var (
		configPath string
		count      int
		length     int
		exportPath string
	)

	rootCmd := &cobra.Command{
		Use:   "tokengen",
		Short: "Generate single-use access tokens for the feedback system",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, count, length, exportPath)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.Flags().IntVarP(&count, "count", "n", 10, "number of tokens to generate")
	rootCmd.Flags().IntVarP(&length, "length", "l", 0, "token length (default from config)")
	rootCmd.Flags().StringVarP(&exportPath, "export", "e", "", "export generated codes to a file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configPath string, count, length int, exportPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if length <= 0 {
		length = cfg.Token.Length
	}

	logger := zap.NewNop()
	db, err := database.NewDB(&cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, cfg.DB.Driver, logger); err != nil {
		return err
	}

	repo := repository.NewRepository(db)
	tokenSvc := service.NewTokenService(cfg, repo, logger)

	result, err := tokenSvc.Generate(context.Background(), count, length)
	if err != nil {
		return err
	}

	fmt.Printf("generated %d codes, added %d new tokens\n\n", result.Requested, result.Added)
	for i, code := range result.Codes {
		fmt.Printf("%4d. %s\n", i+1, code)
	}

	if exportPath != "" {
		if err := os.WriteFile(exportPath, []byte(strings.Join(result.Codes, "\n")+"\n"), 0o600); err != nil {
			return fmt.Errorf("exporting tokens: %w", err)
		}
		fmt.Printf("\ncodes exported to %s\n", exportPath)
	}

	return nil
}
