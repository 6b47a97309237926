package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/config"
	"github.com/clasnet-dev/field-service/backend/internal/repository"
	"github.com/clasnet-dev/field-service/backend/internal/seed"
	"github.com/clasnet-dev/field-service/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op string
	var n int
	var file string

	flag.StringVar(&op, "op", "", "operation to run (sample, technicians, clients, import)")
	flag.IntVar(&n, "n", 0, "number of random records to insert (defaults to SEED_COUNT)")
	flag.StringVar(&file, "file", seed.TechniciansFile, "CSV file for -op import")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if n == 0 {
		n = cfg.Seed.Count
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case "":
		slog.Error("no operation given")
	case "sample":
		a, err := seed.SeedSampleData(repo)
		if err != nil {
			slog.Error("failed to seed sample data", slog.String("error", err.Error()))
			return
		}
		slog.Info("try the documents with this assignment", slog.Int64("assignment_id", a.ID))
	case "technicians":
		if n <= 0 {
			slog.Error("count must be positive")
			return
		}
		inserted := 0
		for i := 0; i < n; i++ {
			if err := repo.CreateTechnician(utils.GenerateRandomTechnician()); err != nil {
				slog.Error("failed to insert technician", slog.String("error", err.Error()))
				continue
			}
			inserted++
		}
		slog.Info("technicians inserted", slog.Int("count", inserted))
	case "clients":
		if n <= 0 {
			slog.Error("count must be positive")
			return
		}
		inserted := 0
		for i := 0; i < n; i++ {
			// random names can collide with the unique constraint; those rows are skipped
			if err := repo.CreateClient(utils.GenerateRandomClient()); err != nil {
				slog.Error("failed to insert client", slog.String("error", err.Error()))
				continue
			}
			inserted++
		}
		slog.Info("clients inserted", slog.Int("count", inserted))
	case "import":
		inserted, err := seed.ImportTechnicians(repo, file)
		if err != nil {
			slog.Error("failed to import technicians", slog.String("file", file), slog.String("error", err.Error()))
			return
		}
		slog.Info("technicians imported", slog.String("file", file), slog.Int("count", inserted))
	default:
		slog.Error("unknown operation", slog.String("op", op))
	}
}
