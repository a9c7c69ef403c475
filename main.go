package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"howth-congestion/config"
	"howth-congestion/models"
	"howth-congestion/services"
	"howth-congestion/storage"
	"howth-congestion/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stderr, utils.ParseLevel(cfg.LogLevel))

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *utils.Logger, out io.Writer) error {
	logger.Info("=== Congestion survey analysis starting ===")

	days, err := storage.ReadTrafficFiles(cfg.TrafficCSVPaths)
	if err != nil {
		return fmt.Errorf("load traffic counts: %w", err)
	}
	for _, d := range days {
		logger.Info("[loader] %s: %d samples, %d vehicles", d.Name, len(d.Samples), d.TotalCount())
	}

	source, err := openSurvey(cfg, logger)
	if err != nil {
		return fmt.Errorf("open survey: %w", err)
	}
	defer source.Close()

	raw, err := source.ReadRaw()
	if err != nil {
		return fmt.Errorf("load survey: %w", err)
	}
	survey, err := services.NewCleaner(logger).Clean(raw)
	if err != nil {
		return fmt.Errorf("clean survey: %w", err)
	}

	reporter := services.NewReporter(cfg.ColorOutput)
	stats := services.NewStatsService(logger).Generate(survey)
	if err := reporter.Write(out, services.StatsSection(stats)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	cors, err := services.NewCorrelationService(logger).Calculate(survey)
	if err != nil {
		return fmt.Errorf("correlations: %w", err)
	}

	var baseDemand float64
	if len(days) > 0 {
		baseDemand = services.BaselineDemand(days[0])
	}
	curves, err := services.NewElasticityService(logger).Curves(survey, services.RegionNames(stats), baseDemand)
	if err != nil {
		return fmt.Errorf("elasticity: %w", err)
	}

	if err := reporter.Write(out,
		services.CorrelationSection(cors),
		services.ElasticitySection(curves, baseDemand),
	); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.CurveCSVPath != "" {
		if err := exportCurves(cfg.CurveCSVPath, curves); err != nil {
			return err
		}
		logger.Info("[export] Demand curves saved to %s", cfg.CurveCSVPath)
	}

	if cfg.PlotEnabled {
		if len(curves) == 0 {
			logger.Warn("[chart] No region has positive price answers, skipping chart")
			return nil
		}
		if err := services.NewChart(logger).Render(curves, cfg.PlotOutputPath); err != nil {
			return err
		}
	}
	return nil
}

func openSurvey(cfg *config.Config, logger *utils.Logger) (storage.SurveySource, error) {
	switch cfg.SurveySource {
	case config.SourceCSV:
		logger.Info("[loader] Reading survey from %s", cfg.SurveyCSVPath)
		return storage.NewCSVSurveyReader(cfg.SurveyCSVPath)
	case config.SourcePostgres:
		logger.Info("[loader] Reading survey from PostgreSQL table %s", cfg.PostgresTable)
		return storage.NewPostgresSurveyReader(cfg.DSN(), cfg.PostgresTable, &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
	}
	return nil, fmt.Errorf("survey source %q: %w", cfg.SurveySource, models.ErrInvalidValue)
}

func exportCurves(path string, curves []models.ElasticityCurve) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return fmt.Errorf("export curves: %w", err)
	}
	if err := w.WriteCurves(curves); err != nil {
		_ = w.Close()
		return fmt.Errorf("export curves: %w", err)
	}
	return w.Close()
}
