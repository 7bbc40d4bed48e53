package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"handspan/internal/assignment"
	"handspan/internal/configuration"
	"handspan/internal/dataset"
	"handspan/internal/music"
	"handspan/internal/musicxml"
	"handspan/internal/score"
	"handspan/internal/score/rule"
)

// prepareLogger configures the global slog logger. Takes a string log level
// (e.g. "debug", "info", "warn", "error") and installs JSON-formatted
// output on os.Stdout. An unrecognized level falls back to Info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// loadScoringConfig builds the evaluation configuration from the preset,
// with the optional override file applied on top.
func loadScoringConfig(scoring configuration.ScoringConfig) (configuration.Config, error) {
	if scoring.Custom != "" {
		return configuration.LoadCustom(scoring.Preset, scoring.Custom)
	}
	return configuration.LoadPreset(scoring.Preset)
}

// evaluateHand scores one hand of the piece if the assignment file provides
// fingerings for it.
func evaluateHand(evaluator *score.Evaluator, piece *music.Piece,
	fingerings []music.Fingering, hand music.Hand, recorder dataset.Recorder) {
	if len(fingerings) == 0 {
		return
	}
	if len(piece.Measures(hand)) == 0 {
		slog.Warn("assignment given for a hand with no measures", "hand", hand.String())
		return
	}

	total := evaluator.Evaluate(piece, fingerings, hand)
	slog.Info("hand evaluated",
		"hand", hand.String(),
		"slices", len(fingerings),
		"score", total,
	)

	if recorder != nil {
		recorder.Append(dataset.Record{
			Piece:  piece.Metadata().Title,
			Hand:   hand.String(),
			Slices: len(fingerings),
			Score:  total,
		})
	}
}

// Loads the configuration, parses the score and the candidate assignment,
// evaluates both hands and optionally records the results to the dataset
// file. Exits with code 1 on any setup error.
func main() {
	configPath := flag.String("config", "", "configuration file")
	scorePath := flag.String("score", "", "MusicXML score file")
	fingeringPath := flag.String("fingering", "", "fingering assignment file")
	flag.Parse()

	config := configuration.DefaultAppConfig()
	if *configPath != "" {
		loaded, err := configuration.LoadConfig(*configPath)
		if err != nil {
			slog.Error("Unable to load configuration", "error", err)
			os.Exit(1)
		}
		config = loaded
	}
	prepareLogger(config.Logger.Level)

	if *scorePath == "" || *fingeringPath == "" {
		slog.Error("Both -score and -fingering must be given")
		os.Exit(1)
	}

	scoringConfig, err := loadScoringConfig(config.Scoring)
	if err != nil {
		slog.Error("Unable to load scoring configuration", "error", err)
		os.Exit(1)
	}

	var rules []rule.Rule
	if config.Scoring.Rules != "" {
		rules, err = rule.LoadFromFile(config.Scoring.Rules, rule.NewTransitionEnv)
		if err != nil {
			slog.Error("Unable to load rules", "error", err)
			os.Exit(1)
		}
	}

	piece, err := musicxml.ParseFile(*scorePath)
	if err != nil {
		slog.Error("Unable to parse score", "error", err)
		os.Exit(1)
	}
	slog.Info("score parsed",
		"title", piece.Metadata().Title,
		"composer", piece.Metadata().Composer,
		"measures", piece.TotalMeasures(),
	)

	candidate, err := assignment.Load(*fingeringPath)
	if err != nil {
		slog.Error("Unable to load assignment", "error", err)
		os.Exit(1)
	}

	var recorder dataset.Recorder
	if config.Dataset.File != "" {
		jsonRecorder := dataset.NewJSONRecorder(config.Dataset.File,
			config.Dataset.Size, config.Dataset.Amount, config.Dataset.Recent)
		defer jsonRecorder.Close()
		recorder = jsonRecorder
	}

	evaluator := score.NewEvaluatorWithRules(&scoringConfig, rules)
	evaluateHand(evaluator, &piece, candidate.Right, music.RightHand, recorder)
	evaluateHand(evaluator, &piece, candidate.Left, music.LeftHand, recorder)
}
