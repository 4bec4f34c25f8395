package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	yaml "go.yaml.in/yaml/v3"

	"github.com/limaJavier/jobshop/internal/model"
	"github.com/limaJavier/jobshop/internal/solve"
)

var (
	validSolvers = []string{"bnb", "parallel"}
	solvers      = map[string]func(solve.Options) solve.Solver{
		"bnb":      solve.NewBnbSolver,
		"parallel": solve.NewParallelSolver,
	}
)

// solverConfig is the YAML file layout consumed by -config. Flags set on the
// command line override its values.
type solverConfig struct {
	Solver    string `yaml:"solver"`
	Workers   int    `yaml:"workers"`
	TimeLimit string `yaml:"timeLimit"` // time.ParseDuration syntax, empty means no cutoff
	MaxNodes  uint64 `yaml:"maxNodes"`
	LogLevel  string `yaml:"logLevel"`
}

func defaultConfig() solverConfig {
	return solverConfig{Solver: "bnb", Workers: 4, LogLevel: "info"}
}

func loadConfig(path string) (solverConfig, error) {
	config := defaultConfig()
	bytes, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return config, fmt.Errorf("cannot parse config file: %w", err)
	}
	return config, nil
}

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the schedule will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to a YAML file with solver options; command-line flags override its values")
	solverPtr := flag.String("solver", "bnb", "Solver to use. Allowed values are: \"bnb\" and \"parallel\", where \"bnb\" is the default")
	timeLimitPtr := flag.Duration("time-limit", 0, "Wall-clock budget; 0 runs to provable optimality")
	maxNodesPtr := flag.Uint64("max-nodes", 0, "Search-node budget per worker; 0 means unlimited")
	workersPtr := flag.Int("workers", 4, "Subtree workers used by the parallel solver")
	logLevelPtr := flag.String("log-level", "info", "Log level: trace, debug, info, warn or error")
	flag.Parse()

	config := defaultConfig()
	if *configPathPtr != "" {
		loaded, err := loadConfig(*configPathPtr)
		if err != nil {
			log.Fatalf("cannot load config file: %v", err)
		}
		config = loaded
	}

	timeLimit, err := parseTimeLimit(config.TimeLimit)
	if err != nil {
		log.Fatalf("invalid timeLimit in config file: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "solver":
			config.Solver = strings.ToLower(*solverPtr)
		case "workers":
			config.Workers = *workersPtr
		case "time-limit":
			timeLimit = *timeLimitPtr
		case "max-nodes":
			config.MaxNodes = *maxNodesPtr
		case "log-level":
			config.LogLevel = *logLevelPtr
		}
	})

	// Validate arguments
	filePath := *filePathPtr
	if !slices.Contains(validSolvers, config.Solver) {
		log.Fatalf("%v is not a valid solver", config.Solver)
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	} else if config.Workers < 1 {
		log.Fatalf("workers must be at least 1: %v", config.Workers)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		log.Fatalf("%v is not a valid log level", config.LogLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	// Extract input
	instance, err := model.InputFromJson(filePath)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Initialize engines
	solver := solvers[config.Solver](solve.Options{
		TimeLimit: timeLimit,
		MaxNodes:  config.MaxNodes,
		Workers:   config.Workers,
		Logger:    &logger,
	})
	scheduler := model.NewScheduler(solver)

	// Build schedule
	result, err := scheduler.Solve(context.Background(), instance)
	if err != nil {
		log.Fatalf("an error occurred during scheduling: %v", err)
	}

	logger.Info().
		Str("status", result.Status.String()).
		Int("makespan", result.Makespan).
		Uint64("branches", result.Stats.Nodes).
		Uint64("conflicts", result.Stats.Conflicts).
		Uint64("pruned", result.Stats.Pruned).
		Dur("wallTime", result.Stats.Elapsed).
		Msg("solve finished")

	// Build output from the schedule
	perMachineSchedule := make(map[int][]map[string]int)
	for machine, tasks := range result.Schedule {
		for _, task := range tasks {
			perMachineSchedule[machine] = append(perMachineSchedule[machine], map[string]int{
				"job":   task.Job,
				"task":  task.Task,
				"start": task.Start,
				"end":   task.End,
			})
		}
	}

	// Marshal output into json
	scheduleJson, err := json.Marshal(map[string]any{
		"status":   result.Status.String(),
		"makespan": result.Makespan,
		"machines": perMachineSchedule,
	})
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(scheduleJson))
	} else {
		if err := os.WriteFile(*outFilePathPtr, scheduleJson, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}
}

func parseTimeLimit(raw string) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	limit, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if limit < 0 {
		return 0, fmt.Errorf("time limit must be >= 0: %v", limit)
	}
	return limit, nil
}
