// Command mrdriver runs one of the bundled jobs (see the jobs package)
// against literal input strings or a glob-matched set of files, polling
// and printing progress as the job advances, then printing the output
// collection once the job completes.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/arnemeyer/mrengine/engine"
	"github.com/arnemeyer/mrengine/input"
	"github.com/arnemeyer/mrengine/internal/shared/config"
	"github.com/arnemeyer/mrengine/internal/shared/logging"
	"github.com/arnemeyer/mrengine/jobs"
)

func main() {
	var (
		jobName    = flag.String("job", "", "job to run (see -list for available jobs)")
		list       = flag.Bool("list", false, "list available jobs and exit")
		inputGlob  = flag.String("input-glob", "", "glob pattern expanded into input lines, one per matched file line")
		configPath = flag.String("config", "", "optional path to a driver config file")
		workers    = flag.Int("workers", 0, "number of workers (overrides config when > 0)")
	)
	flag.Parse()

	if *list {
		for _, name := range jobs.List() {
			job, _ := jobs.Get(name)
			fmt.Printf("%s\t%s\n", name, job.Describe())
		}
		return
	}

	cfg, err := config.LoadDriver(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	numWorkers := cfg.Workers
	if *workers > 0 {
		numWorkers = *workers
	}

	logger := logging.NewSlogLogger(logLevel(cfg.Logging.Level))

	if numWorkers < 1 {
		logger.Warn("configured worker count is non-positive; engine will use 1 worker", "configured", numWorkers)
	}

	if *jobName == "" {
		logger.Fatal("a job must be selected with -job; use -list to see available jobs")
	}
	job, err := jobs.Get(*jobName)
	if err != nil {
		logger.Fatal("unknown job", "job", *jobName, "error", err)
	}

	pattern := *inputGlob
	if pattern == "" && len(flag.Args()) == 0 {
		pattern = cfg.DefaultGlob
	}
	lines, err := buildInput(pattern, flag.Args())
	if err != nil {
		logger.Fatal("failed to build input", "error", err)
	}

	logger.Info("starting job", "job", *jobName, "workers", numWorkers, "input_size", len(lines))

	run, err := job.Start(lines, numWorkers, engine.WithLogger(logger))
	if err != nil {
		logger.Fatal("failed to start job", "job", *jobName, "error", err)
	}

	var last engine.JobState
	for {
		state := run.State()
		if state != last {
			fmt.Printf("stage %s, %.2f%%\n", state.Stage, state.Percentage)
			last = state
		}
		if state.Stage == engine.StageReduce && state.Percentage == 100.0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	run.Wait()

	fmt.Println("Done!")
	for _, kv := range run.Output() {
		fmt.Printf("%s\t%s\n", kv.Key, kv.Value)
	}
}

// buildInput turns either a glob pattern or literal trailing arguments
// into the engine.Pair[string, string] shape every bundled job accepts as
// raw input. The engine never touches disk itself; this expansion happens
// entirely before Start is called.
func buildInput(pattern string, literals []string) ([]engine.Pair[string, string], error) {
	if pattern != "" {
		return input.FromGlob(pattern)
	}
	pairs := make([]engine.Pair[string, string], len(literals))
	for i, s := range literals {
		pairs[i] = engine.Pair[string, string]{Key: fmt.Sprintf("arg:%d", i), Value: s}
	}
	return pairs, nil
}

func logLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
