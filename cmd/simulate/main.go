package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"president/internal/app"
	"president/internal/bot"
	"president/internal/config"
)

const humanID = "you"

func main() {
	var (
		configPath = flag.String("config", "", "path to a game config JSON file")
		players    = flag.Int("players", 0, "number of players (overrides the config)")
		rounds     = flag.Int("rounds", 3, "rounds to play")
		difficulty = flag.String("difficulty", "", "bot difficulty: easy, medium or hard")
		seed       = flag.Int64("seed", 0, "random seed, 0 picks one from the clock")
		human      = flag.Bool("human", false, "take the first seat yourself")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	logger := slogLogger{slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	if *players > 0 {
		cfg.Players = *players
	}
	if *difficulty != "" {
		cfg.AIDifficulty = *difficulty
	}
	if err := cfg.Validate(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("P", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("resident", pterm.FgDarkGray.ToStyle()),
	).Render()
	pterm.Info.Printfln("Seed %d, %d players, bots on %s", *seed, cfg.Players, cfg.AIDifficulty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *seed, *rounds, *human, logger); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	if err := config.LoadGameConfig(path); err != nil {
		return nil, err
	}
	return config.GetGameConfig(), nil
}

func run(ctx context.Context, cfg *config.GameConfig, seed int64, rounds int, human bool, logger slogLogger) error {
	rng := rand.New(rand.NewSource(seed))
	params := cfg.Params()

	seats := make([]app.Seat, 0, cfg.Players)
	for i := 0; i < cfg.Players; i++ {
		if i == 0 && human {
			seats = append(seats, app.Seat{UserID: humanID, Controller: &terminalPlayer{}})
			continue
		}
		id := fmt.Sprintf("bot-%d", i)
		agent, err := bot.NewController(id, params.Difficulty, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			return err
		}
		seats = append(seats, app.Seat{UserID: id, Controller: agent})
	}

	view := &tableView{human: human}
	svc := app.NewService(rng, app.SinkFunc(view.render))
	svc.SetLogger(logger)

	sess, err := svc.StartGame(seats, params, cfg.Points())
	if err != nil {
		return err
	}

	totals := make(map[string]int64)
	for r := 0; r < rounds; r++ {
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Dealing round %d ...", r+1))
		res, err := svc.PlayRound(ctx, sess)
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}
		spinner.Success(fmt.Sprintf("Round %d done", res.Round))
		for id, p := range res.Points {
			totals[id] += p
		}
	}
	printTotals(seats, totals)
	return nil
}

// slogLogger adapts slog to the engine's printf-style logger.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debug(format string, v ...interface{}) { s.l.Debug(fmt.Sprintf(format, v...)) }
func (s slogLogger) Info(format string, v ...interface{})  { s.l.Info(fmt.Sprintf(format, v...)) }
func (s slogLogger) Warn(format string, v ...interface{})  { s.l.Warn(fmt.Sprintf(format, v...)) }
func (s slogLogger) Error(format string, v ...interface{}) { s.l.Error(fmt.Sprintf(format, v...)) }
