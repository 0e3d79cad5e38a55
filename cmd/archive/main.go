package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/aliskhannn/tiara-archive-bot/internal/config"
	"github.com/aliskhannn/tiara-archive-bot/internal/delivery/tui"
	"github.com/aliskhannn/tiara-archive-bot/internal/logger"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/repository"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

// main launches the archive in the terminal.
func main() {
	os.Exit(run())
}

// run plays one session in the terminal and returns an exit code.
func run() int {
	logFile := flag.String("log-file", "", "write logs to this file (logs are discarded when empty)")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	lg := zap.NewNop()
	if *logFile != "" {
		lg, err = logger.NewFile(cfg, *logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
			return 1
		}
	}
	defer func() { _ = lg.Sync() }()

	quizRepo, err := repository.NewQuizRepository(cfg.QuizzesPath, cfg.Quizzes.Strict, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quiz data error: %v\n", err)
		return 1
	}

	session := service.NewSession(quizRepo, service.AttemptSettings{
		Scheduler:      quiz.RealScheduler{},
		CorrectDelay:   cfg.Feedback.CorrectDelay,
		IncorrectDelay: cfg.Feedback.IncorrectDelay,
	}, lg)
	defer session.Close()

	p := tea.NewProgram(tui.NewModel(session, tui.Options{NoColor: *noColor}), tea.WithAltScreen())
	session.SetListener(tui.Notifier(p))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		return 1
	}
	return 0
}
