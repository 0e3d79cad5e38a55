package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/tiara-archive-bot/internal/config"
	"github.com/aliskhannn/tiara-archive-bot/internal/delivery/telegram"
	"github.com/aliskhannn/tiara-archive-bot/internal/delivery/web"
	"github.com/aliskhannn/tiara-archive-bot/internal/logger"
	"github.com/aliskhannn/tiara-archive-bot/internal/quiz"
	"github.com/aliskhannn/tiara-archive-bot/internal/repository"
	"github.com/aliskhannn/tiara-archive-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if !cfg.Telegram.Enabled && !cfg.HTTP.Enabled {
		lg.Fatal("nothing to run: both telegram and http are disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize the quiz store.
	quizRepo, err := repository.NewQuizRepository(cfg.QuizzesPath, cfg.Quizzes.Strict, lg)
	if err != nil {
		lg.Fatal("failed to load quizzes", zap.String("path", cfg.QuizzesPath), zap.Error(err))
	}
	lg.Info("quizzes loaded", zap.Int("count", quizRepo.Count()))

	settings := service.AttemptSettings{
		Scheduler:      quiz.RealScheduler{},
		CorrectDelay:   cfg.Feedback.CorrectDelay,
		IncorrectDelay: cfg.Feedback.IncorrectDelay,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Telegram.Enabled {
		token, err := cfg.Telegram.Token()
		if err != nil {
			lg.Fatal("telegram is enabled but TELEGRAM_API_TOKEN is not set", zap.Error(err))
		}

		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			lg.Fatal("failed to create bot", zap.Error(err))
		}
		bot.Debug = cfg.Telegram.Debug
		lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

		handler := telegram.NewHandler(
			bot,
			lg.Named("telegram"),
			quizRepo,
			settings,
			service.NewOptionMatcher(),
			cfg.Telegram.PollTimeout,
		)
		if err := handler.RegisterCommands(); err != nil {
			lg.Warn("failed to set bot commands", zap.Error(err))
		}

		sweeper := service.NewSweeper(handler.Sessions(), cfg.Sessions.SweepSchedule, cfg.Sessions.IdleTTL, lg.Named("sweeper"))
		g.Go(func() error { return sweeper.Start(gctx) })
		g.Go(func() error { return handler.Run(gctx) })
	}

	if cfg.HTTP.Enabled {
		if cfg.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		// The web app serves a single shared session.
		session := service.NewSession(quizRepo, settings, lg.Named("web"))
		router := web.NewRouter(web.RouterConfig{
			Handler:        web.NewHandler(session, lg.Named("web")),
			Logger:         lg.Named("http"),
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		})
		server := web.NewServer(cfg.HTTP.Addr, router, lg.Named("http"))
		g.Go(func() error {
			defer session.Close()
			return server.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("stopped with error", zap.Error(err))
		return
	}
	lg.Info("shutdown complete")
}
