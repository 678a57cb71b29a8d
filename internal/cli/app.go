package cli

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/rcliao/mindmate/internal/auth"
	"github.com/rcliao/mindmate/internal/chat"
	"github.com/rcliao/mindmate/internal/config"
	"github.com/rcliao/mindmate/internal/logging"
	"github.com/rcliao/mindmate/internal/mood"
	"github.com/rcliao/mindmate/internal/notify"
	"github.com/rcliao/mindmate/internal/profile"
	"github.com/rcliao/mindmate/internal/resources"
	"github.com/rcliao/mindmate/internal/store"
)

// app holds what one command invocation needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    store.Store
	notifier notify.Notifier
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	return cfg
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.Storage.Driver == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.NewSQLiteStore(cfg.Storage.Path)
}

// openApp loads config, builds the logger, and opens the store.
func openApp() *app {
	cfg := loadConfig()
	logger, err := logging.New(cfg.Log)
	if err != nil {
		exitErr("init logger", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    s,
		notifier: notify.Multi{notify.NewWriterNotifier(os.Stderr), notify.NewLogNotifier(logger)},
	}
}

func (a *app) Close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// exitErr closes the store and flushes the logger before exiting.
func (a *app) exitErr(msg string, err error) {
	a.Close()
	exitErr(msg, err)
}

func (a *app) ledger(ctx context.Context) *mood.Ledger {
	l, err := mood.NewLedger(ctx, a.store, a.logger.Named("mood"))
	if err != nil {
		a.exitErr("load mood history", err)
	}
	return l
}

func (a *app) profiles() *profile.Service {
	return profile.NewService(a.store, a.logger.Named("profile"))
}

func (a *app) auth() *auth.Service {
	return auth.NewService(a.store, a.logger.Named("auth"))
}

func (a *app) favorites() *resources.Favorites {
	return resources.NewFavorites(a.store, a.logger.Named("resources"), a.notifier)
}

func (a *app) transcript(ctx context.Context) *chat.Transcript {
	t, err := chat.NewTranscript(ctx, a.store, a.logger.Named("chat"))
	if err != nil {
		a.exitErr("load chat history", err)
	}
	return t
}

func (a *app) quickReplies(ctx context.Context) *chat.QuickReplies {
	q, err := chat.NewQuickReplies(ctx, a.store, a.logger.Named("chat"))
	if err != nil {
		a.exitErr("load quick replies", err)
	}
	return q
}

// session wires a chat session. notifier receives notices; nav receives the
// resources redirect from the safety prompt.
func (a *app) session(ctx context.Context, notifier notify.Notifier, nav notify.Navigator) *chat.Session {
	rc := a.cfg.Responder
	responder, err := chat.NewResponder(chat.ResponderOptions{
		Provider: rc.Provider,
		Delay:    rc.Delay,
		OpenAI: chat.OpenAIOptions{
			APIKey:      rc.OpenAI.APIKey,
			BaseURL:     rc.OpenAI.BaseURL,
			Model:       rc.OpenAI.Model,
			MaxTokens:   rc.OpenAI.MaxTokens,
			Temperature: rc.OpenAI.Temperature,
		},
	}, a.logger.Named("responder"))
	if err != nil {
		a.exitErr("init responder", err)
	}

	return chat.NewSession(chat.Deps{
		Transcript:   a.transcript(ctx),
		QuickReplies: a.quickReplies(ctx),
		Safety:       chat.NewSafetyEscalation(nav),
		Responder:    responder,
		Profile:      a.profiles(),
		Notifier:     notifier,
		Logger:       a.logger.Named("chat"),
	})
}
