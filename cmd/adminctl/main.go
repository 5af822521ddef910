package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"ismaalAdmin/internal/cli"
	"ismaalAdmin/internal/cli/formatter"
	"ismaalAdmin/internal/config"
	"ismaalAdmin/internal/marketplace"
	"ismaalAdmin/internal/services"
	"ismaalAdmin/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fd := os.Stdout.Fd()
	formatter.SetPlain(!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client, err := marketplace.NewClient(marketplace.Config{
		BaseURL: cfg.Marketplace.BaseURL,
		Client:  &http.Client{Timeout: cfg.Marketplace.Timeout},
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	app := &cli.App{
		Session:       session.New(session.NewFileStore(cfg.Session.File), session.AdminUserKey, logger),
		Auth:          client,
		Submissions:   services.NewSubmissionService(client, nil, cfg.Moderation.DefaultPerPage, logger),
		Products:      &services.ProductService{API: client},
		Professionals: &services.ProfessionalService{API: client},
		Businesses:    &services.BusinessService{API: client},
		Plans:         &services.PlanService{API: client},
		Users:         &services.UserService{API: client},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
