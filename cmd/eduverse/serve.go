package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/san-kum/eduverse/internal/api"
	"github.com/san-kum/eduverse/internal/progress"
	"github.com/san-kum/eduverse/internal/progress/inmem"
	"github.com/san-kum/eduverse/internal/progress/postgres"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/speech"
)

const shutdownTimeout = 10 * time.Second

var (
	addr        string
	disableLogs bool
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve models, frames, speech text and progress over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config or EDUVERSE_ADDR)")
	cmd.Flags().BoolVar(&disableLogs, "quiet", false, "disable request logs")
	return cmd
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	lg, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := inmem.NewRepository()
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		repo = postgres.NewRepository(db)
		lg.Infof("progress: using postgres")
	} else {
		lg.Warnf("progress: no database configured, records are kept in memory")
	}

	srv := api.NewServer(&api.Options{
		Address:        cfg.Addr,
		DisableReqLogs: disableLogs,
		Config:         cfg,
		Assembler:      scene.NewAssembler(nil),
		Progress:       progress.NewService(repo),
		Logger:         lg,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	lg.Infof("api: shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(sctx)
}

func readText(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
		return string(b), nil
	}
	return strings.Join(args, " "), nil
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text|-]",
		Short: "strip markup from lesson text for reading aloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args)
			if err != nil {
				return err
			}
			out, err := speech.Normalize(text)
			if err != nil {
				if fields := speech.Fields(err); fields != nil {
					for f, msg := range fields {
						cmd.PrintErrf("%s: %s\n", f, msg)
					}
				}
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func speakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speak [text|-]",
		Short: "read lesson text aloud with the host speech engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			lg, err := newLogger(cfg)
			if err != nil {
				return err
			}
			text, err := readText(args)
			if err != nil {
				return err
			}

			d := speech.NewDispatcher(speech.DetectSynthesizer(cfg.TTSCommand), speech.UnavailableRecognizer(), lg)
			spoken, notice, err := d.Say(cmd.Context(), text)
			if err != nil {
				return err
			}
			if !notice.Empty() {
				cmd.PrintErrf("%s: %s\n", notice.Level, notice.Message)
			}
			if spoken != "" {
				fmt.Println(spoken)
			}
			return nil
		},
	}
}
