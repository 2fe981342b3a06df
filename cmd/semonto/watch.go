package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/c360studio/semonto/source"
	"github.com/c360studio/semonto/watch"
)

func watchCmd(a *app) *cobra.Command {
	opts := &convertOptions{}
	var (
		metricsAddr string
		debounce    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <source>",
		Short: "Convert a source again whenever it or a local import changes",
		Long: `Convert the source to --output, then watch the local files it was built
from (the source and every local import) and convert again on change.
A failed reload is logged and the previous output is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), args[0], opts, metricsAddr, debounce)
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464)")
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "Delay to collect changes before reloading")
	return cmd
}

func (a *app) watch(ctx context.Context, stdout io.Writer, src string, opts *convertOptions, metricsAddr string, debounce time.Duration) error {
	if opts.output == "" {
		return errors.New("watch requires --output")
	}
	format, err := a.resolveFormat(opts)
	if err != nil {
		return err
	}
	profile, err := a.resolveProfile(opts)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("Metrics server failed", slog.Any("error", err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		a.logger.Info("Serving metrics", slog.String("addr", metricsAddr))
	}

	l, err := a.loader(reg)
	if err != nil {
		return err
	}

	res, err := a.convertOne(ctx, l, src, stdout, false, format, profile, opts.output)
	if err != nil {
		return err
	}

	files := localFiles(res.Sources)
	if len(files) == 0 {
		return fmt.Errorf("nothing to watch: %s and its imports are remote", src)
	}

	w, err := watch.New(watch.Config{Files: files, DebounceDelay: debounce, Logger: a.logger})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	w.Start(ctx)
	defer func() { _ = w.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			a.logger.Info("Source changed", slog.Any("files", ev.Paths))

			res, err := a.convertOne(ctx, l, src, stdout, false, format, profile, opts.output)
			if err != nil {
				a.logger.Error("Reload failed", slog.Any("error", err))
				continue
			}
			if err := w.SetFiles(localFiles(res.Sources)); err != nil {
				a.logger.Warn("Failed to update watched files", slog.Any("error", err))
			}
		}
	}
}

// localFiles returns the paths of the local locations.
func localFiles(locs []source.Location) []string {
	var files []string
	for _, loc := range locs {
		if !loc.IsRemote() {
			files = append(files, loc.Path)
		}
	}
	return files
}
