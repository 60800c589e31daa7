package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"setmatch-server/internal/config"
	"setmatch-server/internal/mux"
	"setmatch-server/pkg/dealer"
	"setmatch-server/pkg/display"
	"setmatch-server/pkg/input"
	"setmatch-server/pkg/room"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 5

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address (overrides the configuration)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	if *addr != "" {
		cfg.Addr = *addr
	}

	oracle, closeOracle, err := newOracle(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not load match oracle")
	}
	defer closeOracle()

	names := playerNames(cfg)
	hub := room.NewHub()
	disp := display.Multi{
		display.NewLog(logrus.WithField("component", "display"), names),
		hub,
	}

	d := newGame(cfg, oracle, names, disp)
	hub.Attach(d)
	hub.StartShift()
	defer hub.EndShift()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newServer(cfg, mux.NewMux(Version, d, hub))
	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("http server stopped")
			stop()
		}
	}()

	if cfg.HumanPlayers > 0 {
		restore := readKeyboard(ctx, stop, cfg, d)
		defer restore()
	}

	result := d.Run(ctx)
	logrus.WithFields(logrus.Fields{
		"game":    result.GameID,
		"winners": result.Winners,
		"scores":  result.Scores,
		"rounds":  result.Rounds,
	}).Info("game over")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("could not shut down the http server")
	}
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      loggingHandler(cfg, c.Handler(handler)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// readKeyboard forwards key presses on stdin to the human players
// ctrl-c in raw mode calls stop. The returned function restores the terminal.
func readKeyboard(ctx context.Context, stop context.CancelFunc, cfg config.Config, d *dealer.Dealer) func() {
	km, err := input.NewKeymap(cfg.PlayerKeys, cfg.HumanPlayers, cfg.TableSize())
	if err != nil {
		logrus.WithError(err).Fatal("invalid player keys")
	}

	restore, err := input.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		logrus.WithError(err).Warn("could not put the terminal in raw mode")
		restore = func() {}
	}

	go func() {
		err := input.ReadKeys(ctx, os.Stdin, km, func(player, slot int) {
			if _, err := d.Toggle(player, slot); err != nil {
				logrus.WithError(err).WithField("player", player).Warn("key press rejected")
			}
		})

		if errors.Is(err, input.ErrInterrupt) {
			logrus.Info("interrupted from the keyboard")
			stop()
		} else if err != nil && !errors.Is(err, context.Canceled) {
			logrus.WithError(err).Error("could not read keys")
		}
	}()

	return restore
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	cfg := config.Instance()
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
