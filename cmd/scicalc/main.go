package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/config"
	"github.com/zephyrtronium/scicalc/internal/history"
	"github.com/zephyrtronium/scicalc/internal/messages"
	"github.com/zephyrtronium/scicalc/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		inname, verb, angle, logname string
		nl, echo, record, interact   bool
		verbose                      bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "", "result formatting string (default shortest round-trip)")
	flag.StringVar(&angle, "angle", "", "angle mode, deg or rad (default from config)")
	flag.StringVar(&logname, "log", "", "write logs to this file instead of stderr")
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print RPN before each result")
	flag.BoolVar(&record, "history", false, "record successful results in history")
	flag.BoolVar(&interact, "tui", false, "run the interactive calculator")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	closeLog, err := setupLog(logname, verbose, interact)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("loading config")
		return 2
	}
	if angle != "" {
		cfg.AngleMode = angle
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid config")
		return 2
	}
	mode, _ := cfg.Angle()
	log.Debug().Str("angle_mode", mode.String()).Str("language", cfg.Language).Msg("config loaded")

	ctx := context.Background()
	var store *history.Store
	if record || (interact && cfg.History.Enabled) {
		db, err := openHistory(cfg.History.Path)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.History.Path).Msg("opening history")
			return 2
		}
		defer db.Close()
		store = history.NewStore(db, cfg.History.Limit)
	}
	key := history.InstanceKey(cfg.History.Instance)

	if interact {
		opts := tui.Options{
			Mode:     mode,
			Lang:     cfg.Language,
			Instance: key,
			SaveMode: func(m scicalc.AngleMode) error {
				c := cfg
				c.AngleMode = m.String()
				return config.Save(c)
			},
			Log: &log.Logger,
		}
		if store != nil {
			opts.History = store
		}
		if _, err := tea.NewProgram(tui.New(ctx, opts)).Run(); err != nil {
			log.Error().Err(err).Msg("running calculator")
			return 1
		}
		return 0
	}

	srcs, err := inputs(inname, nl, flag.Args())
	if err != nil {
		log.Error().Err(err).Msg("reading input")
		return 2
	}
	status := 0
	for _, src := range srcs {
		e, err := scicalc.Parse(src)
		if err != nil {
			fail(cfg.Language, src, err)
			status = 1
			continue
		}
		if echo {
			fmt.Printf("%v : ", e)
		}
		v, err := e.Eval(mode)
		if err != nil {
			fail(cfg.Language, src, err)
			status = 1
			continue
		}
		r := scicalc.FormatResult(v)
		if verb != "" {
			r = fmt.Sprintf(verb, v)
		}
		fmt.Println(r)
		if store != nil {
			if _, err := store.Add(ctx, key, src, r); err != nil {
				log.Error().Err(err).Msg("recording history")
			}
		}
	}
	return status
}

func fail(lang, src string, err error) {
	fmt.Println(messages.Message(lang, err))
	log.Debug().Str("expr", src).Stringer("kind", scicalc.KindOf(err)).Err(err).Msg("evaluation failed")
}

// setupLog points the global logger at stderr, or at a file if one is named.
// The interactive calculator owns the terminal, so without a file its logs
// are discarded.
func setupLog(name string, verbose, interact bool) (func(), error) {
	var w io.Writer = zerolog.ConsoleWriter{
		Out:          os.Stderr,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	done := func() {}
	switch {
	case name != "":
		f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		w, done = f, func() { f.Close() }
	case interact:
		w = io.Discard
	}
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return done, nil
}

// openHistory opens and migrates the history database, creating its
// directory if needed.
func openHistory(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	if err := history.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return db, nil
}

// inputs collects the expressions to evaluate. Each argument is one
// expression. Input read from a file or stdin is one expression, or one per
// non-blank line with nl.
func inputs(inname string, nl bool, args []string) ([]string, error) {
	var srcs []string
	f, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if f != nil {
		defer f.Close()
		if nl {
			sc := bufio.NewScanner(f)
			for sc.Scan() {
				if s := strings.TrimSpace(sc.Text()); s != "" {
					srcs = append(srcs, s)
				}
			}
			if err := sc.Err(); err != nil {
				return nil, err
			}
		} else {
			b, err := io.ReadAll(f)
			if err != nil {
				return nil, err
			}
			if s := strings.TrimSpace(string(b)); s != "" {
				srcs = append(srcs, s)
			}
		}
	}
	for _, arg := range args {
		srcs = append(srcs, strings.TrimSpace(arg))
	}
	return srcs, nil
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
