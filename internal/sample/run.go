package sample

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/okian/ghostboard/internal/domain/ghost"
	"github.com/okian/ghostboard/internal/domain/leaderboard"
	"github.com/okian/ghostboard/internal/domain/types"
)

// Board builds the board described by cfg.
func Board(cfg Config) types.Board {
	e := engine(cfg)
	cohort := e.GenerateCohort(cfg.Size)
	res := leaderboard.Assemble(e.DailyScores(cohort, cfg.At), leaderboard.User{
		Name:  cfg.UserName,
		Score: cfg.UserScore,
	})

	return types.Board{
		SeedKey:    e.SeedKey(),
		PackID:     cfg.PackID,
		Entries:    res.Entries,
		Total:      len(res.Entries),
		UserRank:   res.UserRank,
		UserScore:  res.UserScore,
		Percentile: res.Percentile,
		Analytics:  leaderboard.Analyze(res.UserRank, len(res.Entries), res.UserScore, 0),
	}
}

func engine(cfg Config) *ghost.Engine {
	var opts []ghost.Option
	if cfg.Location != nil {
		opts = append(opts, ghost.WithLocation(cfg.Location))
	}
	if cfg.Key != "" {
		return ghost.New(cfg.Key, opts...)
	}
	return ghost.NewWeekly(cfg.At, cfg.PackID, opts...)
}

// Run renders the board to w.
func Run(cfg Config, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	board := Board(cfg)
	progress := engine(cfg).Progress(cfg.At)

	fmt.Fprintf(w, "seed %s  at %s  progress %.0f%%\n", board.SeedKey, cfg.At.Format("2006-01-02 15:04 MST"), progress*100)
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, e := range board.Entries {
		marker := " "
		if e.IsUser {
			marker = "*"
		}
		line := fmt.Sprintf("%s%3d. %-24s %4d  %2s", marker, e.Rank, e.Name, e.Score, e.Initials)
		if cfg.ShowSkills && e.IsBot {
			line += fmt.Sprintf("  skill %d", e.Skill)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, strings.Repeat("-", 52))
	fmt.Fprintf(w, "%s: rank %d of %d, top %.0f%%\n", cfg.UserName, board.UserRank, board.Total, (1-board.Percentile)*100)

	if cfg.Verify {
		if err := Verify(cfg, board); err != nil {
			return err
		}
		fmt.Fprintln(w, "verify: board is reproducible")
	}
	return nil
}

// ErrNotReproducible means two runs with the same inputs disagreed.
var ErrNotReproducible = errors.New("board not reproducible")

// Verify rebuilds the board and checks it matches and is well formed.
func Verify(cfg Config, board types.Board) error {
	again := Board(cfg)
	if !reflect.DeepEqual(again, board) {
		return ErrNotReproducible
	}
	for i, e := range board.Entries {
		if e.Rank != i+1 {
			return fmt.Errorf("%w: rank %d at position %d", ErrNotReproducible, e.Rank, i)
		}
		if i > 0 && e.Score > board.Entries[i-1].Score {
			return fmt.Errorf("%w: score order broken at rank %d", ErrNotReproducible, e.Rank)
		}
		if e.Score%ghost.ScoreUnit != 0 && e.IsBot {
			return fmt.Errorf("%w: ghost score %d not a multiple of %d", ErrNotReproducible, e.Score, ghost.ScoreUnit)
		}
	}
	return nil
}

// ShowHelp prints usage information for the sample tool.
func ShowHelp() {
	os.Stdout.WriteString(`Ghost Board Sampler
===================

Prints the ghost board a user would see at a given instant.

Usage:
  go run ./cmd/ghost-sample [options]

Options:
  -pack int       Pack id used for the weekly seed (default 10)
  -size int       Number of ghosts (default 49)
  -at string      RFC3339 instant (default now)
  -tz string      IANA zone for the activity window (default Asia/Kolkata)
  -score int      The real user's score (default 0)
  -name string    The real user's name (default Guest)
  -key string     Explicit seed key, e.g. 2024-W04-P10
  -skills         Show each ghost's skill
  -verify         Rebuild and check the board is reproducible
  -help           Show this help message

Examples:
  go run ./cmd/ghost-sample -pack 12 -at 2024-01-24T16:20:00+05:30 -score 230 -name "Meena Iyer"
  go run ./cmd/ghost-sample -key 2024-W04-P10 -skills -verify
`)
}
