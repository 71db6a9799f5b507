package main

import (
	"flag"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/okian/ghostboard/internal/domain/ghost"
	"github.com/okian/ghostboard/internal/domain/model"
	"github.com/okian/ghostboard/internal/sample"
)

// Default configuration constants.
const (
	defaultPack     = 10
	defaultTimezone = "Asia/Kolkata"
)

func main() {
	var (
		pack   = flag.Int("pack", defaultPack, "Pack id used for the weekly seed")
		size   = flag.Int("size", ghost.DefaultCohortSize, "Number of ghosts")
		at     = flag.String("at", "", "RFC3339 instant (default now)")
		tz     = flag.String("tz", defaultTimezone, "IANA zone for the activity window")
		score  = flag.Int("score", 0, "The real user's score")
		name   = flag.String("name", model.GuestName, "The real user's name")
		key    = flag.String("key", "", "Explicit seed key")
		skills = flag.Bool("skills", false, "Show each ghost's skill")
		verify = flag.Bool("verify", false, "Check the board is reproducible")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sample.ShowHelp()
		return
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		os.Stderr.WriteString("invalid -tz: " + err.Error() + "\n")
		os.Exit(2)
	}

	now := time.Now().In(loc)
	if *at != "" {
		now, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			os.Stderr.WriteString("invalid -at; must be RFC3339: " + err.Error() + "\n")
			os.Exit(2)
		}
	}

	cfg := sample.Config{
		PackID:     *pack,
		Size:       *size,
		At:         now,
		Location:   loc,
		UserName:   *name,
		UserScore:  *score,
		Key:        *key,
		Verify:     *verify,
		ShowSkills: *skills,
	}

	if err := sample.Run(cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("sample failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
