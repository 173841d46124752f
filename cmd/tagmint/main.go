/*
Package main is the tagmint CLI: it creates git tags under a naming and
versioning policy and prunes stale temporary tags.

With no arguments it runs an interactive menu; with one argument it tags
HEAD with the given name; with two it tags the given commit.
*/
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/tagmint/tagmint"
	"github.com/tagmint/tagmint/internal/config"
	"github.com/tagmint/tagmint/internal/gitrepo"
	"github.com/tagmint/tagmint/internal/session"
)

// version is set via ldflags at release time.
var version = "dev"

type Options struct {
	Remote      string `short:"r" long:"remote"       description:"Remote used for pushes and remote cleanup (default: origin)"`
	Config      string `short:"c" long:"config"       description:"Path to a config file (default: .tagmint.yaml in the repo root)"`
	NoPush      bool   `short:"n" long:"no-push"      description:"Create the tag locally without pushing"`
	NoCleanup   bool   `long:"no-cleanup"             description:"Skip the stale temporary-tag prune pass"`
	CleanupOnly bool   `long:"cleanup-only"           description:"Only prune stale temporary tags, create nothing"`
	Verbose     bool   `short:"v" long:"verbose"      description:"Enable debug logging"`
	Version     bool   `short:"V" long:"version"      description:"Print version and exit"`

	Args struct {
		Tag    string `positional-arg-name:"TAG"    description:"Tag name (omit for the interactive menu)"`
		Commit string `positional-arg-name:"COMMIT" description:"Target commit-ish (default: HEAD)"`
	} `positional-args:"yes"`
}

func main() {
	var opt Options
	parser := flags.NewParser(&opt, flags.Default)
	parser.LongDescription = `tagmint is a git tag helper.
It creates semantic, ticket, pre-release, and temporary tags under a
naming policy, proposes the next version interactively, and prunes
temporary tags whose branch no longer exists.`
	if _, err := parser.Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if opt.Version {
		fmt.Println("tagmint " + version)
		os.Exit(0)
	}

	level := slog.LevelWarn
	if opt.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(opt); err != nil {
		fmt.Fprintln(os.Stderr, "tagmint:", err)
		os.Exit(1)
	}
}

func run(opt Options) error {
	repo, err := gitrepo.Open(".")
	if err != nil {
		return err
	}

	pol, err := config.Load(tagmint.DefaultOptions(), repo.Path(), opt.Config)
	if err != nil {
		return err
	}
	if opt.Remote != "" {
		pol.Remote = opt.Remote
	}

	s := session.New(repo, pol, os.Stdin, os.Stdout)
	s.NoPush = opt.NoPush
	s.NoCleanup = opt.NoCleanup

	if opt.CleanupOnly {
		return s.CleanupOnly()
	}

	return s.Run(opt.Args.Tag, opt.Args.Commit)
}
