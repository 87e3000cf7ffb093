package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind           string
	categoryCost   int
	hardTimeout    time.Duration
	lockChance     float64
	port           int
	prefix         string
	profile        bool
	questions      string
	sessionTimeout time.Duration
	softTimeout    time.Duration
	startingPoints int
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.startingPoints < 0 {
		return fmt.Errorf("invalid starting points (must be non-negative): %d", c.startingPoints)
	}
	if c.categoryCost < 0 {
		return fmt.Errorf("invalid category cost (must be non-negative): %d", c.categoryCost)
	}
	if c.lockChance < 0 || c.lockChance > 1 {
		return fmt.Errorf("invalid lock chance (must be between 0 and 1 inclusive): %v", c.lockChance)
	}
	if c.softTimeout <= 0 || c.hardTimeout <= c.softTimeout {
		return fmt.Errorf("invalid timeouts (hard must exceed soft, both positive): soft=%s hard=%s", c.softTimeout, c.hardTimeout)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TRIVIABOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "triviabox...",
		Short:         "A two-team Jeopardy-style trivia game, played in a single browser tab.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TRIVIABOX_BIND)")
	fs.IntVar(&cfg.categoryCost, "category-cost", 500, "points required to unlock a locked category (env: TRIVIABOX_CATEGORY_COST)")
	fs.DurationVar(&cfg.hardTimeout, "hard-timeout", 90*time.Second, "per-question hard timeout (env: TRIVIABOX_HARD_TIMEOUT)")
	fs.Float64Var(&cfg.lockChance, "lock-chance", 0.5, "probability that a catalog category starts locked (env: TRIVIABOX_LOCK_CHANCE)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TRIVIABOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: TRIVIABOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: TRIVIABOX_PROFILE)")
	fs.StringVarP(&cfg.questions, "questions", "q", "questions.json", "path to the category/question catalog (env: TRIVIABOX_QUESTIONS)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: TRIVIABOX_SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.softTimeout, "soft-timeout", 60*time.Second, "per-question soft timeout (env: TRIVIABOX_SOFT_TIMEOUT)")
	fs.IntVar(&cfg.startingPoints, "starting-points", 1000, "points each team holds during category selection (env: TRIVIABOX_STARTING_POINTS)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: TRIVIABOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: TRIVIABOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: TRIVIABOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: TRIVIABOX_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("triviabox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
