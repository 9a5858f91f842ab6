package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/prlabel/internal/version"
	"github.com/arthur-debert/prlabel/pkg/config"
	"github.com/arthur-debert/prlabel/pkg/errors"
	"github.com/arthur-debert/prlabel/pkg/github"
	"github.com/arthur-debert/prlabel/pkg/labeler"
	"github.com/arthur-debert/prlabel/pkg/logging"
	"github.com/arthur-debert/prlabel/pkg/rules"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		token      string
		configFile string
		debugMode  string
	)

	rootCmd := &cobra.Command{
		Use:   "prlabel",
		Short: "Auto-label pull requests from their changed files",
		Long: `prlabel evaluates the file paths changed by a pull request against the
wildcard pattern groups in your labeler configuration and applies the
labels of every matching group. Labels mentioned in the configuration are
fully recomputed each run; labels outside it are left alone.

Designed to run once per pull_request workflow event.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, token, configFile, debugMode)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().StringVar(&token, "token", "", "GitHub access token (falls back to INPUT_TOKEN, GITHUB_TOKEN)")
	rootCmd.Flags().StringVar(&configFile, "file", "", "Labeler configuration file (falls back to INPUT_FILE, then "+config.DefaultPath+")")
	rootCmd.Flags().StringVar(&debugMode, "debug", "", "Debug mode, 'enable' or 'disable' (falls back to INPUT_DEBUG)")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func runSync(cmd *cobra.Command, token, configFile, debugMode string) error {
	debug, err := resolveDebug(debugMode)
	if err != nil {
		return err
	}

	token = fallbackEnv(token, "INPUT_TOKEN", "GITHUB_TOKEN")
	if token == "" {
		return errors.New(errors.ErrConfigInvalid, "no access token provided")
	}

	configFile = fallbackEnv(configFile, "INPUT_FILE")
	if configFile == "" {
		configFile = config.DefaultPath
	}

	owner, repo, err := github.SplitRepository(os.Getenv("GITHUB_REPOSITORY"))
	if err != nil {
		return err
	}

	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return errors.New(errors.ErrEventInvalid, "GITHUB_EVENT_PATH is not set")
	}
	event, err := github.LoadEvent(eventPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	compiled, err := rules.Compile(cfg.Rules, cfg.GlobFlags())
	if err != nil {
		return err
	}

	log.Info().
		Str("repository", owner+"/"+repo).
		Int("pr", event.PRNumber()).
		Str("config", configFile).
		Bool("debug", debug).
		Msg("Labeling pull request")

	ctx := cmd.Context()
	client := github.NewClient(ctx, token)
	return labeler.New(client, compiled, debug).Sync(ctx, owner, repo, event.PRNumber())
}

// resolveDebug turns the flag or INPUT_DEBUG into a boolean; anything but
// enable/disable is an error rather than a guess.
func resolveDebug(value string) (bool, error) {
	if value == "" {
		value = os.Getenv("INPUT_DEBUG")
	}
	switch value {
	case "", "disable":
		return false, nil
	case "enable":
		return true, nil
	default:
		return false, errors.Newf(errors.ErrConfigInvalid, "unknown value for debug: %q", value)
	}
}

func fallbackEnv(value string, envs ...string) string {
	if value != "" {
		return value
	}
	for _, env := range envs {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("prlabel version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}
