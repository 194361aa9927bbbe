// Package cli wires the annix subcommands to the command implementations
// in pkg/commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/annix/internal/version"
	addcmd "github.com/arthur-debert/annix/pkg/commands/add"
	cleancmd "github.com/arthur-debert/annix/pkg/commands/clean"
	listcmd "github.com/arthur-debert/annix/pkg/commands/list"
	removecmd "github.com/arthur-debert/annix/pkg/commands/remove"
	savecmd "github.com/arthur-debert/annix/pkg/commands/save"
	synccmd "github.com/arthur-debert/annix/pkg/commands/sync"
	"github.com/arthur-debert/annix/pkg/config"
	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/filesystem"
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/nix"
	"github.com/arthur-debert/annix/pkg/paths"
	"github.com/arthur-debert/annix/pkg/store"
	"github.com/arthur-debert/annix/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// env bundles the loaded configuration and the store for the managed file.
// Every subcommand builds one lazily so `annix version` and `annix genconfig`
// work without a readable config.
type env struct {
	cfg   *config.Config
	store *store.Store
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:   cfg,
		store: store.New(filesystem.NewOS(), cfg.File),
	}, nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		force     bool
	)

	rootCmd := &cobra.Command{
		Use:   "annix",
		Short: "A declarative package list manager for NixOS",
		Long: `annix manages the package list embedded in a Nix configuration file.
Packages are plain lines in the file; annix adds, disables and removes them
while leaving every other line untouched, and rebuilds the system only when
the list's fingerprint actually changed.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			style.AutoDetect()
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		// Bare `annix` (optionally with -f) behaves as `annix sync`.
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return runSync(e, force)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Rebuild even when the fingerprint is current")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newGenConfigCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("annix version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

func newSyncCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the system if the package list changed",
		Long: `Sync compares the stored fingerprint against one computed from the
current package list. When they differ (or --force is given) it runs the
configured rebuild command, then reconciles the stored fingerprint.`,
		Example: `  # Rebuild only if the package list changed
  annix sync

  # Rebuild unconditionally
  annix sync --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return runSync(e, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Rebuild even when the fingerprint is current")
	return cmd
}

// runSync executes the sync flow against the loaded environment and renders
// the outcome. Shared by the sync subcommand, the bare root command, and the
// implicit sync after add/rm.
func runSync(e *env, force bool) error {
	result, err := synccmd.Run(synccmd.Options{
		Store:           e.store,
		Rebuilder:       nix.NewRebuilder(e.cfg.RebuildCommand, os.Stdout, os.Stderr),
		Force:           force,
		GateFingerprint: e.cfg.GateFingerprint,
	})
	if result != nil {
		printWarnings(result.Warnings)
	}
	if err != nil {
		return err
	}

	switch {
	case result.Rebuilt:
		fmt.Println(style.SuccessStyle.Render("System rebuilt."))
	case result.NeedsRebuild || force:
		fmt.Println(style.NoticeStyle.Render("Rebuild skipped."))
	default:
		fmt.Println(style.MutedStyle.Render("Nothing to do, package list unchanged."))
	}
	if result.FingerprintUpdated {
		fmt.Println(style.MutedStyle.Render("Fingerprint updated."))
	}
	return nil
}

func newAddCmd() *cobra.Command {
	var skipRebuild bool
	cmd := &cobra.Command{
		Use:   "add <package>...",
		Short: "Add packages to the managed file",
		Long: `Add inserts each package as a new line in the managed file, or re-enables
it if a disabled line already exists. Already-installed packages are left
alone. Unless --skip-rebuild is given, a sync runs afterwards.`,
		Example: `  # Add two packages and rebuild
  annix add ripgrep htop

  # Add without rebuilding
  annix add ripgrep -s`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			report, err := addcmd.Run(addcmd.Options{Store: e.store, Packages: args})
			if err != nil {
				return err
			}
			printAddReport(report)
			if report.Changed && !skipRebuild {
				return runSync(e, false)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&skipRebuild, "skip-rebuild", "s", false, "Do not sync after adding")
	return cmd
}

func newRmCmd() *cobra.Command {
	var (
		del          bool
		all          bool
		disabledOnly bool
		skipRebuild  bool
	)
	cmd := &cobra.Command{
		Use:   "rm <package>...",
		Short: "Disable or delete packages in the managed file",
		Long: `Rm disables each package by rewriting its line with the disabled prefix.
With --delete the line is removed instead (a trailing comment survives as a
comment line). Unless --skip-rebuild is given, a sync runs afterwards.`,
		Example: `  # Disable a package (its line stays, commented out)
  annix rm htop

  # Delete the line outright, every instance
  annix rm htop -d -a

  # Delete only already-disabled lines
  annix rm htop -d --disabled`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			report, err := removecmd.Run(removecmd.Options{
				Store:        e.store,
				Packages:     args,
				Delete:       del,
				AllInstances: all,
				DisabledOnly: disabledOnly,
			})
			if err != nil {
				return err
			}
			printRemoveReport(report)
			if report.Changed && !skipRebuild {
				return runSync(e, false)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&del, "delete", "d", false, "Delete lines instead of disabling them")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Process every matching line, not just the first")
	cmd.Flags().BoolVar(&disabledOnly, "disabled", false, "Match only already-disabled entries")
	cmd.Flags().BoolVarP(&skipRebuild, "skip-rebuild", "s", false, "Do not sync after removing")
	return cmd
}

func newLsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List active and disabled packages",
		Example: `  # Human-readable listing
  annix ls

  # Machine-readable listing
  annix ls --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			result, err := listcmd.Run(listcmd.Options{Store: e.store})
			if err != nil {
				return err
			}
			if asJSON {
				return printListJSON(result)
			}
			printWarnings(result.Warnings)
			printList(result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of the styled listing")
	return cmd
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete all disabled package lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			report, err := cleancmd.Run(cleancmd.Options{Store: e.store})
			if err != nil {
				return err
			}
			if !report.Changed {
				fmt.Println(style.MutedStyle.Render("Nothing to clean."))
				return nil
			}
			fmt.Println(style.SuccessStyle.Render(fmt.Sprintf("Deleted %d disabled package(s):", len(report.Deleted))))
			for _, name := range report.Deleted {
				fmt.Printf("  %s\n", style.PackageStyle.Render(name))
			}
			return nil
		},
	}
}

func newSaveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Snapshot the managed file",
		Long: `Save copies the managed file to an_<name>.nix in the same directory.
If the snapshot already exists you are asked before it is overwritten;
--force skips the prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			result, err := savecmd.Run(savecmd.Options{Store: e.store, Name: args[0], Overwrite: force})
			if errors.IsErrorCode(err, errors.ErrAlreadyExists) {
				if !confirm(fmt.Sprintf("%v. Overwrite?", err)) {
					fmt.Println(style.MutedStyle.Render("Aborted."))
					return nil
				}
				result, err = savecmd.Run(savecmd.Options{Store: e.store, Name: args[0], Overwrite: true})
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", style.SuccessStyle.Render("Saved to"), style.PathStyle.Render(result.Path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing snapshot without asking")
	return cmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search nixpkgs",
		Long:  `Search runs nix search against nixpkgs and renders the matches.`,
		Example: `  annix search ripgrep
  annix search python lint`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			results, err := nix.NewSearcher().Search(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println(style.MutedStyle.Render("No packages found."))
				return nil
			}
			printSearchResults(results, e.cfg.MinWrapWidth)
			return nil
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Print the default configuration file",
		Long: `Genconfig prints the default annix.toml. With --write it is written to
the config path instead (refusing to clobber an existing file).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.DefaultTOML()
			if err != nil {
				return err
			}
			if !write {
				fmt.Print(string(data))
				return nil
			}
			dest := paths.ConfigFile()
			if _, err := os.Stat(dest); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, "%s already exists", dest)
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to create config directory for %s", dest)
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest)
			}
			fmt.Printf("%s %s\n", style.SuccessStyle.Render("Wrote"), style.PathStyle.Render(dest))
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "Write the default config to the config path")
	return cmd
}

// confirm asks a yes/no question on the terminal, defaulting to no
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
