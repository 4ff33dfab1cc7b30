package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/sqlrealm/pkg/credentials"
	"github.com/mmcdole/sqlrealm/pkg/logging"
	"github.com/mmcdole/sqlrealm/pkg/password"
	"github.com/mmcdole/sqlrealm/pkg/realm"
)

var (
	version       = "dev" // Will be set during build
	cfgFile       string
	showVersion   bool
	passwordStdin bool
)

var errAuthFailed = errors.New("authentication failed")

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "sqlrealm",
	Short:         "SQL-backed username/password realm",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `sqlrealm - check usernames and passwords against SQL tables

Configuration file must be in JSON format with the following structure:
{
    "driver": "postgres",
    "datasource": "postgres://auth@localhost/auth?sslmode=disable",
    "max_open_conns": 10,
    "max_idle_conns": 2,
    "conn_max_lifetime": 300,
    "access_log_path": "log/sqlrealm-access.log",
    "log_level": "info",
    "realm": {
        "digest-algorithm": "bcrypt",
        "bcrypt-log-rounds": "10",
        "user-table": "users",
        "user-name-column": "username",
        "user-password-column": "password",
        "group-table": "user_groups",
        "group-name-column": "group_name"
    }
}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "sqlrealm %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the stored form of a password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := setup()
		if err != nil {
			return err
		}

		strategy, err := password.NewStrategyFromProperties(config.Realm)
		if err != nil {
			return fmt.Errorf("failed to create password strategy: %w", err)
		}

		pass, err := readPassword(cmd)
		if err != nil {
			return err
		}
		hash, err := strategy.Hash(pass)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var authenticateCmd = &cobra.Command{
	Use:   "authenticate <username>",
	Short: "Check a password and print the user's groups",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := setup()
		if err != nil {
			return err
		}

		pass, err := readPassword(cmd)
		if err != nil {
			return err
		}

		return withRealm(cmd.Context(), config, func(r *realm.Realm) error {
			res, err := r.Authenticate(cmd.Context(), args[0], pass)
			if err != nil {
				return err
			}
			if !res.Authenticated {
				return errAuthFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "authenticated")
			for _, g := range res.Groups {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		})
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups <username>",
	Short: "List the groups of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := setup()
		if err != nil {
			return err
		}

		return withRealm(cmd.Context(), config, func(r *realm.Realm) error {
			groups, err := r.GroupNames(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, g := range groups {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		})
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Print the SQL statements the realm runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := setup()
		if err != nil {
			return err
		}

		storeCfg, err := credentials.ParseProperties(config.Realm, config.Driver)
		if err != nil {
			return fmt.Errorf("invalid realm properties: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), storeCfg.PasswordQuery())
		fmt.Fprintln(cmd.OutOrStdout(), storeCfg.GroupsQuery())
		return nil
	},
}

// setup loads the config file and initializes logging
func setup() (*Config, error) {
	if cfgFile == "" {
		return nil, fmt.Errorf("config file is required (use --config)")
	}

	// Convert to absolute path if needed
	path := cfgFile
	if !filepath.IsAbs(path) {
		var err error
		path, err = filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}
	}

	var config Config
	if err := LoadConfig(afero.NewOsFs(), path, &config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Initialize(config.LoggingConfig()); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return &config, nil
}

func withRealm(ctx context.Context, config *Config, fn func(*realm.Realm) error) error {
	db, err := credentials.OpenDB(ctx, config.DBConfig())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	r, err := realm.NewFromProperties(config.Realm, db, config.Driver)
	if err != nil {
		return fmt.Errorf("failed to create realm: %w", err)
	}
	return fn(r)
}

// readPassword takes one line from stdin with --password-stdin, otherwise
// prompts on the terminal without echo
func readPassword(cmd *cobra.Command) (string, error) {
	if passwordStdin {
		return readPasswordLine(cmd.InOrStdin())
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal (use --password-stdin)")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (required)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")

	for _, cmd := range []*cobra.Command{hashCmd, authenticateCmd} {
		cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	}

	rootCmd.AddCommand(hashCmd, authenticateCmd, groupsCmd, queriesCmd)
}
