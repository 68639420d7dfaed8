// Command tandemd runs a single-node swap registry daemon. State lives in
// a local bbolt database and transactions are accepted over JSON-RPC.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tandemswap/tandem"
	"github.com/tandemswap/tandem/app"
	"github.com/tandemswap/tandem/store/bolt"
	"github.com/tandemswap/tandem/x/funds"
	"github.com/tandemswap/tandem/x/guard"
)

// Version is set at build time.
var Version = "development"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var home string

	root := &cobra.Command{
		Use:           "tandemd",
		Short:         "tandemd runs a two-party asset swap registry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultHome := ".tandemd"
	if dir, err := os.UserHomeDir(); err == nil {
		defaultHome = filepath.Join(dir, ".tandemd")
	}
	root.PersistentFlags().StringVar(&home, "home", defaultHome, "directory for config and data")

	root.AddCommand(
		initCmd(&home),
		startCmd(&home),
		versionCmd(),
	)
	return root
}

func initCmd(home *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration and an empty genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := DefaultConfig(*home)
			if err := WriteConfig(*home, conf); err != nil {
				return err
			}
			if _, err := os.Stat(conf.GenesisPath); err == nil {
				return nil
			}
			genesis := map[string]interface{}{"funds": []interface{}{}}
			raw, err := json.MarshalIndent(genesis, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(conf.GenesisPath, raw, 0600)
		},
	}
}

func startCmd(home *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the daemon and serve JSON-RPC requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(*home)
			if err != nil {
				return err
			}
			logger, err := newLogger(conf.Debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			application, err := openApp(conf, logger)
			if err != nil {
				return err
			}

			srv := NewServer(application, conf, logger)
			logger.Info("serving JSON-RPC",
				zap.String("addr", conf.ListenAddr),
				zap.String("chain_id", conf.ChainID),
				zap.String("version", Version),
			)
			return srv.Run()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openApp loads the store and assembles the application. A fresh store is
// initialized from the genesis file.
func openApp(conf Config, logger *zap.Logger) (*app.TandemApp, error) {
	db, err := bolt.Open(conf.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.LoadLatestVersion(); err != nil {
		return nil, err
	}

	control := funds.NewController(funds.NewWalletBucket())
	handler := app.Stack(app.Auth{}, control, guard.NewGuard())
	application := app.New(db, handler, app.TxDecoder, app.QueryRouter(), logger)

	if db.LatestVersion().Version == 0 {
		opts, err := loadGenesis(conf.GenesisPath)
		if err != nil {
			return nil, err
		}
		if err := application.InitChain(conf.ChainID, opts, funds.Initializer{}); err != nil {
			return nil, err
		}
		logger.Info("initialized chain from genesis",
			zap.String("genesis", conf.GenesisPath),
		)
	} else if err := application.WithChainID(conf.ChainID); err != nil {
		return nil, err
	}
	return application, nil
}

func loadGenesis(path string) (tandem.Options, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return tandem.Options{}, nil
	}
	if err != nil {
		return nil, err
	}
	var opts tandem.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, fmt.Errorf("parse genesis %s: %w", path, err)
	}
	return opts, nil
}
