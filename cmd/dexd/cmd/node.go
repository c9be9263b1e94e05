package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simpledex/simpledex/app"
	"github.com/simpledex/simpledex/config"
)

const dbName = "application"

// nodeContext is what the node commands share: home, merged config and a
// logger built from it.
type nodeContext struct {
	home   string
	config *config.Config
	logger log.Logger
}

// loadNodeContext reads the config under --home and applies flag overrides.
func loadNodeContext(cmd *cobra.Command) (*nodeContext, error) {
	home, err := cmd.Flags().GetString(FlagHome)
	if err != nil {
		return nil, err
	}

	v := config.NewViper()
	if err := bindFlags(v, cmd, map[string]string{
		"log.level":  FlagLogLevel,
		"log.format": FlagLogFormat,
	}); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v, home)
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return &nodeContext{home: home, config: cfg, logger: logger}, nil
}

// bindFlags binds config keys to flags that were set explicitly.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// openApp opens the configured database and loads the latest version. The
// returned func closes both.
func (nc *nodeContext) openApp() (*app.DexApp, func() error, error) {
	backend := dbm.BackendType(nc.config.DB.Backend)
	dir := nc.config.DBPath(nc.home)
	if backend != dbm.MemDBBackend {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}

	db, err := dbm.NewDB(dbName, backend, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database in %s: %w", backend, dir, err)
	}

	dexApp, err := app.NewDexApp(nc.logger, db, app.Options{
		ChainID:         nc.config.App.ChainID,
		CheckInvariants: nc.config.App.InvariantCheck,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	closeFn := func() error {
		return errors.Join(dexApp.Close(), db.Close())
	}
	return dexApp, closeFn, nil
}

// initFromGenesis loads genesis.json into an empty ledger.
func (nc *nodeContext) initFromGenesis(dexApp *app.DexApp) error {
	if dexApp.LastBlockHeight() > 0 {
		return nil
	}

	path := filepath.Join(nc.home, config.ConfigDir, config.GenesisFile)
	doc, err := app.ReadGenesisFile(path)
	if err != nil {
		return fmt.Errorf("%w (run dexd init first)", err)
	}
	if doc.ChainID != "" && doc.ChainID != dexApp.ChainID() {
		return fmt.Errorf("genesis chain id %q does not match configured %q", doc.ChainID, dexApp.ChainID())
	}
	return dexApp.InitChain(doc.AppState)
}
