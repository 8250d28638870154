package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/alakaboom20/MetaLand-Deeds/db/migrations"
	httpadapter "github.com/alakaboom20/MetaLand-Deeds/internal/adapter/http"
	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/land/static"
	metricsinmem "github.com/alakaboom20/MetaLand-Deeds/internal/adapter/metrics/inmemory"
	gormrepo "github.com/alakaboom20/MetaLand-Deeds/internal/adapter/repo/gorm"
	"github.com/alakaboom20/MetaLand-Deeds/internal/adapter/repo/memory"
	"github.com/alakaboom20/MetaLand-Deeds/internal/app/history"
	"github.com/alakaboom20/MetaLand-Deeds/internal/app/ports"
	"github.com/alakaboom20/MetaLand-Deeds/internal/app/registry"
	"github.com/alakaboom20/MetaLand-Deeds/internal/config"
	"github.com/alakaboom20/MetaLand-Deeds/internal/domain/chain"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:          "metaland-server",
		Short:        "Virtual land deed registry",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgFile)
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations to the postgres store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), cfgFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "metaland.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", path)
			return nil
		},
	})
	return root
}

func runServe(ctx context.Context, cfgFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	h, err := buildHandler(ctx, cfg, logger)
	if err != nil {
		logger.Error("build server", zap.Error(err))
		return err
	}

	s := server.Default(server.WithHostPorts(cfg.Server.Addr))
	h.RegisterRoutes(s)

	logger.Info("metaland server listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("store", cfg.Store.Driver),
	)
	s.Spin()
	return nil
}

func runMigrate(ctx context.Context, cfgFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires store.driver=%s, got %q", config.DriverPostgres, cfg.Store.Driver)
	}
	db, err := gormrepo.OpenPostgres(cfg.Store.DSN)
	if err != nil {
		return err
	}
	return gormrepo.ApplyMigrations(ctx, db, migrationsFS(cfg.Store.MigrationsDir))
}

func migrationsFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

type stores struct {
	tx      ports.TxManager
	deeds   ports.DeedRepository
	fees    ports.FeeLedger
	history ports.HistoryRepository
}

func buildStores(ctx context.Context, cfg config.Config) (stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := gormrepo.OpenPostgres(cfg.Store.DSN)
		if err != nil {
			return stores{}, err
		}
		if err := gormrepo.ApplyMigrations(ctx, db, migrationsFS(cfg.Store.MigrationsDir)); err != nil {
			return stores{}, err
		}
		return stores{
			tx:      gormrepo.NewTxManager(db),
			deeds:   gormrepo.NewDeedRepo(db),
			fees:    gormrepo.NewFeeLedger(db),
			history: gormrepo.NewHistoryRepo(db),
		}, nil
	default:
		store := memory.NewStore()
		return stores{
			tx:      memory.NewTxManager(store),
			deeds:   memory.NewDeedRepo(store),
			fees:    memory.NewFeeLedger(store),
			history: memory.NewHistoryRepo(store),
		}, nil
	}
}

func buildHandler(ctx context.Context, cfg config.Config, logger *zap.Logger) (httpadapter.Handler, error) {
	st, err := buildStores(ctx, cfg)
	if err != nil {
		return httpadapter.Handler{}, err
	}
	denied, err := static.ParseDenied(cfg.Registry.DeniedParcels)
	if err != nil {
		return httpadapter.Handler{}, err
	}
	clock := chain.NewClock(chain.ClockConfig{
		Genesis:       cfg.Chain.Genesis(),
		BlockInterval: cfg.Chain.BlockInterval(),
	})
	kpiRecorder := metricsinmem.NewRecorder()

	reg := registry.Registry{
		TxManager:   st.tx,
		Deeds:       st.deeds,
		Fees:        st.fees,
		History:     st.history,
		Land:        static.Verifier{Denied: denied},
		Metrics:     kpiRecorder,
		Logger:      logger.Named("registry"),
		BlockHeight: clock.Source(time.Now),
		Now:         time.Now,
	}
	if err := seedAuthority(ctx, reg, cfg.Registry.Authority, logger); err != nil {
		return httpadapter.Handler{}, err
	}

	return httpadapter.Handler{
		Registry:  reg,
		HistoryUC: history.UseCase{TxManager: st.tx, Events: st.history},
		KPI:       kpiRecorder,
	}, nil
}

// seedAuthority applies the configured authority unless the store already
// has one. A restart against a durable store keeps the stored authority.
func seedAuthority(ctx context.Context, reg registry.Registry, authority string, logger *zap.Logger) error {
	if authority == "" {
		return nil
	}
	settings, err := reg.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load registry settings: %w", err)
	}
	if settings.HasAuthority() {
		if settings.Authority != authority {
			logger.Warn("configured authority ignored, registry already has one",
				zap.String("configured", authority),
				zap.String("current", settings.Authority),
			)
		}
		return nil
	}
	if err := reg.SetAuthorityContract(ctx, authority); err != nil {
		return fmt.Errorf("set authority %q: %w", authority, err)
	}
	return nil
}
