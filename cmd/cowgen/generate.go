package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/cowgen"
	"github.com/syssam/cowgen/compiler/gen"
	"github.com/syssam/cowgen/compiler/load"
)

// fileConfig is the YAML shape of --config: the same options the flags
// cover, plus the generated-name overrides that have no flag.
type fileConfig struct {
	Target          string   `yaml:"target"`
	Package         string   `yaml:"package"`
	Header          string   `yaml:"header"`
	UpdateInterface string   `yaml:"updateInterface"`
	CloneMethod     string   `yaml:"cloneMethod"`
	TrackerBase     string   `yaml:"trackerBase"`
	SetMethod       string   `yaml:"setMethod"`
	Imports         []string `yaml:"imports"`
}

func generateCmd() *cobra.Command {
	var (
		configPath string
		target     string
		pkg        string
		header     string
		imports    []string
		workers    int
		watch      bool
	)
	cmd := &cobra.Command{
		Use:   "generate <schema-dir>",
		Short: "Generate artifacts for every entity document under schema-dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []gen.Option
			if configPath != "" {
				fileOpts, err := loadFileConfig(configPath)
				if err != nil {
					return err
				}
				opts = append(opts, fileOpts...)
			}
			// Flags override the config file.
			if cmd.Flags().Changed("target") {
				opts = append(opts, gen.WithTarget(target))
			}
			if cmd.Flags().Changed("package") {
				opts = append(opts, gen.WithPackage(pkg))
			}
			if cmd.Flags().Changed("header") {
				opts = append(opts, gen.WithHeader(header))
			}
			if len(imports) > 0 {
				opts = append(opts, gen.WithImports(imports...))
			}

			cfg, err := gen.NewConfig(opts...)
			if err != nil {
				return err
			}
			if cfg.Package == "" {
				return errors.New("output package not set; pass --package or set it in --config")
			}
			if cfg.Target == "" {
				cfg.Target = target
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			schemaDir := args[0]
			cache := cowgen.NewFingerprintCache()
			if err := generate(ctx, schemaDir, cfg, cache, workers); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchSchemas(ctx, schemaDir, cfg, cache, workers)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file holding generation options")
	cmd.Flags().StringVarP(&target, "target", "t", "./gen", "output directory for generated files")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "import path of the output package")
	cmd.Flags().StringVar(&header, "header", "", "override the generated file header comment")
	cmd.Flags().StringSliceVar(&imports, "import", nil, "implicit import added to every generated file")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel generation workers (0 means GOMAXPROCS)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when schema documents change")
	return cmd
}

// loadFileConfig turns a YAML options file into gen options, skipping
// omitted entries so the documented defaults still apply.
func loadFileConfig(path string) ([]gen.Option, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("cowgen: parse %s: %w", path, err)
	}
	var opts []gen.Option
	if fc.Target != "" {
		opts = append(opts, gen.WithTarget(fc.Target))
	}
	if fc.Package != "" {
		opts = append(opts, gen.WithPackage(fc.Package))
	}
	if fc.Header != "" {
		opts = append(opts, gen.WithHeader(fc.Header))
	}
	if fc.UpdateInterface != "" {
		opts = append(opts, gen.WithUpdateInterface(fc.UpdateInterface))
	}
	if fc.CloneMethod != "" {
		opts = append(opts, gen.WithCloneMethod(fc.CloneMethod))
	}
	if fc.TrackerBase != "" {
		opts = append(opts, gen.WithTrackerBase(fc.TrackerBase))
	}
	if fc.SetMethod != "" {
		opts = append(opts, gen.WithSetMethod(fc.SetMethod))
	}
	if len(fc.Imports) > 0 {
		opts = append(opts, gen.WithImports(fc.Imports...))
	}
	return opts, nil
}

// generate runs one full pass over the schema directory. The fingerprint
// cache carries over between passes so unchanged entities are skipped.
func generate(ctx context.Context, schemaDir string, cfg *gen.Config, cache *cowgen.FingerprintCache, workers int) error {
	descs, skipped, err := load.LoadDir(schemaDir)
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(skipped))
	for p := range skipped {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		cfg.Warnf("cowgen: skipping %s: %v", p, skipped[p])
	}
	graph, err := gen.NewGraph(cfg, descs...)
	if err != nil {
		return err
	}
	return gen.NewGenerator(graph, cfg.Target).
		WithPackage(filepath.Base(cfg.Package)).
		WithWorkers(workers).
		WithCache(cache).
		Generate(ctx)
}

// watchSchemas regenerates on every schema document change until the
// context is canceled. A failed pass logs and keeps watching; the next
// edit gets another chance.
func watchSchemas(ctx context.Context, schemaDir string, cfg *gen.Config, cache *cowgen.FingerprintCache, workers int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(schemaDir); err != nil {
		return err
	}
	log.Printf("cowgen: watching %s", schemaDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !schemaDocument(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			log.Printf("cowgen: %s changed, regenerating", filepath.Base(ev.Name))
			if err := generate(ctx, schemaDir, cfg, cache, workers); err != nil {
				log.Printf("cowgen: generation failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("cowgen: watch error: %v", err)
		}
	}
}

func schemaDocument(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
