// Command rill is a thin CLI driver over the runtime packages (driver,
// rtctx, eval). Since the lexer and recursive-descent parser are
// non-goals of the runtime itself (spec.md §1), rill run/watch accept a
// pre-parsed AST encoded as JSON (see astdecode.go) rather than Rill
// source text directly.
//
// Grounded on cli/main.go's cobra root command and flag set, trimmed of
// the secret-scrubbing stdout lockdown (that's specific to the shell
// decorator's dry-run/debug planning, which has no analogue here) and
// retargeted at driver.Execute instead of executor.Execute.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opal-lang/rill/builtins"
	"github.com/opal-lang/rill/driver"
	"github.com/opal-lang/rill/extension"
	"github.com/opal-lang/rill/frontmatter"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

var noColor bool

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorize(fmt.Sprintf("Error: %v", err), colorRed, shouldUseColor(noColor)))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rill",
		Short: "Run Rill pipe scripts against a pre-parsed AST",
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized error output")
	root.AddCommand(newRunCmd(), newWatchCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var astFile, frontmatterFile, loadSnapshotFile, saveSnapshotFile string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a script once and print its result",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runOnce(astFile, frontmatterFile, loadSnapshotFile)
			if err != nil {
				return err
			}
			fmt.Println(value.FormatValue(result.Value))
			if saveSnapshotFile != "" {
				if err := saveSnapshot(saveSnapshotFile, result.Variables); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&astFile, "ast", "a", "", "path to the script's pre-parsed AST (JSON)")
	cmd.Flags().StringVarP(&frontmatterFile, "frontmatter", "m", "", "optional YAML-frontmatter-delimited config/body file")
	cmd.Flags().StringVar(&loadSnapshotFile, "load-snapshot", "", "seed initial variables from a prior run's canonical CBOR snapshot")
	cmd.Flags().StringVar(&saveSnapshotFile, "save-snapshot", "", "write the final variables to this path as canonical CBOR, for resuming a later session")
	_ = cmd.MarkFlagRequired("ast")
	return cmd
}

// saveSnapshot persists a script's final variables via value.EncodeSnapshot
// so a host can restore them into a later rtctx.Config.Variables without
// re-running the script that produced them.
func saveSnapshot(path string, vars map[string]value.Value) error {
	data, err := value.EncodeSnapshot(vars)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

// loadSnapshot reads a prior saveSnapshot file back via value.DecodeSnapshot.
func loadSnapshot(path string) (map[string]value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	vars, err := value.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return vars, nil
}

func newWatchCmd() *cobra.Command {
	var astFile, frontmatterFile, loadSnapshotFile string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a script each time its AST or frontmatter file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return watch(astFile, frontmatterFile, loadSnapshotFile)
		},
	}
	cmd.Flags().StringVarP(&astFile, "ast", "a", "", "path to the script's pre-parsed AST (JSON)")
	cmd.Flags().StringVarP(&frontmatterFile, "frontmatter", "m", "", "optional YAML-frontmatter-delimited config/body file")
	cmd.Flags().StringVar(&loadSnapshotFile, "load-snapshot", "", "seed initial variables from a prior run's canonical CBOR snapshot")
	_ = cmd.MarkFlagRequired("ast")
	return cmd
}

func runOnce(astFile, frontmatterFile, loadSnapshotFile string) (driver.Result, error) {
	astBytes, err := os.ReadFile(astFile)
	if err != nil {
		return driver.Result{}, fmt.Errorf("reading ast file: %w", err)
	}
	script, err := DecodeScript(json.RawMessage(astBytes))
	if err != nil {
		return driver.Result{}, fmt.Errorf("decoding ast: %w", err)
	}

	cfg := rtctx.Config{
		Callbacks: rtctx.Callbacks{OnLog: func(v value.Value) {
			fmt.Fprintln(os.Stderr, value.FormatValue(v))
		}},
	}

	if loadSnapshotFile != "" {
		vars, err := loadSnapshot(loadSnapshotFile)
		if err != nil {
			return driver.Result{}, err
		}
		cfg.Variables = vars
	}

	if frontmatterFile != "" {
		raw, err := os.ReadFile(frontmatterFile)
		if err != nil {
			return driver.Result{}, fmt.Errorf("reading frontmatter file: %w", err)
		}
		doc, err := frontmatter.Parse(string(raw))
		if err != nil {
			return driver.Result{}, fmt.Errorf("parsing frontmatter: %w", err)
		}
		cfg.TimeoutMS = doc.Config.TimeoutMS
		cfg.AutoExceptions = doc.Config.AutoExceptions
		for name, v := range doc.Config.RuntimeVariables() {
			if cfg.Variables == nil {
				cfg.Variables = make(map[string]value.Value)
			}
			cfg.Variables[name] = v
		}
	}

	extensions := extension.NewRegistry()
	cfg.Functions = mergeFunctions(builtins.Functions(), extensions.Functions())
	cfg.Methods = mergeFunctions(builtins.Methods(), extensions.Methods())

	ctx, err := rtctx.New(cfg)
	if err != nil {
		return driver.Result{}, fmt.Errorf("building runtime context: %w", err)
	}

	return driver.Execute(script, ctx)
}

// mergeFunctions implements spec §6's override rule for the "merged"
// side of the table: an entry in overrides replaces a same-named entry in
// base.
func mergeFunctions(base, overrides map[string]*value.Callable) map[string]*value.Callable {
	out := make(map[string]*value.Callable, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
