package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/azswag/clientgen/internal/codegen"
	javaemitter "github.com/azswag/clientgen/internal/emitter/javaemitter"
	genspec "github.com/azswag/clientgen/internal/spec"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	SpecsRoot  string
	Operations []string
	Out        string
	Package    string
	ConfigPath string
	DryRun     bool
	Force      bool
	Verbose    bool
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile operations from a spec corpus into client sources",
		Long: "Compile the requested operation ids from a Swagger 2.0 spec tree into typed " +
			"client sources. Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  clientgen generate --specs-root ./specs --ops VirtualNetworkGateways_Get --out ./out
  clientgen --config config.yaml generate --force --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.String("specs-root", "", "Root directory of the Swagger spec corpus")
	flags.StringSlice("ops", nil, "Operation ids to compile (repeatable or comma-separated)")
	flags.String("out", "", "Output directory for generated sources")
	flags.String("package", "", "Target package/namespace for generated sources")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing output when set")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := GenerateConfig{}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}
	if verbose, err := cmd.Flags().GetBool("verbose"); err == nil && verbose {
		cfg.Verbose = true
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	if flags.Changed("specs-root") {
		value, err := flags.GetString("specs-root")
		if err != nil {
			return err
		}
		cfg.SpecsRoot = strings.TrimSpace(value)
	}
	if flags.Changed("ops") {
		value, err := flags.GetStringSlice("ops")
		if err != nil {
			return err
		}
		cfg.Operations = sanitizeList(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("package") {
		value, err := flags.GetString("package")
		if err != nil {
			return err
		}
		cfg.Package = strings.TrimSpace(value)
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("force") {
		value, err := flags.GetBool("force")
		if err != nil {
			return err
		}
		cfg.Force = value
	}
	return nil
}

func (c *GenerateConfig) normalize() {
	c.SpecsRoot = strings.TrimSpace(c.SpecsRoot)
	c.Out = strings.TrimSpace(c.Out)
	c.Package = strings.TrimSpace(c.Package)
	c.Operations = sanitizeList(c.Operations)
}

func (c *GenerateConfig) validate() error {
	if c.SpecsRoot == "" {
		return newUsageError("generate: --specs-root is required (set via flag or config file)")
	}
	if len(c.Operations) == 0 {
		return newUsageError("generate: --ops is required (set via flag or config file)")
	}
	if c.Out == "" {
		return newUsageError("generate: --out is required (set via flag or config file)")
	}
	return nil
}

func runGenerate(cfg *GenerateConfig, stdout, stderr io.Writer) error {
	idx, err := genspec.Load(cfg.SpecsRoot, genspec.WithWarnWriter(stderr))
	if err != nil {
		return wrapCorpusError(err)
	}

	gen := codegen.New(idx, codegen.WithWarnWriter(stderr))
	res, err := gen.Generate(cfg.Operations)
	if err != nil {
		return wrapCorpusError(err)
	}
	if len(res.Operations) == 0 {
		return newUsageError(fmt.Sprintf("generate: none of the requested operations produced a method (missing or non-GET: %s)", strings.Join(res.Missing, ", ")))
	}

	emitted, err := javaemitter.Emit(res, javaemitter.Options{
		OutDir:  cfg.Out,
		Package: cfg.Package,
		Force:   cfg.Force,
		DryRun:  cfg.DryRun,
	})
	if err != nil {
		return wrapOutputError(err, cfg.Out)
	}

	absOut := cfg.Out
	if ap, aerr := filepath.Abs(cfg.Out); aerr == nil {
		absOut = ap
	}
	if cfg.DryRun {
		fmt.Fprintf(stdout, "Planned writes to %s (%d files):\n", absOut, len(emitted.Planned))
		for _, p := range emitted.Planned {
			fmt.Fprintf(stdout, "- %s\n", p.RelPath)
		}
	} else if cfg.Verbose {
		fmt.Fprintf(stdout, "Wrote %d files to %s (%d methods, %d types)\n", len(emitted.Planned), absOut, len(res.Operations), len(res.Types))
	}
	return nil
}

func wrapCorpusError(err error) error {
	var ce *genspec.CorpusError
	if errors.As(err, &ce) {
		msg := fmt.Sprintf("%s: %s", ce.Code, ce.Message)
		if ce.File != "" && !strings.Contains(ce.Message, ce.File) {
			msg = fmt.Sprintf("%s\nFile: %s", msg, ce.File)
		}
		return newUsageError(msg)
	}
	return err
}

func wrapOutputError(err error, outDir string) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "output directory") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", outDir, msg))
	}
	return err
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		switch normalizeKey(key) {
		case "specsroot":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.SpecsRoot = str
		case "ops", "operations":
			list, err := valueAsStringSlice(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Operations = sanitizeList(list)
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "package":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Package = str
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "force":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Force = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}
	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsStringSlice(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return splitAndTrim(val), nil
	case []any:
		items := make([]string, 0, len(val))
		for idx, elem := range val {
			str, err := valueAsString(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			if str != "" {
				items = append(items, str)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected string or list, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func sanitizeList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range splitAndTrim(item) {
			if _, exists := seen[part]; exists {
				continue
			}
			seen[part] = struct{}{}
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
