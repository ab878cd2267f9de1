// cmd/tools/kb-registry/main.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"candidate-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var path string

	root := &cobra.Command{
		Use:           "kb-registry",
		Short:         "Maintain the candidate normalization knowledge base",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.PersistentFlags().StringVar(&path, "path", "configs/knowledge_base.json", "Path to knowledge base file")

	root.AddCommand(
		newValidateCmd(&path),
		newAddVariantCmd(&path),
		newStatsCmd(&path),
		newExportCmd(&path),
	)
	return root
}

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the file against the schema and for conflicting variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return fmt.Errorf("knowledge base validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Knowledge base %s is valid.\n", reg.Version())
			return nil
		},
	}
}

func newAddVariantCmd(path *string) *cobra.Command {
	var field, canonical, variant string

	cmd := &cobra.Command{
		Use:   "add-variant",
		Short: "Add a spelling variant to an existing canonical entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := registry.ReadKnowledgeBase(*path)
			if err != nil {
				return err
			}
			if err := addVariant(kb, registry.FieldType(field), canonical, variant); err != nil {
				return err
			}
			// Rebuilding catches a variant that collides with another entry.
			if _, err := registry.New(kb); err != nil {
				return err
			}

			kb.Version = bumpVersion(kb.Version)
			kb.LastUpdated = time.Now().UTC().Format(time.RFC3339)
			if err := registry.SaveKnowledgeBase(kb, *path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s variant %q to %q (version %s)\n", field, variant, canonical, kb.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "Field type: university, major, skill or location")
	cmd.Flags().StringVar(&canonical, "canonical", "", "Canonical name of the entry")
	cmd.Flags().StringVar(&variant, "variant", "", "Variant to add")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("canonical")
	_ = cmd.MarkFlagRequired("variant")
	return cmd
}

func newStatsCmd(path *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print entry and variant counts per field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(*path)
			if err != nil {
				return err
			}
			stats := collectStats(reg)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", stats.Version)
			for _, f := range stats.Fields {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s entries=%-4d variants=%-4d categories=%d\n", f.Field, f.Entries, f.Variants, f.Categories)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newExportCmd(path *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in knowledge base to --path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(*path); err == nil && !force {
				return fmt.Errorf("%s already exists, pass --force to overwrite", *path)
			}
			if err := registry.SaveKnowledgeBase(registry.DefaultKnowledgeBase(), *path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported knowledge base %s to %s\n", registry.DefaultVersion, *path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

var errEntryNotFound = errors.New("entry not found")

func addVariant(kb *registry.KnowledgeBase, field registry.FieldType, canonical, variant string) error {
	variant = strings.TrimSpace(variant)
	if variant == "" {
		return errors.New("variant must not be empty")
	}

	add := func(name string, variants *[]string) bool {
		if registry.Fold(name) != registry.Fold(canonical) {
			return false
		}
		if !slices.ContainsFunc(*variants, func(v string) bool { return registry.Fold(v) == registry.Fold(variant) }) {
			*variants = append(*variants, variant)
		}
		return true
	}

	switch field {
	case registry.FieldUniversity:
		for i := range kb.Universities {
			if add(kb.Universities[i].Canonical, &kb.Universities[i].Abbreviations) {
				return nil
			}
		}
	case registry.FieldMajor:
		for i := range kb.Majors {
			if add(kb.Majors[i].Canonical, &kb.Majors[i].Variants) {
				return nil
			}
		}
	case registry.FieldSkill:
		for i := range kb.Skills {
			if add(kb.Skills[i].Canonical, &kb.Skills[i].Variants) {
				return nil
			}
		}
	case registry.FieldLocation:
		for i := range kb.Locations {
			if add(kb.Locations[i].Canonical, &kb.Locations[i].Variants) {
				return nil
			}
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return fmt.Errorf("%w: %s %q", errEntryNotFound, field, canonical)
}

// bumpVersion increments the last dot-separated number, so "2026.10.1"
// becomes "2026.10.2". Versions that do not end in a number gain ".1".
func bumpVersion(v string) string {
	i := strings.LastIndex(v, ".")
	if n, err := strconv.Atoi(v[i+1:]); err == nil {
		return v[:i+1] + strconv.Itoa(n+1)
	}
	return v + ".1"
}

type fieldStats struct {
	Field      registry.FieldType `json:"field"`
	Entries    int                `json:"entries"`
	Variants   int                `json:"variants"`
	Categories int                `json:"categories"`
}

type kbStats struct {
	Version string       `json:"version"`
	Fields  []fieldStats `json:"fields"`
}

func collectStats(reg *registry.Registry) kbStats {
	stats := kbStats{Version: reg.Version()}
	for _, field := range []registry.FieldType{
		registry.FieldUniversity, registry.FieldMajor, registry.FieldSkill, registry.FieldLocation,
	} {
		fs := fieldStats{Field: field}
		categories := map[string]struct{}{}
		for _, e := range reg.Entries(field) {
			fs.Entries++
			fs.Variants += len(e.Variants)
			categories[e.Category] = struct{}{}
		}
		fs.Categories = len(categories)
		stats.Fields = append(stats.Fields, fs)
	}
	return stats
}
