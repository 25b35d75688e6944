// Command formctl drives the Certificate of Origin form pipeline from a
// terminal: fill fields, manage input materials, save and resume progress,
// validate, export a PDF, and submit to the ingestion gateway.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"originform/internal/form/export"
	"originform/internal/form/models"
	"originform/internal/form/progress"
	"originform/internal/form/session"
	"originform/internal/form/validate"
	"originform/internal/platform/config"
	platformredis "originform/internal/platform/redis"
)

var (
	flagRedisURL string
	flagScope    string
	flagEndpoint string
)

var rootCmd = &cobra.Command{
	Use:   "formctl",
	Short: "Fill, save, validate, export, and submit a Certificate of Origin form",
	Long: `formctl drives one Certificate of Origin application.

Progress is saved between invocations in a local state file, or in Redis when
--redis is given. Attachments are supplied at submit time; they are never part
of saved progress.`,
	SilenceUsage: true,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current form state as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, _, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(sess.Aggregate())
	},
}

var fillCmd = &cobra.Command{
	Use:   "fill <patch.json>",
	Short: "Apply a partial field update and save progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, store, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		var patch models.FieldPatch
		if err := readJSONFile(args[0], &patch); err != nil {
			return err
		}
		if err := sess.ApplyFieldPatch(patch); err != nil {
			return err
		}
		return store.Save(cmd.Context(), sess.Aggregate())
	},
}

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Manage the input materials schedule",
}

var materialAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an empty input material row",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, store, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		sess.AppendMaterial()
		return store.Save(cmd.Context(), sess.Aggregate())
	},
}

var materialSetCmd = &cobra.Command{
	Use:   "set <index> <patch.json>",
	Short: "Apply a partial update to one input material",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, store, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		var patch models.MaterialPatch
		if err := readJSONFile(args[1], &patch); err != nil {
			return err
		}
		if err := sess.UpdateMaterialAt(index, patch); err != nil {
			return err
		}
		return store.Save(cmd.Context(), sess.Aggregate())
	},
}

var materialCountryCmd = &cobra.Command{
	Use:   "country <index> <country>",
	Short: "Set a material's country of origin (recomputes the certificate flag)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, store, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := sess.SetCountryOfOrigin(index, args[1]); err != nil {
			return err
		}
		m := sess.Aggregate().InputMaterials[index]
		if m.CertificateRequired {
			fmt.Fprintln(os.Stderr, "note: a supplier certificate of origin is required for this material")
		}
		return store.Save(cmd.Context(), sess.Aggregate())
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the pre-submission checks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, _, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		if err := validate.Check(sess.Aggregate()); err != nil {
			return err
		}
		fmt.Println("form is ready to submit")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <out.pdf>",
	Short: "Render the current form as a certificate PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, _, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return export.Certificate(sess.Aggregate(), f)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard saved progress",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, store, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		store.Clear(cmd.Context())
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagRedisURL, "redis", "", "Redis URL for saved progress (default: local state file)")
	rootCmd.PersistentFlags().StringVar(&flagScope, "scope", "local", "progress namespace, e.g. an applicant identifier")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "http://localhost:8080/api/submissions", "ingestion gateway URL")

	materialCmd.AddCommand(materialAddCmd, materialSetCmd, materialCountryCmd)
	rootCmd.AddCommand(showCmd, fillCmd, materialCmd, validateCmd, exportCmd, submitCmd, clearCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadSession builds the progress store for the selected backend and restores
// the saved aggregate, falling back to defaults.
func loadSession(ctx context.Context) (*session.Session, *progress.Store, error) {
	kv, err := buildKV()
	if err != nil {
		return nil, nil, err
	}
	store := progress.New(kv)
	agg, savedAt, err := store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if agg != nil && !savedAt.IsZero() {
		fmt.Fprintf(os.Stderr, "resuming progress saved at %s\n", savedAt.Format(time.RFC3339))
	}
	return session.Restore(agg), store, nil
}

func buildKV() (progress.KV, error) {
	if flagRedisURL == "" {
		return newFileKV(flagScope)
	}
	client, err := platformredis.New(config.RedisConfig{
		URL:          flagRedisURL,
		PoolSize:     2,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return progress.NewRedisKV(client.Client, flagScope), nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func parseIndex(s string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(s, "%d", &index); err != nil {
		return 0, fmt.Errorf("invalid material index %q", s)
	}
	return index, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
