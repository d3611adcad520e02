package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcalmvr/sub-assistant-sub001/core/guards"
	"github.com/lcalmvr/sub-assistant-sub001/core/output"
	"github.com/lcalmvr/sub-assistant-sub001/core/quote"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
)

var outputFormat string

func init() {
	recalculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (pretty, json)")
}

// loadTower reads and decodes a tower file through the quote boundary,
// so legacy role-less payloads work from the CLI too.
func loadTower(path string) (tower.Tower, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tower.Tower{}, fmt.Errorf("reading tower file: %w", err)
	}
	cfg := config.Get()
	dec := quote.NewDecoder(cfg.Carrier.OwnMarker, cfg.Tower.DefaultRetention)
	return dec.DecodeTower(data)
}

// recalculateCmd recomputes every derived quantity of a tower
var recalculateCmd = &cobra.Command{
	Use:   "recalculate <tower.json>",
	Short: "Recompute attachments, rates and the option name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTower(args[0])
		if err != nil {
			return err
		}

		format := output.Format(outputFormat)
		if outputFormat == "" {
			format = output.Format(config.Get().Output.DefaultFormat)
		}
		return output.Render(os.Stdout, t, format)
	},
}

// nameCmd prints the canonical option name
var nameCmd = &cobra.Command{
	Use:   "name <tower.json>",
	Short: "Print the canonical option name for a tower",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTower(args[0])
		if err != nil {
			return err
		}
		fmt.Println(t.Name)
		return nil
	},
}

// validateCmd checks a persisted tower against the engine invariants
// without recomputing it first, so stale derived fields are reported.
var validateCmd = &cobra.Command{
	Use:   "validate <tower.json>",
	Short: "Check a persisted tower against the engine invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading tower file: %w", err)
		}
		var t tower.Tower
		if err := unmarshalStrict(data, &t); err != nil {
			return err
		}
		if err := guards.Check(t); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

// unmarshalStrict rejects unknown fields so typos in hand-edited tower
// files surface instead of silently dropping data.
func unmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
