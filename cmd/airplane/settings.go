package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/PabloKostenko/airplane/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change music and sound",
	Long: `Print the stored settings, or change them with flags.

Examples:
  airplane settings
  airplane settings --music=false
  airplane settings --sound=true --music=true`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().Bool(settings.Music, true, "Enable background music")
	settingsCmd.Flags().Bool(settings.Sound, true, "Enable sound effects")
}

func runSettings(cmd *cobra.Command, _ []string) error {
	prefs, err := settings.Open(log.New(io.Discard))
	if err != nil {
		return err
	}

	changed := false
	for _, name := range []string{settings.Music, settings.Sound} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		on, err := cmd.Flags().GetBool(name)
		if err != nil {
			return err
		}
		if err := prefs.Set(name, on); err != nil {
			return err
		}
		changed = true
	}
	if changed {
		if err := prefs.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
	}

	v := prefs.Values()
	fmt.Printf("music: %s\n", onOff(v.MusicEnabled))
	fmt.Printf("sound: %s\n", onOff(v.SoundEnabled))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
