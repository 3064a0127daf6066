package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/dropshadow/internal/preset"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named shadow parameter presets",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current shadow parameters as a named preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetSave,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetDelete,
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetSaveCmd, presetListCmd, presetDeleteCmd)
}

func openPresetStore() (*preset.Store, error) {
	return preset.Open(viper.GetString("presets.file"))
}

func runPresetSave(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	store, err := openPresetStore()
	if err != nil {
		return err
	}
	if err := store.Save(args[0], params); err != nil {
		return err
	}

	logger.Info("Preset saved", "name", args[0], "file", viper.GetString("presets.file"))
	return nil
}

func runPresetList(cmd *cobra.Command, args []string) error {
	store, err := openPresetStore()
	if err != nil {
		return err
	}

	names := store.List()
	if len(names) == 0 {
		fmt.Println("no presets stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tANGLE\tDISTANCE\tBLUR\tSPREAD\tOPACITY")
	for _, name := range names {
		p, err := store.Load(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%g\t%g\n",
			name, p.AngleDegrees, p.DistancePixels, p.BlurRadius, p.Spread, p.Opacity)
	}
	return w.Flush()
}

func runPresetDelete(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	store, err := openPresetStore()
	if err != nil {
		return err
	}
	if err := store.Delete(args[0]); err != nil {
		return err
	}

	logger.Info("Preset deleted", "name", args[0])
	return nil
}
