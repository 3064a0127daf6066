package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "dropshadow",
	Short: "A sprite drop-shadow baking tool",
	Long: `Dropshadow synthesizes drop-shadow bitmaps from a sprite's alpha channel.

It projects the source alpha at a directional offset, softens it with a
separable Gaussian blur, and writes the baked shadow layer plus placement
metadata, or a composited preview image.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("presets-file", "presets.yaml", "Preset file path")

	// Shadow parameters, shared by bake, preview, and preset save.
	rootCmd.PersistentFlags().String("color", "#000000FF", "Shadow color as #RRGGBB or #RRGGBBAA")
	rootCmd.PersistentFlags().Float64("opacity", 0.6, "Shadow opacity (0..1)")
	rootCmd.PersistentFlags().Float64("angle", 135, "Shadow offset angle in degrees (0 = +x, increasing toward +y)")
	rootCmd.PersistentFlags().Float64("distance", 6, "Shadow offset distance in pixels")
	rootCmd.PersistentFlags().Float64("spread", 0, "Shadow spread (0..1), hardens blurred edges")
	rootCmd.PersistentFlags().Int("blur-radius", 4, "Gaussian blur radius in pixels")
	rootCmd.PersistentFlags().Int("padding", 2, "Extra transparent padding around the canvas in pixels")
	rootCmd.PersistentFlags().String("preset", "", "Load shadow parameters from a named preset")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"verbose", "verbose"},
		{"presets.file", "presets-file"},
		{"shadow.color", "color"},
		{"shadow.opacity", "opacity"},
		{"shadow.angle", "angle"},
		{"shadow.distance", "distance"},
		{"shadow.spread", "spread"},
		{"shadow.blur_radius", "blur-radius"},
		{"shadow.padding", "padding"},
		{"shadow.preset", "preset"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, rootCmd.PersistentFlags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("DROPSHADOW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
