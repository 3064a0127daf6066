package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/dropshadow/internal/pixbuf"
	"github.com/MeKo-Tech/dropshadow/internal/preset"
	"github.com/MeKo-Tech/dropshadow/internal/shadow"
)

// parseHexColor parses #RRGGBB or #RRGGBBAA (leading # optional) into a
// normalized color. A missing alpha component means fully opaque.
func parseHexColor(s string) (pixbuf.RGBA, error) {
	hexStr := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hexStr) != 6 && len(hexStr) != 8 {
		return pixbuf.RGBA{}, fmt.Errorf("color must be RRGGBB or RRGGBBAA, got %q", s)
	}

	channel := func(i int) (float64, error) {
		v, err := strconv.ParseUint(hexStr[i:i+2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid color component in %q: %w", s, err)
		}
		return float64(v) / 255.0, nil
	}

	r, err := channel(0)
	if err != nil {
		return pixbuf.RGBA{}, err
	}
	g, err := channel(2)
	if err != nil {
		return pixbuf.RGBA{}, err
	}
	b, err := channel(4)
	if err != nil {
		return pixbuf.RGBA{}, err
	}

	a := 1.0
	if len(hexStr) == 8 {
		a, err = channel(6)
		if err != nil {
			return pixbuf.RGBA{}, err
		}
	}

	return pixbuf.RGBA{R: r, G: g, B: b, A: a}, nil
}

// resolveParams assembles the shadow parameters for a command invocation.
// A named preset (when given) supplies the base values; any flag the user set
// explicitly overrides the preset field.
func resolveParams(cmd *cobra.Command) (shadow.Params, error) {
	params := shadow.DefaultParams()

	if name := viper.GetString("shadow.preset"); name != "" {
		store, err := preset.Open(viper.GetString("presets.file"))
		if err != nil {
			return shadow.Params{}, err
		}
		params, err = store.Load(name)
		if err != nil {
			return shadow.Params{}, err
		}
	}

	flags := cmd.Root().PersistentFlags()
	presetLoaded := viper.GetString("shadow.preset") != ""

	apply := func(flag string, set func()) {
		if !presetLoaded || flags.Changed(flag) {
			set()
		}
	}

	var colorErr error
	apply("color", func() {
		c, err := parseHexColor(viper.GetString("shadow.color"))
		if err != nil {
			colorErr = err
			return
		}
		params.Color = c
	})
	if colorErr != nil {
		return shadow.Params{}, colorErr
	}

	apply("opacity", func() { params.Opacity = viper.GetFloat64("shadow.opacity") })
	apply("angle", func() { params.AngleDegrees = viper.GetFloat64("shadow.angle") })
	apply("distance", func() { params.DistancePixels = viper.GetFloat64("shadow.distance") })
	apply("spread", func() { params.Spread = viper.GetFloat64("shadow.spread") })
	apply("blur-radius", func() { params.BlurRadius = viper.GetInt("shadow.blur_radius") })
	apply("padding", func() { params.Padding = viper.GetInt("shadow.padding") })

	if err := params.Validate(); err != nil {
		return shadow.Params{}, err
	}

	return params, nil
}
