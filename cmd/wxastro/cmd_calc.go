package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrissnell/wxastro/pkg/lunar"
	"github.com/chrissnell/wxastro/pkg/riseset"
	"github.com/chrissnell/wxastro/pkg/site"
	"github.com/chrissnell/wxastro/pkg/solar"
	"github.com/chrissnell/wxastro/pkg/wxcalc"
)

var (
	timeStr string
	dateStr string
	sample  wxcalc.Sample
)

var derivedCmd = &cobra.Command{
	Use:   "derived",
	Short: "Compute derived weather quantities for one set of readings",
	RunE:  runDerived,
}

var solarCmd = &cobra.Command{
	Use:   "solar",
	Short: "Show the Sun's position",
	RunE:  runSolar,
}

var risesetCmd = &cobra.Command{
	Use:   "riseset",
	Short: "Show Sun and Moon rise, set and twilight times for a date",
	RunE:  runRiseSet,
}

var moonCmd = &cobra.Command{
	Use:   "moon",
	Short: "Show the moon phase",
	RunE:  runMoon,
}

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Verify the calculations against the built-in reference reading",
	RunE:  runSelfCheck,
}

func init() {
	for _, c := range []*cobra.Command{derivedCmd, solarCmd, moonCmd} {
		c.Flags().StringVarP(&timeStr, "time", "t", "", "time to calculate for (RFC 3339, default now)")
	}
	risesetCmd.Flags().StringVar(&dateStr, "date", "", "date to calculate for (YYYY-MM-DD, default today at the site)")

	derivedCmd.Flags().Float64Var(&sample.TempF, "temp", 0, "air temperature, °F")
	derivedCmd.Flags().Float64Var(&sample.Humidity, "humidity", 0, "relative humidity, %")
	derivedCmd.Flags().Float64Var(&sample.WindMph, "wind", 0, "wind speed, mph")
	derivedCmd.Flags().Float64Var(&sample.SolarWm2, "solar", 0, "solar radiation, W/m²")
	derivedCmd.Flags().Float64Var(&sample.PressureInHg, "pressure", 29.921, "barometric pressure, inHg")
	_ = derivedCmd.MarkFlagRequired("temp")
	_ = derivedCmd.MarkFlagRequired("humidity")

	for _, c := range []*cobra.Command{derivedCmd, solarCmd, risesetCmd, moonCmd, selfcheckCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")
		rootCmd.AddCommand(c)
	}
}

// localTime parses --time, or takes the current time, in site standard time.
func localTime(s site.Site) (time.Time, error) {
	if timeStr == "" {
		return s.LocalTime(time.Now()), nil
	}
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --time: %w", err)
	}
	return s.LocalTime(t), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runDerived(cmd *cobra.Command, args []string) error {
	s, err := loadSite(cmd)
	if err != nil {
		return err
	}
	t, err := localTime(s)
	if err != nil {
		return err
	}
	pos, err := solar.Compute(t, s)
	if err != nil {
		return err
	}
	d := wxcalc.Derive(sample, pos)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, d)
	}
	fmt.Fprintf(out, "Derived quantities at %s for %s\n", t.Format(time.RFC3339), s)
	fmt.Fprintf(out, "  Wind chill:     %.1f °F\n", d.WindChill)
	fmt.Fprintf(out, "  Heat index:     %.1f °F\n", d.HeatIndex)
	fmt.Fprintf(out, "  Dew point:      %.1f °F\n", d.DewPoint)
	fmt.Fprintf(out, "  Wet bulb:       %.1f °F\n", d.WetBulb)
	fmt.Fprintf(out, "  THW:            %.1f °F\n", d.THW)
	fmt.Fprintf(out, "  THSW:           %.1f °F\n", d.THSW)
	fmt.Fprintf(out, "  ET (hourly):    %.4f in\n", d.ReferenceET)
	fmt.Fprintf(out, "  Wind component: %d\n", d.WindComponent)
	return nil
}

func runSolar(cmd *cobra.Command, args []string) error {
	s, err := loadSite(cmd)
	if err != nil {
		return err
	}
	t, err := localTime(s)
	if err != nil {
		return err
	}
	pos, err := solar.Compute(t, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, pos)
	}
	fmt.Fprintf(out, "Solar position at %s for %s\n", t.Format(time.RFC3339), s)
	fmt.Fprintf(out, "  Elevation:        %.2f°\n", pos.SolarElevationDeg)
	fmt.Fprintf(out, "  Azimuth:          %.2f°\n", pos.AzimuthDeg)
	fmt.Fprintf(out, "  Declination:      %.3f°\n", pos.DeclinationDeg)
	fmt.Fprintf(out, "  Equation of time: %.2f min\n", pos.EquationOfTimeMin)
	fmt.Fprintf(out, "  Solar noon:      %s\n", riseset.FormatHour(pos.SolarNoon*24))
	fmt.Fprintf(out, "  Sunrise:         %s\n", riseset.FormatHour(pos.Sunrise*24))
	fmt.Fprintf(out, "  Sunset:          %s\n", riseset.FormatHour(pos.Sunset*24))
	fmt.Fprintf(out, "  Clear sky:        %.0f W/m² (Ineichen-Perez %.0f W/m²)\n", pos.ClearSkyWm2, pos.ClearSkyIneichenWm2)
	return nil
}

func runRiseSet(cmd *cobra.Command, args []string) error {
	s, err := loadSite(cmd)
	if err != nil {
		return err
	}

	d := s.LocalTime(time.Now())
	if dateStr != "" {
		if d, err = time.Parse(time.DateOnly, dateStr); err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
	}

	r, err := riseset.CalculateDate(d, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, r)
	}
	fmt.Fprintf(out, "Rise and set for %s at %s (UTC%+d)\n", d.Format(time.DateOnly), s, s.TZOffsetHours)
	rows := []struct {
		name      string
		rise, set riseset.Event
	}{
		{"Sun", r.Sunrise, r.Sunset},
		{"Civil twilight", r.CivilDawn, r.CivilDusk},
		{"Nautical twilight", r.NauticalDawn, r.NauticalDusk},
		{"Astronomical", r.AstroDawn, r.AstroDusk},
		{"Moon", r.Moonrise, r.Moonset},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %-18s %-12s %s\n", row.name, row.rise, row.set)
	}
	fmt.Fprintf(out, "  Daylight:          %.2f h\n", r.DaylightHours)
	return nil
}

func runMoon(cmd *cobra.Command, args []string) error {
	t := time.Now().UTC()
	if timeStr != "" {
		var err error
		if t, err = time.Parse(time.RFC3339, timeStr); err != nil {
			return fmt.Errorf("parsing --time: %w", err)
		}
	}

	phase := lunar.Calculate(t)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, phase)
	}
	fmt.Fprintf(out, "Moon Phase for %s\n", t.Format(time.RFC3339))
	fmt.Fprintf(out, "  Day:          %d\n", phase.Index)
	fmt.Fprintf(out, "  Phase Name:   %s\n", phase.Phase)
	fmt.Fprintf(out, "  Illumination: %.1f%%\n", phase.Illumination*100)
	fmt.Fprintf(out, "  Age:          %.1f days\n", phase.AgeDays)
	if phase.IsWaxing {
		fmt.Fprintf(out, "  Direction:    Waxing\n")
	} else {
		fmt.Fprintf(out, "  Direction:    Waning\n")
	}
	return nil
}

func runSelfCheck(cmd *cobra.Command, args []string) error {
	results, err := wxcalc.SelfCheck()

	out := cmd.OutOrStdout()
	if jsonOutput {
		if perr := printJSON(out, results); perr != nil {
			return perr
		}
		return err
	}
	for _, r := range results {
		status := "ok"
		if !r.OK {
			status = "FAIL"
		}
		fmt.Fprintf(out, "  %-13s %12.6f  expected %12.6f  %s\n", r.Name, r.Got, r.Expected, status)
	}
	return err
}
