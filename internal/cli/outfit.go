package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	styleai "github.com/styleai/styleai-go"
	"github.com/styleai/styleai-go/refdata"
)

func outfitRequestFlags(cmd *cobra.Command, req *styleai.OutfitRequest) {
	cmd.Flags().StringVar(&req.Occasion, "occasion", "", "occasion (e.g. Wedding, Work, Beach)")
	cmd.Flags().StringVar(&req.Country, "country", "", "ISO country code (see: styleai countries)")
	cmd.Flags().StringVar(&req.Region, "state", "", "state or region")
	cmd.Flags().StringVar(&req.TargetDate, "date", "", "target date YYYY-MM-DD (default today)")
}

func printWeather(cmd *cobra.Command, w *styleai.WeatherPreview) {
	if w == nil {
		return
	}
	cmd.Printf("Weather: %s, %.1f°C (%.1f–%.1f)\n", w.Condition, w.TemperatureAvg, w.TemperatureMin, w.TemperatureMax)
	if w.Warning != "" {
		cmd.Printf("Note: %s\n", w.Warning)
	}
}

func newGenerateCmd(app *App) *cobra.Command {
	var req styleai.OutfitRequest

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new outfit for an occasion and location",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			o := styleai.NewOrchestrator(c, nil)
			if verr := o.Validate(req, styleai.VariantGenerate); verr != nil {
				return verr
			}
			st := o.Generate(cmd.Context(), req)
			if st.Phase != styleai.PhaseCompleted {
				return fmt.Errorf("%s", st.Message)
			}
			printWeather(cmd, st.Weather)
			cmd.Printf("Top:    %s\n", st.Outfit.TopDescription)
			cmd.Printf("Bottom: %s\n", st.Outfit.BottomDescription)
			if st.Outfit.ImageURL != "" {
				cmd.Printf("Image:  %s\n", st.Outfit.ImageURL)
			}
			return nil
		},
	}
	outfitRequestFlags(cmd, &req)
	return cmd
}

func newSuggestCmd(app *App) *cobra.Command {
	var req styleai.OutfitRequest

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Assemble an outfit from your own wardrobe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			ws := styleai.NewWardrobeStore(c)
			if err := ws.Load(cmd.Context()); err != nil {
				return err
			}
			o := styleai.NewOrchestrator(c, ws)
			if verr := o.Validate(req, styleai.VariantSuggest); verr != nil {
				return verr
			}
			st := o.Suggest(cmd.Context(), req)
			if st.Phase != styleai.PhaseCompleted {
				return fmt.Errorf("%s", st.Message)
			}
			printWeather(cmd, st.Weather)
			if st.Suggestion.Suggestion != "" {
				cmd.Println(st.Suggestion.Suggestion)
			}
			for _, it := range st.Suggestion.SelectedItems {
				cmd.Printf("  [%d] %-12s %s\n", it.ID, it.Category, it.ImageURL)
			}
			return nil
		},
	}
	outfitRequestFlags(cmd, &req)
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past outfit requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client()
			if err != nil {
				return err
			}
			hv := styleai.NewHistoryViewer(c)
			if err := hv.Load(cmd.Context()); err != nil {
				return err
			}
			recs := hv.Records()
			if len(recs) == 0 {
				cmd.Println("No past outfits yet.")
				return nil
			}
			for _, r := range recs {
				cmd.Printf("%4d  %-12s %-20s %s\n", r.ID, r.Occasion, r.Location.State, r.TargetDate)
			}
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one past outfit in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			c, err := app.Client()
			if err != nil {
				return err
			}
			rec, err := styleai.NewDetailViewer(c).Load(cmd.Context(), id)
			if err != nil {
				return err
			}
			if rec == nil {
				cmd.Println("Sign in first: styleai login")
				return nil
			}
			cmd.Printf("Occasion: %s\n", rec.Occasion)
			cmd.Printf("Where:    %s, %s\n", rec.Location.State, refdata.CountryName(rec.Location.Country))
			cmd.Printf("When:     %s\n", rec.TargetDate)
			printWeather(cmd, &rec.Weather)
			if rec.GeneratedOutfit != nil {
				cmd.Printf("Top:    %s\n", rec.GeneratedOutfit.TopDescription)
				cmd.Printf("Bottom: %s\n", rec.GeneratedOutfit.BottomDescription)
				if rec.GeneratedOutfit.ImageURL != "" {
					cmd.Printf("Image:  %s\n", rec.GeneratedOutfit.ImageURL)
				}
			}
			return nil
		},
	}
}

func newCountriesCmd(app *App) *cobra.Command {
	var regionsFor string

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List supported countries and their regions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if regionsFor != "" {
				regions := refdata.Regions(regionsFor)
				if len(regions) == 0 {
					return fmt.Errorf("unknown or unsupported country %q", regionsFor)
				}
				for _, r := range regions {
					cmd.Println(r)
				}
				return nil
			}
			for _, c := range refdata.Countries() {
				cmd.Printf("%-3s %s\n", c.Code, c.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&regionsFor, "regions", "", "list regions for the given country code")
	return cmd
}
