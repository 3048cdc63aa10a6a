package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	styleai "github.com/styleai/styleai-go"
)

func newWardrobeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Manage your wardrobe items",
	}
	cmd.AddCommand(
		newWardrobeListCmd(app),
		newWardrobeUploadCmd(app),
		newWardrobeDeleteCmd(app),
		newWardrobeCleanCmd(app),
	)
	return cmd
}

func loadWardrobe(cmd *cobra.Command, app *App) (*styleai.WardrobeStore, error) {
	c, err := app.Client()
	if err != nil {
		return nil, err
	}
	ws := styleai.NewWardrobeStore(c)
	if err := ws.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return ws, nil
}

func newWardrobeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wardrobe items by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWardrobe(cmd, app)
			if err != nil {
				return err
			}
			if ws.IsEmpty() {
				cmd.Println("Your wardrobe is empty. Add some clothes first!")
				return nil
			}
			for _, cat := range styleai.Categories() {
				items := ws.Items(cat)
				if len(items) == 0 {
					continue
				}
				cmd.Printf("%s (%d)\n", cat, len(items))
				for _, it := range items {
					mark := " "
					if it.BgRemovedImageURL != "" {
						mark = "*" // background already removed
					}
					cmd.Printf("  %s[%d] %s\n", mark, it.ID, ws.DisplayURL(it.ID))
				}
			}
			return nil
		},
	}
}

func newWardrobeUploadCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload clothing photos into a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := styleai.Category(category)
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q (one of: %v)", category, styleai.Categories())
			}
			c, err := app.Client()
			if err != nil {
				return err
			}
			ws := styleai.NewWardrobeStore(c)

			inputs := make([]styleai.UploadInput, 0, len(args))
			files := make([]*os.File, 0, len(args))
			defer func() {
				for _, f := range files {
					_ = f.Close()
				}
			}()
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				files = append(files, f)
				inputs = append(inputs, styleai.UploadInput{
					Category: cat,
					Filename: filepath.Base(path),
					Content:  f,
				})
			}

			outcome, err := ws.UploadBatch(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			for _, it := range outcome.Uploaded {
				cmd.Printf("uploaded [%d] %s\n", it.ID, it.ImageURL)
			}
			for _, f := range outcome.Failed {
				cmd.Printf("FAILED   %s: %v\n", f.Filename, f.Err)
			}
			if len(outcome.Failed) > 0 {
				return fmt.Errorf("%d of %d uploads failed", len(outcome.Failed), len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "wardrobe category")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newWardrobeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete wardrobe items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWardrobe(cmd, app)
			if err != nil {
				return err
			}
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", arg)
				}
				if err := ws.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %d: %w", id, err)
				}
				cmd.Printf("deleted [%d]\n", id)
			}
			return nil
		},
	}
}

func newWardrobeCleanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clean <id>...",
		Short: "Remove the background from clothing photos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWardrobe(cmd, app)
			if err != nil {
				return err
			}
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q", arg)
				}
				ids = append(ids, id)
			}
			updated, err := ws.RemoveBackgroundItems(cmd.Context(), ids)
			if err != nil {
				return err
			}
			for _, it := range updated {
				cmd.Printf("cleaned [%d] %s\n", it.ID, it.BgRemovedImageURL)
			}
			return nil
		},
	}
}
