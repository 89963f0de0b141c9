package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/assets"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

var defaultFolders = []string{string(models.FolderWishes), string(models.FolderMaxFreu)}

func newImagesCmd() *cobra.Command {
	var (
		root    string
		folders []string
	)

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Write the numeric image list of each image folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				root = cfg.Assets.ImagesDir
			}
			list, err := assets.BuildImageList(root, folders)
			if err != nil {
				return fmt.Errorf("failed to scan images: %w", err)
			}
			return writeAsset(cmd, cfg.Assets.ImageList, list)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Images root directory (default: from config)")
	cmd.Flags().StringSliceVar(&folders, "folders", defaultFolders, "Folders to scan under the root")
	return cmd
}

func newBlurhashCmd() *cobra.Command {
	var (
		root    string
		folders []string
	)

	cmd := &cobra.Command{
		Use:   "blurhash",
		Short: "Compute blur-hash placeholders for every image",
		Long: `Compute a blur-hash placeholder for every numeric image. Entries already present
in the placeholder file are kept as they are.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				root = cfg.Assets.ImagesDir
			}
			target := cfg.Assets.Placeholders
			if outputPath != "" {
				target = outputPath
			}
			existing := assets.LoadPlaceholders(target)

			all := make(map[string]models.Placeholder, len(existing))
			for _, folder := range folders {
				prefix := ""
				if models.Folder(folder) != models.FolderWishes {
					prefix = folder
				}
				generated, err := assets.GeneratePlaceholders(filepath.Join(root, folder), prefix, existing)
				if err != nil {
					return fmt.Errorf("failed to encode %s: %w", folder, err)
				}
				for k, v := range generated {
					all[k] = v
				}
			}
			log.Info().Int("count", len(all)).Str("path", target).Msg("placeholders ready")
			return writeAsset(cmd, target, all)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Images root directory (default: from config)")
	cmd.Flags().StringSliceVar(&folders, "folders", defaultFolders, "Folders to encode under the root")
	return cmd
}

func newPlaceholderCmd() *cobra.Command {
	var (
		width  int
		height int
		punch  int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "placeholder [hash]",
		Short: "Render a blur-hash as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := assets.DecodePlaceholder(args[0], width, height, punch)
			if err != nil {
				return err
			}
			if err := assets.WritePNG(out, img); err != nil {
				return fmt.Errorf("failed to write placeholder: %w", err)
			}
			log.Info().Str("path", out).Msg("placeholder written")
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", assets.DefaultDecodeSize, "Width in pixels")
	cmd.Flags().IntVar(&height, "height", assets.DefaultDecodeSize, "Height in pixels")
	cmd.Flags().IntVar(&punch, "punch", assets.DefaultPunch, "Contrast factor")
	cmd.Flags().StringVar(&out, "out", "placeholder.png", "PNG output path")
	return cmd
}

// writeAsset writes v to --output when set, otherwise to the configured path.
func writeAsset(cmd *cobra.Command, configured string, v interface{}) error {
	if outputPath == "" {
		if configured == "" {
			return writeOutput(cmd.OutOrStdout(), v)
		}
		return assets.WriteJSON(configured, v)
	}
	return writeOutput(cmd.OutOrStdout(), v)
}
