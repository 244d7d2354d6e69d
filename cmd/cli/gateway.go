package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/client"
)

var infoCmd = &cobra.Command{
	Use:   "info [url]",
	Short: "Show video metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()

		meta, err := api.VideoInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(meta)
		}

		fmt.Printf("Title:    %s\n", meta.Title)
		fmt.Printf("Author:   %s\n", meta.Author)
		if meta.Duration != nil {
			fmt.Printf("Duration: %s\n", client.FormatDuration(*meta.Duration))
		}
		fmt.Printf("Views:    %d\n", meta.Views)
		if meta.UploadDate != "" {
			fmt.Printf("Uploaded: %s\n", meta.UploadDate)
		}

		if len(meta.Formats) > 0 {
			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ITAG\tQUALITY\tCONTAINER\tSIZE")
			for _, f := range meta.Formats {
				size := "-"
				if f.Filesize != nil {
					size = client.FormatSize(*f.Filesize)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.Itag, f.Quality, f.Container, size)
			}
			w.Flush()
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a direct download link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		quality, _ := cmd.Flags().GetString("quality")
		format, _ := cmd.Flags().GetString("format")

		link, err := api.Download(cmd.Context(), args[0], quality, format)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(link)
		}

		fmt.Println(link.Message)
		fmt.Printf("Task:     %s\n", link.TaskID)
		fmt.Printf("Filename: %s\n", link.Filename)
		fmt.Printf("URL:      %s\n", link.DownloadURL)
		return nil
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream [url]",
	Short: "Download a video to disk through the gateway's streaming proxy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureServer()
		quality, _ := cmd.Flags().GetString("quality")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		ctx := cmd.Context()
		body, size, filename, err := api.OpenStream(ctx, args[0], quality, format)
		if err != nil {
			return err
		}
		defer body.Close()

		if filename == "" {
			filename = app.BuildFilename("video", format)
		}
		path := filepath.Join(app.ExpandPath(output), app.SanitizeFilename(filename))

		var onProgress func(int64)
		if term.IsTerminal(int(os.Stderr.Fd())) {
			onProgress = func(written int64) {
				if size > 0 {
					fmt.Fprintf(os.Stderr, "\r%s / %s (%.1f%%)  ", client.FormatSize(written), client.FormatSize(size), float64(written)*100/float64(size))
				} else {
					fmt.Fprintf(os.Stderr, "\r%s  ", client.FormatSize(written))
				}
			}
		}

		log.Debug("Streaming", zap.String("path", path), zap.Int64("size", size))
		written, err := client.SaveTo(ctx, body, path, onProgress)
		if onProgress != nil {
			fmt.Fprintln(os.Stderr)
		}
		if err != nil {
			notifier.NotifyDownloadFailed(filename, err)
			return fmt.Errorf("download failed after %s: %w", client.FormatSize(written), err)
		}

		notifier.NotifyDownloadCompleted(path)
		fmt.Printf("Saved %s (%s)\n", path, client.FormatSize(written))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{resolveCmd, streamCmd} {
		c.Flags().StringP("quality", "q", "best", "Quality: best | 1080p | 720p | 480p | 360p | itag")
		c.Flags().StringP("format", "f", "mp4", "Container: mp4 | webm | mp3")
	}
	streamCmd.Flags().StringP("output", "o", ".", "Output directory")
}
