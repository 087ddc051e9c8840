// Package cmd implements the command-line interface for oddbit.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/syirilrakhulh/oddbit-player/filesystem"
	"github.com/syirilrakhulh/oddbit-player/key"
	"github.com/syirilrakhulh/oddbit-player/log"
	"github.com/syirilrakhulh/oddbit-player/media"
	"github.com/syirilrakhulh/oddbit-player/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("dir", "d", "", "Directory holding the video library")
	lo.Must0(viper.BindPFlag(key.MediaDir, serveCmd.Flags().Lookup("dir")))

	serveCmd.Flags().StringP("host", "H", "", "Interface to bind to")
	lo.Must0(viper.BindPFlag(key.ServerHost, serveCmd.Flags().Lookup("host")))

	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on")
	lo.Must0(viper.BindPFlag(key.ServerPort, serveCmd.Flags().Lookup("port")))

	serveCmd.Flags().IntP("rate-limit", "r", 0, "Per-response throughput cap in bytes per second")
	lo.Must0(viper.BindPFlag(key.StreamRateLimit, serveCmd.Flags().Lookup("rate-limit")))
}

// serveCmd runs the media stream server until interrupted.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve the video library over HTTP with byte-range support",
	Example: "  oddbit serve --dir ~/Videos --port 8080",
	Run: func(cmd *cobra.Command, args []string) {
		log.Attach(os.Stderr)

		library := media.NewLibrary(filesystem.API(), viper.GetString(key.MediaDir))
		handleErr(library.Ensure())

		streamer := media.NewStreamer(library,
			media.WithChunkSize(viper.GetInt(key.StreamChunkSize)),
			media.WithRateLimit(viper.GetInt(key.StreamRateLimit)),
		)

		cfg := server.ConfigFromViper()
		srv := server.New(streamer, cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Infof("serving %s on %s", library.Dir(), cfg.Addr())
		handleErr(srv.Run(ctx))
		log.Info("server stopped")
	},
}
