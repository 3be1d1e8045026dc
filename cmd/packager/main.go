// packager builds cubetac and bundles it with its assets into build.zip.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/cubetac/internal/logger"
	"github.com/Faultbox/cubetac/internal/packager"
)

func main() {
	opts := packager.DefaultOptions()
	flag.StringVar(&opts.Root, "root", opts.Root, "Repository root")
	flag.StringVar(&opts.OutDir, "out", opts.OutDir, "Build directory")
	flag.StringVar(&opts.ZipPath, "zip", opts.ZipPath, "Archive path")
	flag.StringVar(&opts.Readme, "readme", opts.Readme, "README copied into the build")
	flag.StringVar(&opts.GOOS, "goos", opts.GOOS, "Target OS")
	flag.StringVar(&opts.GOARCH, "goarch", opts.GOARCH, "Target architecture")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := packager.Run(ctx, opts, packager.GoBuild); err != nil {
		stop()
		logger.Fatal("packaging failed", zap.Error(err))
	}
}
