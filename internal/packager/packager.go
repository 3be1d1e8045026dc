// Package packager assembles a distributable build: the game binary, its
// assets, a README and a default config, zipped into one archive.
package packager

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/cubetac/internal/config"
	"github.com/Faultbox/cubetac/internal/logger"
)

// Options describes where the build is read from and written to. Relative
// paths are resolved against Root.
type Options struct {
	Root     string
	MainPkg  string // package passed to go build
	Binary   string // output name without extension
	AssetDir string
	Readme   string
	OutDir   string
	ZipPath  string
	GOOS     string
	GOARCH   string
}

// DefaultOptions returns the layout of this repository.
func DefaultOptions() Options {
	return Options{
		Root:     ".",
		MainPkg:  "./cmd/cubetac",
		Binary:   "cubetac",
		AssetDir: "assets",
		Readme:   "build_readme.txt",
		OutDir:   "build",
		ZipPath:  "build.zip",
		GOOS:     runtime.GOOS,
		GOARCH:   runtime.GOARCH,
	}
}

// BinaryName returns the binary file name for the target OS.
func (o Options) BinaryName() string {
	if o.GOOS == "windows" {
		return o.Binary + ".exe"
	}
	return o.Binary
}

func (o Options) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.Root, p)
}

// BuildFunc compiles the game into output.
type BuildFunc func(ctx context.Context, opts Options, output string) error

// GoBuild compiles with the go tool found on PATH.
func GoBuild(ctx context.Context, opts Options, output string) error {
	cmd := exec.CommandContext(ctx, "go", "build", "-trimpath", "-ldflags", "-s -w", "-o", output, opts.MainPkg)
	cmd.Dir = opts.Root
	cmd.Env = append(os.Environ(), "GOOS="+opts.GOOS, "GOARCH="+opts.GOARCH)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build: %w\n%s", err, out)
	}
	return nil
}

// Run compiles the game while the assets, README and default config are
// copied, then zips the build directory. The first failing step cancels the
// other and its error is returned.
func Run(ctx context.Context, opts Options, build BuildFunc) error {
	log := logger.Named("packager")
	outDir := opts.path(opts.OutDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}
	binary, err := filepath.Abs(filepath.Join(outDir, opts.BinaryName()))
	if err != nil {
		return fmt.Errorf("resolve binary path: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("building", zap.String("package", opts.MainPkg), zap.String("goos", opts.GOOS))
		return build(gctx, opts, binary)
	})
	g.Go(func() error {
		log.Info("copying files")
		return copyFiles(opts, outDir)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("zipping", zap.String("archive", opts.ZipPath))
	if err := Zip(outDir, opts.path(opts.ZipPath)); err != nil {
		return fmt.Errorf("zip: %w", err)
	}

	log.Info("finished", zap.String("dir", outDir), zap.String("archive", opts.ZipPath))
	return nil
}

func copyFiles(opts Options, outDir string) error {
	if err := CopyDir(opts.path(opts.AssetDir), filepath.Join(outDir, "assets")); err != nil {
		return fmt.Errorf("copy assets: %w", err)
	}
	if err := CopyFile(opts.path(opts.Readme), filepath.Join(outDir, "README.txt")); err != nil {
		return fmt.Errorf("copy readme: %w", err)
	}
	return WriteConfig(filepath.Join(outDir, config.FileName))
}

// WriteConfig writes the default settings with paths relative to the build
// directory.
func WriteConfig(path string) error {
	cfg := config.Default().Clone()
	cfg.Data.AssetDir = "./assets"
	cfg.Logging.LogFile = "cubetac.log"
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// CopyDir copies src recursively into dst.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return CopyFile(path, target)
	})
}

// CopyFile copies one file, creating parent directories.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Zip archives the contents of dir into zipPath. Entry names are relative
// to the parent of dir, so the archive unpacks into a single folder.
func Zip(dir, zipPath string) error {
	file, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(file)

	base := filepath.Dir(filepath.Clean(dir))
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			_, err := zw.Create(name + "/")
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})

	closeErr := zw.Close()
	fileErr := file.Close()
	switch {
	case walkErr != nil:
		return walkErr
	case closeErr != nil:
		return closeErr
	default:
		return fileErr
	}
}
