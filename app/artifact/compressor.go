package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/andybalholm/brotli"
	"mvdan.cc/sh/v3/shell"
)

const CompressedExt = ".br"

// Compressor writes a Brotli-compressed sibling of path at path + ".br".
type Compressor interface {
	Compress(ctx context.Context, path string) error
}

type NativeCompressor struct {
	level int
}

func NewNativeCompressor() *NativeCompressor {
	return &NativeCompressor{level: brotli.BestCompression}
}

func (c *NativeCompressor) Compress(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	dst, err := os.Create(path + CompressedExt)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path+CompressedExt, err)
	}

	w := brotli.NewWriterLevel(dst, c.level)
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		dst.Close()
		return fmt.Errorf("failed to compress %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		dst.Close()
		return fmt.Errorf("failed to flush %s: %w", path+CompressedExt, err)
	}
	return dst.Close()
}

// CommandCompressor runs an external compressor. The template is split with
// shell rules; $INPUT expands to the file path and other variables come from
// the process environment. Paths containing spaces need "$INPUT" quoted.
type CommandCompressor struct {
	template string
}

func NewCommandCompressor(template string) *CommandCompressor {
	return &CommandCompressor{template: template}
}

func (c *CommandCompressor) Compress(ctx context.Context, path string) error {
	args, err := c.Args(path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %s: %w: %s", args[0], err, output)
	}

	if _, err := os.Stat(path + CompressedExt); err != nil {
		return fmt.Errorf("compressor produced no output: %w", err)
	}
	return nil
}

// Args expands the command template for path.
func (c *CommandCompressor) Args(path string) ([]string, error) {
	args, err := shell.Fields(c.template, func(name string) string {
		if name == "INPUT" {
			return path
		}
		return os.Getenv(name)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse compressor command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("compressor command is empty")
	}
	return args, nil
}
