package zstd

import (
	"io"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/lumber"
	"github.com/mholt/archiver/v3"
)

type zstdCompressor struct {
	logger lumber.Logger
	codec  *archiver.Zstd
}

// New return zStandard compression manager
func New(logger lumber.Logger) core.Compressor {
	return &zstdCompressor{logger: logger, codec: archiver.NewZstd()}
}

// Compress compresses in into out.
func (z *zstdCompressor) Compress(in io.Reader, out io.Writer) error {
	if err := z.codec.Compress(in, out); err != nil {
		z.logger.Errorf("error while zstd compression %v", err)
		return err
	}
	return nil
}

// Decompress performs the decompression operation for the given stream
func (z *zstdCompressor) Decompress(in io.Reader, out io.Writer) error {
	if err := z.codec.Decompress(in, out); err != nil {
		z.logger.Errorf("error while zstd decompression %v", err)
		return err
	}
	return nil
}

func (z *zstdCompressor) Extension() string {
	return ".zst"
}
