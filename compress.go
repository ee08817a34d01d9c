/*
 * compress.go, part of golephar.
 *
 *
 * Copyright 2026 The golephar authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package lephar

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression suffixes understood by OpenFile and CreateFile.
var compressedExt = []string{".gz", ".zst"}

// StripCompression returns name without a compression suffix, if it has one.
func StripCompression(name string) string {
	for _, v := range compressedExt {
		if strings.HasSuffix(strings.ToLower(name), v) {
			return name[:len(name)-len(v)]
		}
	}
	return name
}

// IsCompressed returns true if name ends in one of the compression suffixes.
func IsCompressed(name string) bool {
	return StripCompression(name) != name
}

// zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
	f *os.File
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}

type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

// OpenFile opens name for reading, decompressing it on the fly
// if it ends in .gz or .zst.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return zstdReadCloser{d, f}, nil
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		d, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return gzipReadCloser{d, f}, nil
	}
	return f, nil
}

type compWriteCloser struct {
	io.WriteCloser
	f *os.File
}

func (c compWriteCloser) Close() error {
	if err := c.WriteCloser.Close(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

// CreateFile creates name for writing, compressing the content if the name
// ends in .gz or .zst.
func CreateFile(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		w, err = gzip.NewWriterLevel(f, gzip.BestCompression)
	default:
		return f, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return compWriteCloser{w, f}, nil
}
