package internal

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// zipDir packs the files under srcDir into a zip archive at dest. dest may
// lie inside srcDir; it is left out of the archive.
func zipDir(srcDir, dest string) (err error) {
	if _, err := os.Stat(srcDir); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dest)
		}
	}()

	w := zip.NewWriter(f)
	if err := addTree(w, srcDir, dest); err != nil {
		w.Close()
		return err
	}
	// Close writes the central directory; a failure here leaves no usable archive.
	return w.Close()
}

func addTree(w *zip.Writer, srcDir, dest string) error {
	self, err := os.Stat(dest)
	if err != nil {
		return err
	}
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if os.SameFile(info, self) {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		header.Method = zip.Deflate
		return addFile(w, header, path)
	})
}

func addFile(w *zip.Writer, header *zip.FileHeader, path string) error {
	writer, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(writer, file)
	return err
}
