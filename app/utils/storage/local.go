package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localDisk struct {
	root      string
	urlPrefix string
}

func NewLocalDisk(root, urlPrefix string) Disk {
	if urlPrefix == "" {
		urlPrefix = "/images"
	}
	return &localDisk{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// full roots name under d.root; cleaning against "/" drops any leading "..".
func (d *localDisk) full(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("storage/local: empty name")
	}
	return filepath.Join(d.root, filepath.Clean("/"+name)), nil
}

func (d *localDisk) Put(_ context.Context, name string, r io.Reader) error {
	full, err := d.full(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", name, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	return nil
}

func (d *localDisk) Delete(_ context.Context, name string) error {
	full, err := d.full(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", name, err)
	}
	return nil
}

func (d *localDisk) URL(name string) string {
	return d.urlPrefix + "/" + strings.TrimLeft(name, "/")
}
