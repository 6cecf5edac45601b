package routes

import (
	"net/http"
	"os"
	"path"
)

// publicFS serves files as they are but refuses directories that have no
// index.html, so http.FileServer never renders a listing.
type publicFS struct {
	fs http.FileSystem
}

func (p publicFS) Open(name string) (http.File, error) {
	f, err := p.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		index, err := p.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			f.Close()
			return nil, os.ErrNotExist
		}
		index.Close()
	}
	return f, nil
}
