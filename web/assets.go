package web

import (
	"embed"
	"io/fs"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

//go:embed static
var static embed.FS

// assetsFS returns the frontend files: StaticDir when set, otherwise the
// embedded page.
func (s *Server) assetsFS() (fs.FS, error) {
	if s.StaticDir != "" {
		return os.DirFS(s.StaticDir), nil
	}
	return fs.Sub(static, "static")
}

// mountAssets serves the frontend for every path not handled by the API.
func (s *Server) mountAssets(r *mux.Router) {
	assets, err := s.assetsFS()
	if err != nil {
		s.log.WithError(err).Error("failed to mount assets")
		return
	}
	r.PathPrefix("/").Handler(http.FileServerFS(assets)).Methods(http.MethodGet, http.MethodHead)
}
