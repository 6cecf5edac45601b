package other

import (
	"github.com/Rakhulsr/cristobal/app/models"
)

// BasePageData is handed to every HTML page shell; the page itself fetches
// its content from the JSON API.
type BasePageData struct {
	Title       string
	Page        string
	Lang        string
	IsLoggedIn  bool
	User        *models.SessionUser
	IsAdmin     bool
	CartCount   int
	CSRFToken   string
	CurrentPath string
	Params      map[string]string
}
