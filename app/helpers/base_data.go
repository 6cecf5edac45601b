package helpers

import (
	"net/http"

	"github.com/Rakhulsr/cristobal/app/models/other"
	"github.com/gorilla/csrf"
)

func GetBaseData(r *http.Request, title, page string) other.BasePageData {
	user := CurrentUser(r)
	return other.BasePageData{
		Title:       title,
		Page:        page,
		Lang:        Lang(r),
		IsLoggedIn:  user != nil,
		User:        user,
		IsAdmin:     user != nil && user.IsAdmin(),
		CartCount:   CartCount(r),
		CSRFToken:   csrf.Token(r),
		CurrentPath: r.URL.Path,
	}
}
