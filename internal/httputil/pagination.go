package httputil

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"
)

// Page bounds of list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	errInvalidOffset = errors.New("invalid offset parameter: must be a non-negative integer")
	errInvalidLimit  = errors.New("invalid limit parameter: must be between 1 and 100")
)

// Page is the offset/limit window requested through the query string.
type Page struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

// ParsePage binds ?offset and ?limit. Missing values default to 0 and DefaultPageLimit.
func ParsePage(c *gin.Context) (Page, error) {
	var offset struct {
		Offset int `form:"offset"`
	}
	if err := c.ShouldBindQuery(&offset); err != nil {
		return Page{}, errInvalidOffset
	}

	limit := struct {
		Limit int `form:"limit"`
	}{Limit: DefaultPageLimit}
	if err := c.ShouldBindQuery(&limit); err != nil {
		return Page{}, errInvalidLimit
	}

	page := Page{Offset: offset.Offset, Limit: limit.Limit}

	if err := validation.Validate(page.Offset, validation.Min(0)); err != nil {
		return Page{}, errInvalidOffset
	}
	// Required rejects an explicit zero, which Min skips as an empty value.
	if err := validation.Validate(page.Limit, validation.Required, validation.Min(1), validation.Max(MaxPageLimit)); err != nil {
		return Page{}, errInvalidLimit
	}

	return page, nil
}
