package web

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirshagarwal/airport-traffic/airports"
)

//go:embed index.gohtml
var indexTemplateRaw string

var indexTemplate = template.Must(template.New("index").Parse(indexTemplateRaw))

type indexAirport struct {
	Code  string
	Label string
}

type IndexHandler struct {
	airports []indexAirport
}

func NewIndexHandler() *IndexHandler {
	entries := airports.Entries()
	options := make([]indexAirport, 0, len(entries))
	for _, entry := range entries {
		options = append(options, indexAirport{
			Code:  entry.Code,
			Label: entry.Label(),
		})
	}

	return &IndexHandler{airports: options}
}

func (ih *IndexHandler) Index(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.WriteHeader(http.StatusOK)

	return indexTemplate.Execute(res, map[string]any{
		"Airports": ih.airports,
	})
}
