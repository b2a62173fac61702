package apidocs

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

type Opts func(*config)

// configures the Doc middlewares
type config struct {
	// SpecURL the url to find the spec for
	SpecURL string
	// When this return value is false, 403 will be responsed.
	Authorizer func(*http.Request) bool
	// Servers overrides the servers listed in the spec (e.g. the public URL behind a proxy).
	Servers []string
}

func WithAuthorizer(fn func(*http.Request) bool) Opts {
	return func(cfg *config) {
		cfg.Authorizer = fn
	}
}

func WithServers(urls ...string) Opts {
	return func(cfg *config) {
		cfg.Servers = urls
	}
}

func prepare(basePath string, cfg *config, doc *openapi3.T) (string, string, []byte, error) {
	docPath := path.Join(basePath, "apidocs")

	// html
	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	if err := tmpl.Execute(buf, cfg); err != nil {
		return "", "", nil, fmt.Errorf("render docs page: %w", err)
	}

	// json
	if len(cfg.Servers) > 0 {
		servers := make(openapi3.Servers, 0, len(cfg.Servers))
		for _, u := range cfg.Servers {
			servers = append(servers, &openapi3.Server{URL: u})
		}
		doc.Servers = servers
	}
	responseJSON, err := doc.MarshalJSON()
	if err != nil {
		return "", "", nil, fmt.Errorf("marshal api spec: %w", err)
	}

	return docPath, buf.String(), responseJSON, nil
}

// Doc creates a middleware to serve a documentation site for an OpenAPI document
// under basePath: basePath redirects to basePath/apidocs, which renders the page
// reading basePath/apispec.json.
func Doc(basePath string, doc *openapi3.T, opts ...Opts) (echo.MiddlewareFunc, error) {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	docPath, uiHTML, responseJSON, err := prepare(basePath, cfg, doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			switch reqPath {
			case basePath, docPath, cfg.SpecURL:
				if cfg.Authorizer != nil && !cfg.Authorizer(c.Request()) {
					return c.String(http.StatusForbidden, "Forbidden")
				}
			default:
				return next(c)
			}

			switch reqPath {
			case docPath:
				return c.HTML(http.StatusOK, uiHTML)
			case cfg.SpecURL:
				return c.JSONBlob(http.StatusOK, responseJSON)
			default:
				return c.Redirect(http.StatusFound, docPath)
			}
		}
	}, nil
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>Campus Notice Board API</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
