package echo

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// confirmedPage inlines the minted token so a human can copy it into their
// client manually when no redirect target was supplied.
var confirmedPage = template.Must(template.New("confirmed").Parse(`<!DOCTYPE html>
<html>
<head><title>Authorization complete</title></head>
<body>
  <h1>Authorization complete</h1>
  <p>Copy this token into your client:</p>
  <pre><code>{{.Token}}</code></pre>
  <p>The token is valid for 24 hours. You can close this page.</p>
</body>
</html>
`))

func (a *AuthAPI) renderConfirmed(c echo.Context, token string) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return confirmedPage.Execute(c.Response(), struct{ Token string }{Token: token})
}
