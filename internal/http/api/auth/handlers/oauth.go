package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// consentPage is the mock consent screen. Clicking the button posts an
// oauth-success message to the opener window, scoped to the page origin, and
// closes the popup.
const consentPage = `<!DOCTYPE html>
<html>
  <head>
    <title>Login with {{.ProviderName}}</title>
    <style>
      body { font-family: sans-serif; background: #1a1a1a; color: white; display: flex; flex-direction: column; align-items: center; justify-content: center; height: 100vh; margin: 0; }
      .card { background: #2a2a2a; padding: 2rem; border-radius: 12px; text-align: center; box-shadow: 0 4px 20px rgba(0,0,0,0.5); max-width: 300px; width: 100%; }
      h1 { margin-bottom: 1.5rem; font-size: 1.5rem; }
      button { background: {{.ButtonColor}}; color: white; border: none; padding: 12px 24px; border-radius: 6px; font-size: 1rem; cursor: pointer; width: 100%; }
      .info { margin-bottom: 2rem; color: #aaa; font-size: 0.9rem; }
    </style>
  </head>
  <body>
    <div class="card">
      <h1>{{.ProviderName}} Login</h1>
      <p class="info">This is a mock consent screen for demonstration.</p>
      <button onclick="authorize()">Authorize App</button>
    </div>
    <script>
      function authorize() {
        if (window.opener) {
          window.opener.postMessage(
            { type: "oauth-success", provider: {{.Provider}} },
            window.location.origin
          );
          window.close();
        } else {
          alert("No parent window found. Please close this manually.");
        }
      }
    </script>
  </body>
</html>
`

var consentTemplate = template.Must(template.New("consent").Parse(consentPage))

// OAuthHandler serves the mock social login consent page.
type OAuthHandler struct{}

// NewOAuthHandler constructs an OAuthHandler.
func NewOAuthHandler() *OAuthHandler {
	return &OAuthHandler{}
}

// consentData feeds the consent page template.
type consentData struct {
	Provider     string
	ProviderName string
	ButtonColor  template.CSS
}

// Consent renders the mock consent page for a provider.
func (h *OAuthHandler) Consent(c *gin.Context) {
	provider := strings.ToLower(strings.TrimSpace(c.Param("provider")))
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provider required"})
		return
	}

	color := template.CSS("#333")
	if provider == "google" {
		color = template.CSS("#DB4437")
	}

	var buf bytes.Buffer
	errRender := consentTemplate.Execute(&buf, consentData{
		Provider:     provider,
		ProviderName: titleCase(provider),
		ButtonColor:  color,
	})
	if errRender != nil {
		log.WithError(errRender).Error("render consent page failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render consent page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// titleCase upper-cases the first rune of a provider name.
func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
