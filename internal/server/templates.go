package server

import (
	"html/template"
	"strings"
	"time"

	"problemas/internal/models"
	"problemas/internal/policy"
	"problemas/web"
)

const dateLayout = "02/01/2006 15:04"

// maskEmail keeps the first two characters of the local part.
func maskEmail(email string) string {
	at := strings.IndexRune(email, '@')
	if at <= 0 {
		return "***"
	}
	prefix := []rune(email[:at])
	if len(prefix) <= 2 {
		return string(prefix) + "***" + email[at:]
	}
	return string(prefix[:2]) + "***" + email[at:]
}

// maskPhone hides all but the last two digits of a contact number.
func maskPhone(phone string) string {
	runes := []rune(phone)
	n := len(runes)
	if n <= 4 {
		return "***"
	}
	return strings.Repeat("*", n-2) + string(runes[n-2:])
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(dateLayout)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"maskEmail":  maskEmail,
		"maskPhone":  maskPhone,
		"formatDate": formatDate,
		"roleLabel":  models.RoleName.Label,
		"canModify":  policy.CanModify,
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap()).ParseFS(web.Templates, "templates/*.html")
}
