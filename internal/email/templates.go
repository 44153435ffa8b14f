package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type welcomeEmailData struct {
	baseEmailData
	Name string
}

type bookingReceivedEmailData struct {
	baseEmailData
	TravelerName   string
	PackageTitle   string
	StartDate      string
	Travelers      int
	TotalFormatted string
	Reference      string
}

type bookingStatusEmailData struct {
	baseEmailData
	PackageTitle  string
	Status        string
	PaymentStatus string
	Reference     string
}

type customRequestEmailData struct {
	baseEmailData
	Destinations string
	Days         int
	Travelers    int
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// humanize turns status values like under_review into "Under review".
func humanize(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "_", " ")
	return strings.ToUpper(value[:1]) + value[1:]
}
