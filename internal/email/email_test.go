package email

import (
	"strings"
	"testing"
	"time"
)

func TestRenderBookingReceived(t *testing.T) {
	html, err := renderBookingReceived(BookingDetails{
		BookingID:    "65f0c0ffee",
		TravelerName: "Alice",
		PackageTitle: "Bali <Paradise>",
		StartDate:    time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		Travelers:    2,
		TotalPrice:   2500,
		DashboardURL: "https://travelnest.example/dashboard",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"May 3, 2026", "$2500.00", "Bali &lt;Paradise&gt;", "https://travelnest.example/dashboard", "Hi Alice"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered e-mail", want)
		}
	}
}

func TestRenderEveryTemplate(t *testing.T) {
	renders := map[string]func() (string, error){
		"welcome": func() (string, error) { return renderWelcome("Alice", "") },
		"status": func() (string, error) {
			return renderBookingStatus(BookingStatusDetails{PackageTitle: "Kyoto", Status: "confirmed", PaymentStatus: "under_review"})
		},
		"custom request": func() (string, error) {
			return renderCustomRequest(CustomRequestDetails{Destinations: []string{"Lisbon", "Porto"}, Days: 6, Travelers: 2})
		},
	}
	for name, render := range renders {
		html, err := render()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.Contains(html, "TravelNest") {
			t.Fatalf("%s: expected base layout", name)
		}
	}

	status, _ := renderBookingStatus(BookingStatusDetails{Status: "confirmed", PaymentStatus: "under_review"})
	if !strings.Contains(status, "Under review") {
		t.Fatal("expected humanized payment status")
	}
	welcome, _ := renderWelcome("Alice", "")
	if strings.Contains(welcome, "<a href") {
		t.Fatal("call to action must be omitted without a URL")
	}
}
