package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/tamathecxder/randomail"
)

const (
	submitRetries = 3
	retryDelay    = 2 * time.Second
)

var (
	firstNames = []string{"Olena", "Taras", "Iryna", "Mykola", "Sofia", "Andrii", "Marta", "Bohdan"}
	lastNames  = []string{"Kovalenko", "Shevchenko", "Bondarenko", "Tkachenko", "Melnyk", "Kravets"}
	streets    = []string{"Main St", "Oak Avenue", "Harbor Road", "Station Square", "Mill Lane"}
	cities     = []string{"Kyiv", "Lviv", "Odesa", "Dnipro", "Kharkiv"}
)

// randomSubmission builds a form submission that passes validation.
func randomSubmission() models.Submission {
	var phone strings.Builder
	for range 10 {
		phone.WriteByte(byte('0' + rand.IntN(10)))
	}

	return models.Submission{
		Name:    firstNames[rand.IntN(len(firstNames))] + " " + lastNames[rand.IntN(len(lastNames))],
		Email:   strings.ToLower(randomail.GenerateRandomEmail()),
		Phone:   phone.String(),
		Address: fmt.Sprintf("%d %s, %s", rand.IntN(200)+1, streets[rand.IntN(len(streets))], cities[rand.IntN(len(cities))]),
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the running service")
	count := flag.Int("count", 10, "number of employees to add")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	httpClient := client.CreateHTTPClient(logger)
	formURL := strings.TrimRight(*baseURL, "/") + "/employees/new"

	log.Printf("Seeding %d employees into %s", *count, *baseURL)

	added, rejected := 0, 0
	for range *count {
		sub := randomSubmission()
		err := client.RetrySubmit(ctx, logger, httpClient, formURL, sub, submitRetries, retryDelay)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("Skipping %s <%s>: %v", sub.Name, sub.Email, err)
			rejected++
			continue
		}
		added++
	}

	listing, err := client.FetchListing(ctx, httpClient, strings.TrimRight(*baseURL, "/")+"/")
	if err != nil {
		log.Fatalf("Failed to read employee listing: %v", err)
	}

	log.Printf("✅ Seed completed: %d added, %d rejected, %d employees stored", added, rejected, len(listing.Employees))
}
