package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/avoronkov/stridewell/internal/auth"
	"github.com/avoronkov/stridewell/internal/config"
	"github.com/avoronkov/stridewell/internal/healthdata"
	"github.com/avoronkov/stridewell/internal/keystore"
	"github.com/avoronkov/stridewell/internal/lifecycle"
	"github.com/avoronkov/stridewell/internal/tracker"
)

const keyAccessToken = "collector_accessToken"

func main() {
	cfg := config.Load()

	log.Println("========== Stridewell Agent ==========")
	log.Printf("  collector        = %s", cfg.CollectorURL)
	log.Printf("  account          = %s", accountOrDash(cfg.AccountEmail))
	log.Printf("  health_source    = %s", cfg.HealthSource)
	log.Printf("  keystore_mode    = %s", cfg.KeystoreMode)
	log.Println("======================================")

	store := keystore.New(cfg)
	source := healthdata.NewSource(cfg)
	log.Printf("agent: health source: %s", source.Name())

	client := tracker.NewCollectorClient(cfg.CollectorURL)
	if token, err := store.Get(keyAccessToken); err == nil && token != "" {
		client = client.WithAuthToken(token)
		log.Println("agent: using stored access token")
	}

	displayName := auth.DisplayName(cfg.AccountEmail)
	if displayName == "" {
		displayName = "local"
	}

	notifier := lifecycle.NewSignalNotifier()
	defer notifier.Close()

	tr := tracker.New(store, tracker.SystemClock(), client, displayName)
	tr.Mount(notifier)
	defer tr.Unmount()

	printSnapshot(source, time.Now())
	printStatus(tr)
	repl(cfg, store, source, tr)
}

func repl(cfg *config.Config, store keystore.Store, source healthdata.Source, tr *tracker.Tracker) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`commands: y | n | open | form <sleep> <mood> <water> | submit | date [YYYY-MM-DD] | login | status | quit`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "y", "yes":
			tr.ConfirmHydration()
			fmt.Printf("streak: %d day(s)\n", tr.Streak())

		case "n", "no":
			tr.DeclineHydration()
			fmt.Println("ok")

		case "open":
			tr.Expand()
			fmt.Println("form open")

		case "form":
			if len(fields) != 4 {
				fmt.Println("usage: form <sleepHours> <mood> <waterGlasses>")
				continue
			}
			sleep, err1 := strconv.Atoi(fields[1])
			water, err2 := strconv.Atoi(fields[3])
			if err1 != nil || err2 != nil {
				fmt.Println("sleep and water must be integers")
				continue
			}
			tr.SetForm(tracker.Form{SleepHours: sleep, Mood: fields[2], WaterIntake: water})
			fmt.Printf("form: %+v\n", tr.Form())

		case "submit":
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			err := tr.Submit(ctx)
			cancel()
			switch {
			case errors.Is(err, tracker.ErrNotSubmittable):
				fmt.Println("no open form (use: open)")
			case err != nil:
				fmt.Printf("submit failed, form kept: %v\n", err)
			default:
				fmt.Println("submitted")
			}

		case "date", "snapshot":
			date := time.Now()
			if len(fields) > 1 {
				d, err := time.Parse("2006-01-02", fields[1])
				if err != nil {
					fmt.Println("usage: date [YYYY-MM-DD]")
					continue
				}
				date = d
			}
			printSnapshot(source, date)

		case "login":
			if err := login(cfg, store); err != nil {
				fmt.Printf("login failed: %v\n", err)
				continue
			}
			fmt.Println("token stored; restart the agent to use it")

		case "status":
			printStatus(tr)

		case "quit", "exit":
			return

		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

// login fetches a dev token from the collector and stores it in the
// keystore. Works only against a collector running with AUTH_MODE=dev.
func login(cfg *config.Config, store keystore.Store) error {
	if cfg.AccountEmail == "" {
		return fmt.Errorf("ACCOUNT_EMAIL is not set")
	}

	body, _ := json.Marshal(map[string]string{"email": cfg.AccountEmail})
	resp, err := http.Post(
		strings.TrimSuffix(cfg.CollectorURL, "/")+"/api/auth/dev",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return err
	}

	return store.Set(keyAccessToken, result.AccessToken)
}

func printSnapshot(source healthdata.Source, date time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	snap, err := source.Snapshot(ctx, date)
	cancel()
	if err != nil {
		fmt.Printf("snapshot failed (showing last known): %v\n", err)
	}
	fmt.Printf("%s: steps=%d flights=%d distance=%.0fm\n",
		snap.Date.Format("2006-01-02"), snap.Steps, snap.Flights, snap.DistanceMeters)
}

func printStatus(tr *tracker.Tracker) {
	fmt.Printf("card=%s streak=%d/7 active=%.2fh name=%s\n",
		tr.State(), tr.Streak(), tr.ActiveHours(), tr.DisplayName())
	if tr.State() == tracker.Collapsed {
		fmt.Println("Did you drink water regularly today? (y/n)")
	}
}

func accountOrDash(email string) string {
	if strings.TrimSpace(email) == "" {
		return "-"
	}
	return email
}
