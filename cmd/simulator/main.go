package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
)

var fakeNames = []string{
	"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace", "Heidi",
	"Ivan", "Judy", "Mallory", "Niaj", "Olivia", "Peggy", "Rupert", "Sybil",
}

var offers = []string{
	"coffee", "tea", "lunch", "a ride home", "code review", "dog walking",
	"movie tickets", "homemade cookies", "an hour of babysitting",
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	apiURL := "http://localhost:3000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "populate":
		populateCmd(apiURL, args)
	case "deals":
		dealsCmd(apiURL, args)
	case "decide":
		decideCmd(apiURL, args)
	case "full":
		fullCmd(apiURL, args)
	case "watch":
		watchCmd(apiURL)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Deal Board Simulator - Development tool for populating the board

USAGE:
  simulator <command> [options]

COMMANDS:
  populate  Register fake users
  deals     Create random deals between existing users
  decide    Decide all pending deals
  full      Populate, deal, decide, then print the scoreboard
  watch     Connect to the push channel and print every state event
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:3000)

EXAMPLES:
  # Register 5 fake users
  simulator populate --count=5

  # Create 10 random deals
  simulator deals --count=10

  # Accept roughly 70% of pending deals, reject the rest
  simulator decide --accept=0.7

  # Full flow with defaults
  simulator full`)
}

func populateCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	count := fs.Int("count", 4, "Number of fake users to register")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	registerUsers(client, *count)
}

func dealsCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("deals", flag.ExitOnError)
	count := fs.Int("count", 6, "Number of random deals to create")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	createDeals(client, *count)
}

func decideCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("decide", flag.ExitOnError)
	accept := fs.Float64("accept", 0.5, "Fraction of pending deals to accept")
	fs.Parse(args)

	client := NewAPIClient(apiURL)
	decidePending(client, *accept)
}

func fullCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("full", flag.ExitOnError)
	users := fs.Int("users", 4, "Number of fake users to register")
	deals := fs.Int("deals", 6, "Number of random deals to create")
	accept := fs.Float64("accept", 0.5, "Fraction of pending deals to accept")
	fs.Parse(args)

	client := NewAPIClient(apiURL)

	fmt.Println("=== Deal Board Simulator: Full Flow ===")
	registerUsers(client, *users)
	createDeals(client, *deals)
	decidePending(client, *accept)
	printScoreboard(client)
}

func registerUsers(client *APIClient, count int) {
	for i := 0; i < count; i++ {
		name := fakeNames[i%len(fakeNames)]
		user, err := client.RegisterUser(name)
		if err != nil {
			fatalf("failed to register %s: %v", name, err)
		}
		fmt.Printf("Registered %s (%s)\n", user.Name, user.ID)
	}
}

func createDeals(client *APIClient, count int) {
	state, err := client.GetState()
	if err != nil {
		fatalf("failed to fetch state: %v", err)
	}
	if len(state.Users) < 2 {
		fatalf("need at least 2 users, have %d (run populate first)", len(state.Users))
	}

	for i := 0; i < count; i++ {
		from := state.Users[rand.Intn(len(state.Users))]
		to := state.Users[rand.Intn(len(state.Users))]
		for to.ID == from.ID {
			to = state.Users[rand.Intn(len(state.Users))]
		}

		offer := offers[rand.Intn(len(offers))]
		request := offers[rand.Intn(len(offers))]
		deal, err := client.CreateDeal(from.ID, to.ID, offer, request)
		if err != nil {
			fatalf("failed to create deal: %v", err)
		}
		fmt.Printf("Deal %s: %s offers %q for %q\n", deal.ID, from.Name, offer, request)
	}
}

func decidePending(client *APIClient, acceptRatio float64) {
	state, err := client.GetState()
	if err != nil {
		fatalf("failed to fetch state: %v", err)
	}

	for _, deal := range state.Deals {
		if deal.Status != "PENDING" {
			continue
		}
		status := "REJECTED"
		if rand.Float64() < acceptRatio {
			status = "ACCEPTED"
		}
		if _, err := client.SetDealStatus(deal.ID, status); err != nil {
			fatalf("failed to decide deal %s: %v", deal.ID, err)
		}
		fmt.Printf("Deal %s -> %s\n", deal.ID, status)
	}
}

func printScoreboard(client *APIClient) {
	rows, err := client.GetScoreboard()
	if err != nil {
		fatalf("failed to fetch scoreboard: %v", err)
	}

	fmt.Println("\n=== Scoreboard ===")
	for _, row := range rows {
		fmt.Printf("%-12s owedTo=%d owes=%d net=%+d\n", row.Name, row.OwedTo, row.Owes, row.Net)
	}
}

func watchCmd(apiURL string) {
	wsURL := "ws" + apiURL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		fatalf("failed to connect to %s: %v", wsURL, err)
	}
	defer conn.Close()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", wsURL)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		conn.Close()
		os.Exit(0)
	}()

	for {
		var msg struct {
			Event string            `json:"event"`
			Users []json.RawMessage `json:"users"`
			Deals []json.RawMessage `json:"deals"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			fatalf("connection closed: %v", err)
		}
		fmt.Printf("[%s] %d users, %d deals\n", msg.Event, len(msg.Users), len(msg.Deals))
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Printf("Error: "+format+"\n", args...)
	os.Exit(1)
}
