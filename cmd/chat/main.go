package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mindmate/pkg/apiclient"
	"mindmate/pkg/tui"
)

func main() {
	baseURL := os.Getenv("MINDMATE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:10000"
	}

	userID, err := apiclient.LoadOrCreateUserID()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not establish user identity: %v\n", err)
		os.Exit(1)
	}

	client := apiclient.New(baseURL)

	p := tea.NewProgram(tui.New(client, userID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
