package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/pixa/internal/config"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/tui/styles"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// runSetupFlow asks for an API key, checks it and saves it
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Pixa!")
	fmt.Println()
	fmt.Println("Pixa searches Pixabay. Get a free API key at https://pixabay.com/api/docs/")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// Loop until we get a working key
	for {
		fmt.Print("Enter your Pixabay API key: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		key := strings.TrimSpace(input)

		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.API.Key = key
		fmt.Println()
		if err := verifyKeyWithSpinner(cfg, logger); err != nil {
			fmt.Printf("\n✗ Could not verify key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := config.SaveAPIKey(cfg.API.Key); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// verifyKeyWithSpinner runs a one-photo search with a visual spinner
func verifyKeyWithSpinner(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := newClient(cfg, logger)
	resultCh := make(chan error, 1)

	// Start verification in background
	go func() {
		_, err := client.SearchPhotos(ctx, domain.PageRequest{Query: "nature", Page: 1, PerPage: 3})
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return describeKeyError(err)
			}
			fmt.Println("✓ API key works")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}

// describeKeyError turns a failed check into a hint. Pixabay answers 400 for
// unknown keys.
func describeKeyError(err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) && fe.Kind == domain.ServerRejected && fe.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("key rejected by Pixabay")
	}
	return err
}
