package config_test

import (
	"fmt"
	"time"

	"github.com/focuskeeper/focuskeeper/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Poll Interval:", cfg.Monitor.PollInterval)
	fmt.Println("Cache Validity:", cfg.Monitor.CacheValidity)
	fmt.Println("Targets:", cfg.Keywords.Targets)
	fmt.Println("Ignored:", cfg.Keywords.Ignored)
	// Output:
	// Poll Interval: 100ms
	// Cache Validity: 50ms
	// Targets: [Trae]
	// Ignored: [WhatsApp]
}

// Example of setting poll interval with validation
func ExampleConfig_SetPollInterval() {
	cfg := config.Default()

	// Valid interval
	if err := cfg.SetPollInterval(250 * time.Millisecond); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Poll interval set to:", cfg.Monitor.PollInterval)
	}

	// Invalid interval (too low)
	if err := cfg.SetPollInterval(5 * time.Millisecond); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// Poll interval set to: 250ms
	// Error: poll interval cannot be less than 10ms
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	// Output:
	// Configuration is valid
}
