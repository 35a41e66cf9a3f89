package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/subosito/gotenv"

	"github.com/your-org/chat-gateway/internal/app"
	"github.com/your-org/chat-gateway/internal/audit"
	"github.com/your-org/chat-gateway/internal/version"
)

func main() {
	_ = gotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "-v" || command == "--version" || command == "version" {
		fmt.Println(version.String())
		return
	}

	switch command {
	case "chat":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "cli chat: message is required")
			os.Exit(1)
		}
		message := strings.Join(os.Args[2:], " ")
		if err := app.RunChat(context.Background(), message, os.Getenv("SYSTEM_PROMPT"), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "cli chat failed: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		path := "configs/gateway.example.yaml"
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		if err := app.ValidateSettings(path); err != nil {
			fmt.Fprintf(os.Stderr, "cli validate failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("settings are valid: %s\n", path)
	case "audit-export":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "cli audit-export: input path is required")
			os.Exit(1)
		}
		inputPath := os.Args[2]
		outputPath := "audit.csv"
		if len(os.Args) > 3 {
			outputPath = os.Args[3]
		}
		if err := audit.ExportJSONLToCSV(inputPath, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "cli audit-export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("audit export complete: %s -> %s\n", inputPath, outputPath)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: chat-gateway-cli <chat|validate|audit-export|version> [args]")
}
