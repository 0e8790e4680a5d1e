// Command cli provides the operator tooling: destructive system reset with
// admin reseeding, and out-of-band admin account creation.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/lottohq/lottery/infra/initializer"
	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/config"
	"github.com/lottohq/lottery/pkg/dto"
	domainuser "github.com/lottohq/lottery/pkg/domain/user"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	a := app.New(deps, cfg)

	ctx := context.Background()
	switch os.Args[1] {
	case "reset":
		runReset(ctx, a)
	case "create-admin":
		runCreateAdmin(ctx, a)
	default:
		color.Red("Unknown command: %s", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println("Commands:")
	fmt.Println("  reset              wipe prizes, tickets and users; reseed the default admin")
	fmt.Println("  create-admin       create an approved admin account interactively")
}

// runReset asks for explicit confirmation before wiping the database.
func runReset(ctx context.Context, a *app.App) {
	color.Yellow("This deletes ALL prizes, tickets and users, then seeds %q.", "admin")
	fmt.Print("Type 'yes' to continue: ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(answer) != "yes" {
		color.Red("Aborted.")
		os.Exit(1)
	}

	admin, err := a.UserService.SystemReset(ctx)
	if err != nil {
		color.Red("Reset failed: %v", err)
		os.Exit(1)
	}
	color.Green("Reset complete. Seeded admin %s (id %s).", admin.Username, admin.ID)
}

func runCreateAdmin(ctx context.Context, a *app.App) {
	reader := bufio.NewReader(os.Stdin)
	username := prompt(reader, "Username")
	email := prompt(reader, "Email")
	phone := prompt(reader, "Phone")

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		color.Red("Failed to read password: %v", err)
		os.Exit(1)
	}

	created, _, err := a.UserService.Register(ctx, username, email, phone, string(password))
	if err != nil {
		color.Red("Failed to create user: %v", err)
		os.Exit(1)
	}
	role := string(domainuser.RoleAdmin)
	status := string(domainuser.StatusApproved)
	promoted, err := a.UserService.Update(ctx, created.ID, &dto.UserUpdate{
		Role:   &role,
		Status: &status,
	})
	if err != nil {
		color.Red("Failed to promote user: %v", err)
		os.Exit(1)
	}
	color.Green("Created admin %s (id %s).", promoted.Username, promoted.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
