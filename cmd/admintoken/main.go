package main

import (
	"encoding/json"
	"fmt"
	"os"

	"banner-service/internal/core/auth"
	"banner-service/internal/core/config"
)

// Prints a signed admin token as JSON.
// Usage: admintoken <subject> [permission...]
// Without permissions the token grants every banner permission.
func main() {
	if len(os.Args) < 2 {
		fmt.Println(`{"error": "Please provide a subject as an argument"}`)
		os.Exit(1)
	}
	subject := os.Args[1]

	cfg, err := config.Load(".")
	if err != nil {
		printError(err)
	}

	permissions, err := parsePermissions(os.Args[2:])
	if err != nil {
		printError(err)
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	token, err := tokens.Issue(subject, permissions...)
	if err != nil {
		printError(err)
	}

	out, _ := json.Marshal(map[string]any{
		"token":       token,
		"subject":     subject,
		"permissions": permissions,
		"expiresIn":   cfg.Auth.TokenTTL().String(),
	})
	fmt.Println(string(out))
}

// parsePermissions maps names to permissions, defaulting to all of them.
func parsePermissions(names []string) ([]auth.Permission, error) {
	if len(names) == 0 {
		return auth.Permissions(), nil
	}

	permissions := make([]auth.Permission, 0, len(names))
	for _, name := range names {
		p, err := auth.ParsePermission(name)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, nil
}

func printError(err error) {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Println(string(out))
	os.Exit(1)
}
