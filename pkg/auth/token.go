// Package auth handles interactive credential entry for the CLI.
package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Credential is a page access token paired with the webhook verify token.
type Credential struct {
	AccessToken string
	VerifyToken string
}

// PasteTokens prompts for the page access token and the webhook verify token
// on r. The verify token may be left empty.
func PasteTokens(r io.Reader) (*Credential, error) {
	scanner := bufio.NewScanner(r)

	fmt.Println("Paste your page access token:")
	fmt.Print("> ")
	accessToken, err := readLine(scanner)
	if err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, errors.New("access token cannot be empty")
	}

	fmt.Println("Paste your webhook verify token (leave empty to skip):")
	fmt.Print("> ")
	verifyToken, err := readLine(scanner)
	if err != nil {
		return nil, err
	}

	return &Credential{AccessToken: accessToken, VerifyToken: verifyToken}, nil
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}
