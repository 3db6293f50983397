package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxUsernameLength = 20
	maxCategoryLength = 32
	maxWordLength     = 40
	maxWordsPerSubmit = 50
	maxRoomPlayers    = 12
)

var validate = validator.New()

func validateUsername(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", errors.New("username is required")
	}
	if len(trimmed) > maxUsernameLength {
		return "", fmt.Errorf("username must be %d characters or fewer", maxUsernameLength)
	}
	if !isSafeText(trimmed) {
		return "", errors.New("username contains unsupported characters")
	}
	return trimmed, nil
}

func validateCategory(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxCategoryLength {
		return "", fmt.Errorf("category must be %d characters or fewer", maxCategoryLength)
	}
	for _, r := range trimmed {
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '-' || r == '_' || r == ' ' {
			continue
		}
		return "", errors.New("category contains unsupported characters")
	}
	return trimmed, nil
}

// validateWords checks the raw submission before normalization. Words
// must be plain ascii letters so the per-letter mask lines up with the
// stored word.
func validateWords(words []string) error {
	if len(words) == 0 {
		return errors.New("words are required")
	}
	if len(words) > maxWordsPerSubmit {
		return fmt.Errorf("at most %d words per submission", maxWordsPerSubmit)
	}
	for _, word := range words {
		trimmed := strings.TrimSpace(word)
		if trimmed == "" {
			continue
		}
		if len(trimmed) > maxWordLength {
			return fmt.Errorf("words must be %d characters or fewer", maxWordLength)
		}
		for _, r := range strings.ToLower(trimmed) {
			if r < 'a' || r > 'z' {
				return fmt.Errorf("word %q must contain only letters", trimmed)
			}
		}
	}
	return nil
}

func validateLetter(letter string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(letter))
	if len(trimmed) != 1 {
		return "", errors.New("guess must be a single letter")
	}
	if trimmed[0] < 'a' || trimmed[0] > 'z' {
		return "", errors.New("guess must be a letter a-z")
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '.':
			continue
		default:
			return false
		}
	}
	return true
}
