package server

import "sort"

// wordBank maps a category to its pre-filled lowercase word list.
// Read-only; moderators can use these instead of a custom submission.
var wordBank = map[string][]string{
	"Animals":    {"elephant", "giraffe", "penguin", "butterfly", "kangaroo", "dolphin", "cheetah", "octopus"},
	"Countries":  {"france", "australia", "brazil", "japan", "canada", "egypt", "india", "norway"},
	"Movies":     {"avatar", "titanic", "inception", "matrix", "gladiator", "frozen", "jaws", "rocky"},
	"Sports":     {"basketball", "football", "tennis", "swimming", "hockey", "golf", "baseball", "volleyball"},
	"Food":       {"pizza", "chocolate", "hamburger", "spaghetti", "sandwich", "pancake", "cookie", "banana"},
	"Technology": {"computer", "smartphone", "internet", "software", "database", "javascript", "python", "robot"},
}

func wordBankCategories() []string {
	categories := make([]string, 0, len(wordBank))
	for name := range wordBank {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories
}

func wordsByCategory(category string) []string {
	words, ok := wordBank[category]
	if !ok {
		return []string{}
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}
