package main

import (
	"fmt"

	"curator/internal/config"
)

// resolveArgPath expands ~ in a user-supplied path argument.
func resolveArgPath(arg string) (string, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", arg, err)
	}
	return path, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
