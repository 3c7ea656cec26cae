package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"photovault/internal/library"
)

func printJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// humanSize renders a byte count the way the gallery footer did: MB with two
// decimals above 1 MiB, otherwise KB or plain bytes.
func humanSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func albumLabel(photo library.Photo) string {
	if photo.Album == nil {
		return "-"
	}
	return *photo.Album
}

func favoriteLabel(favorite bool) string {
	if favorite {
		return "yes"
	}
	return "no"
}

func tagsLabel(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}
