// Package gallery filters the in-memory photo collection by view and free-text
// search. Filtering is pure and stable: results keep the collection's
// insertion order.
package gallery

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"photovault/internal/library"
)

type viewKind int

const (
	viewAll viewKind = iota
	viewFavorites
	viewPeople
	viewAlbum
)

// View selects which slice of the collection the gallery shows. Exactly one
// view is active at a time.
type View struct {
	kind    viewKind
	albumID string
}

// All shows every photo.
func All() View { return View{kind: viewAll} }

// Favorites shows photos with the favorite flag set.
func Favorites() View { return View{kind: viewFavorites} }

// People shows photos with at least one detected face.
func People() View { return View{kind: viewPeople} }

// Album shows photos assigned to the given album id.
func Album(id string) View { return View{kind: viewAlbum, albumID: id} }

// ParseView interprets the CLI view syntax: all, favorites, people, or
// album:<id>.
func ParseView(value string) (View, error) {
	switch trimmed := strings.TrimSpace(value); trimmed {
	case "", "all":
		return All(), nil
	case "favorites":
		return Favorites(), nil
	case "people":
		return People(), nil
	default:
		if id, ok := strings.CutPrefix(trimmed, "album:"); ok && id != "" {
			return Album(id), nil
		}
		return View{}, fmt.Errorf("unknown view %q (expected all, favorites, people, or album:<id>)", value)
	}
}

func (v View) String() string {
	switch v.kind {
	case viewFavorites:
		return "favorites"
	case viewPeople:
		return "people"
	case viewAlbum:
		return "album:" + v.albumID
	default:
		return "all"
	}
}

func (v View) matches(photo library.Photo) bool {
	switch v.kind {
	case viewFavorites:
		return photo.Favorite
	case viewPeople:
		return photo.Faces > 0
	case viewAlbum:
		return photo.Album != nil && *photo.Album == v.albumID
	default:
		return true
	}
}

var fold = cases.Fold()

// Filter applies the view, then a case-insensitive substring match against
// name, date, or any tag. An empty query is a no-op. The result preserves
// insertion order restricted to matches.
func Filter(photos []library.Photo, view View, query string) []library.Photo {
	needle := fold.String(strings.TrimSpace(query))

	var filtered []library.Photo
	for _, photo := range photos {
		if !view.matches(photo) {
			continue
		}
		if needle != "" && !matchesText(photo, needle) {
			continue
		}
		filtered = append(filtered, photo)
	}
	return filtered
}

func matchesText(photo library.Photo, needle string) bool {
	if strings.Contains(fold.String(photo.Name), needle) {
		return true
	}
	if strings.Contains(fold.String(photo.Date), needle) {
		return true
	}
	for _, tag := range photo.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return false
}
