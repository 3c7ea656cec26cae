package library

import "time"

// Photo is a single imported image. RelativePath and ThumbnailPath are the only
// references into blob storage; the store never inspects blob contents.
type Photo struct {
	// ID is an opaque random identifier, stable for the record's lifetime and
	// never reused after deletion.
	ID   string `json:"id"`
	Name string `json:"name"`
	// RelativePath locates the original under the photos tree so the storage
	// root can move independently.
	RelativePath  string `json:"relative_path"`
	ThumbnailPath string `json:"thumbnail_path"`
	// OriginalPath is the absolute source path at import time, retained for
	// reference only and never re-read.
	OriginalPath string `json:"original_path"`
	// Date is the human-readable import date shown in the gallery.
	Date      string `json:"date"`
	DateAdded string `json:"date_added"`
	Favorite  bool   `json:"favorite"`
	// Faces comes from a placeholder generator, not a real detector.
	Faces int `json:"faces"`
	// Album references an Album.ID; nil means unassigned.
	Album    *string  `json:"album"`
	Tags     []string `json:"tags"`
	FileSize int64    `json:"file_size"`
}

// Album groups photos. Membership is derived by scanning photos for a matching
// Album field; albums carry no member list of their own.
type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PhotoPatch carries partial photo updates. Nil pointer fields are left
// untouched. ClearAlbum distinguishes "unassign" from "no change" since Album
// itself is nullable.
type PhotoPatch struct {
	Name       *string
	Favorite   *bool
	Faces      *int
	Album      *string
	ClearAlbum bool
	Tags       *[]string
}

// AlbumPatch carries partial album updates.
type AlbumPatch struct {
	Name *string
}

func (p PhotoPatch) applyTo(photo *Photo) {
	if p.Name != nil {
		photo.Name = *p.Name
	}
	if p.Favorite != nil {
		photo.Favorite = *p.Favorite
	}
	if p.Faces != nil {
		photo.Faces = *p.Faces
	}
	if p.Album != nil {
		album := *p.Album
		photo.Album = &album
	} else if p.ClearAlbum {
		photo.Album = nil
	}
	if p.Tags != nil {
		photo.Tags = append([]string(nil), (*p.Tags)...)
	}
}

func (p AlbumPatch) applyTo(album *Album) {
	if p.Name != nil {
		album.Name = *p.Name
	}
}

// clonePhoto returns a deep copy so callers cannot mutate stored state.
func clonePhoto(photo Photo) Photo {
	out := photo
	if photo.Album != nil {
		album := *photo.Album
		out.Album = &album
	}
	out.Tags = append([]string(nil), photo.Tags...)
	return out
}

func clonePhotos(photos []Photo) []Photo {
	out := make([]Photo, len(photos))
	for i, photo := range photos {
		out[i] = clonePhoto(photo)
	}
	return out
}
