package present

import (
	"net/url"

	"rawabit/internal/models"
)

const (
	placeholderBase = "https://placehold.co/640x360?text="
	avatarBase      = "https://ui-avatars.com/api/?background=0D8ABC&color=fff&name="
)

// PlaceholderImage is the stand-in image for items of kind that have none.
func PlaceholderImage(kind string) string {
	return placeholderBase + url.QueryEscape(kind)
}

// AvatarURL returns the user's avatar or a generated initials avatar.
func AvatarURL(u *models.User) string {
	if u == nil {
		return avatarBase + "%3F"
	}
	if u.Avatar != "" {
		return u.Avatar
	}
	return avatarBase + url.QueryEscape(u.DisplayName())
}

func imageOrPlaceholder(image, kind string) string {
	if image != "" {
		return image
	}
	return PlaceholderImage(kind)
}
