package repositories

import "github.com/desertthunder/tunebox/internal/models"

var _ models.Repository[*models.Playlist] = (*PlaylistRepository)(nil)
