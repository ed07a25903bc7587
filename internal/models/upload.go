package models

import "time"

type Upload struct {
	ID        string
	UserName  string
	Filename  string
	MIME      string
	SizeBytes int64
	CreatedAt time.Time
}

// PublicPath is the path the stored file is served back under.
func (u Upload) PublicPath() string {
	return "/uploads/" + u.Filename
}
