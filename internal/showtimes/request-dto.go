package showtimes

import "time"

type CreateShowtimeRequest struct {
	MovieTitle      string    `json:"movie_title" binding:"required,min=1,max=255"`
	Auditorium      string    `json:"auditorium" binding:"required,min=1,max=100"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=600"`
	Rows            int       `json:"rows" binding:"required,min=1,max=26"`
	SeatsPerRow     int       `json:"seats_per_row" binding:"required,min=1,max=50"`
}
