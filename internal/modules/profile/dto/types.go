package dto

import "time"

type RegisterInput struct {
	Name   string
	Email  string
	Church string
}

type ProfileOutput struct {
	ID        string
	Name      string
	Email     string
	Church    string
	CreatedAt time.Time
}
