package api

import (
	"github.com/lysyi3m/icon-lists/app/database"
)

type Handler struct {
	outputDir string
	outputs   map[string]struct{}
	runRepo   database.RunRepository
}

type setInfo struct {
	Name  string   `json:"name"`
	Views []string `json:"views"`
}

type runInfo struct {
	Set       string               `json:"set"`
	State     string               `json:"state"`
	Success   bool                 `json:"success"`
	FailedAt  string               `json:"failed_at,omitempty"`
	Error     string               `json:"error,omitempty"`
	Warnings  int                  `json:"warnings"`
	StartedAt string               `json:"started_at"`
	Duration  string               `json:"duration"`
	Outputs   []database.RunOutput `json:"outputs"`
}
