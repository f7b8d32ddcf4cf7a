package tui

import "time"

type countFilesMsg struct {
	total int
}

type processCompleteMsg struct {
	err error
}

type errMsg error

type progressTickMsg time.Time
