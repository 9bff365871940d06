package pipeline

import "socdash/pkg/models"

// HuntWriter writes finished hunt tasks.
type HuntWriter interface {
	WriteHunts(tasks []*models.HuntTask) error
	Close() error
}
