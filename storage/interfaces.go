package storage

import "howth-congestion/models"

// SurveySource is the interface any survey backend must satisfy.
type SurveySource interface {
	ReadRaw() ([]*models.RawResponse, error)
	Close() error
}
