package engine

import (
	"github.com/Veraticus/comps/internal/model"
)

// RecordSource provides the records sold in a month, keyed "MM/YYYY".
type RecordSource interface {
	RecordsFor(key string) []model.Record
}
