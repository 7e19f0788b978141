package services

import (
	"strings"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
)

// FormSequence is the order record-entry pages are filled in.
var FormSequence = []models.Page{
	models.PageWorkers,
	models.PageHealthRecords,
	models.PageVaccinations,
	models.PageMedicalVisits,
	models.PageFacilities,
}

// FirstFormPage is where signed-in users land.
func FirstFormPage() models.Page {
	return FormSequence[0]
}

// SequenceIndex returns the position of the page whose file name matches
// ref (case-insensitive), or -1.
func SequenceIndex(ref string) int {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "/")
	for i, p := range FormSequence {
		if strings.EqualFold(p.File, ref) {
			return i
		}
	}
	return -1
}

// NextPage returns the page after ref. ok is false for the last page and
// for pages outside the sequence.
func NextPage(ref string) (models.Page, bool) {
	i := SequenceIndex(ref)
	if i == -1 || i+1 >= len(FormSequence) {
		return models.Page{}, false
	}
	return FormSequence[i+1], true
}
