package util

import "fmt"

// PatientIDPrefix is the fixed prefix for generated patient identifiers.
const PatientIDPrefix = "PAT"

// PatientID formats a standardized patient identifier from a 0-based
// index, e.g. index 0 -> "PAT_0000".
func PatientID(index int) string {
	return fmt.Sprintf("%s_%04d", PatientIDPrefix, index)
}

// ImageFilename builds the filename for a patient's image of a given
// modality, e.g. "PAT_0000_MRI.npy".
func ImageFilename(patientID, modality, extension string) string {
	return fmt.Sprintf("%s_%s%s", patientID, modality, extension)
}
