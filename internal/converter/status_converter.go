package converter

import (
	"strings"

	"clinic-crm-service/internal/domain/entity"
)

var statusSeparators = strings.NewReplacer("-", "", "_", "", " ", "")

// canonicalKey collapses case and separator variants so "follow-up",
// "FollowUp" and "followup" all compare equal.
func canonicalKey(raw string) string {
	return statusSeparators.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// NormalizePatientStatus maps whatever casing or spelling the gateway sent
// onto the canonical status. Unrecognized input falls back to Active rather
// than failing; upstream data is too messy to make this an error.
func NormalizePatientStatus(raw string) entity.PatientStatus {
	switch canonicalKey(raw) {
	case "active":
		return entity.PatientStatusActive
	case "booked":
		return entity.PatientStatusBooked
	case "followup":
		return entity.PatientStatusFollowUp
	case "inactive":
		return entity.PatientStatusInactive
	default:
		return entity.PatientStatusActive
	}
}

// PatientStatusWire returns the exact string the gateway expects on write.
func PatientStatusWire(status entity.PatientStatus) string {
	return string(NormalizePatientStatus(string(status)))
}

// PatientStatusLabel returns the display label for the UI.
func PatientStatusLabel(status entity.PatientStatus) string {
	if NormalizePatientStatus(string(status)) == entity.PatientStatusFollowUp {
		return "Follow-up"
	}
	return string(NormalizePatientStatus(string(status)))
}

// NormalizeAppointmentStatus maps onto the closed 4-value appointment enum.
// Case-insensitive on read, capitalized wire casing on write. Unrecognized
// input falls back to Pending.
func NormalizeAppointmentStatus(raw string) entity.AppointmentStatus {
	switch canonicalKey(raw) {
	case "confirmed":
		return entity.AppointmentStatusConfirmed
	case "completed":
		return entity.AppointmentStatusCompleted
	case "cancelled", "canceled":
		return entity.AppointmentStatusCancelled
	case "pending":
		return entity.AppointmentStatusPending
	default:
		return entity.AppointmentStatusPending
	}
}

// NormalizeGender tolerates case and single-letter abbreviations on read.
// Unrecognized values map to unknown (empty), never an error.
func NormalizeGender(raw string) entity.Gender {
	switch canonicalKey(raw) {
	case "m", "male":
		return entity.GenderMale
	case "f", "female":
		return entity.GenderFemale
	case "o", "other":
		return entity.GenderOther
	default:
		return entity.GenderUnknown
	}
}

// NormalizeCampaignTag maps free-form tag input onto the closed recipient
// filter set. Tags gate campaign sends, so here an unrecognized value is
// reported instead of silently defaulted.
func NormalizeCampaignTag(raw string) (entity.CampaignTag, bool) {
	switch canonicalKey(raw) {
	case "all":
		return entity.CampaignTagAll, true
	case "active":
		return entity.CampaignTagActive, true
	case "inactive":
		return entity.CampaignTagInactive, true
	case "booked":
		return entity.CampaignTagBooked, true
	case "followup":
		return entity.CampaignTagFollowUp, true
	case "new":
		return entity.CampaignTagNew, true
	case "birthday":
		return entity.CampaignTagBirthday, true
	default:
		return "", false
	}
}
