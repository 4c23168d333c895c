package entity

// CampaignTag selects which patients a campaign message goes to. Wire values
// are the stable identifiers the gateway expects; display labels are what the
// UI shows. The set is closed.
type CampaignTag string

const (
	CampaignTagAll      CampaignTag = "all"
	CampaignTagActive   CampaignTag = "active"
	CampaignTagInactive CampaignTag = "inactive"
	CampaignTagBooked   CampaignTag = "booked"
	CampaignTagFollowUp CampaignTag = "follow_up"
	CampaignTagNew      CampaignTag = "new"
	CampaignTagBirthday CampaignTag = "birthday"
)

// CampaignTags lists every valid tag in display order.
var CampaignTags = []CampaignTag{
	CampaignTagAll,
	CampaignTagActive,
	CampaignTagInactive,
	CampaignTagBooked,
	CampaignTagFollowUp,
	CampaignTagNew,
	CampaignTagBirthday,
}

var campaignTagLabels = map[CampaignTag]string{
	CampaignTagAll:      "All",
	CampaignTagActive:   "Active",
	CampaignTagInactive: "Inactive",
	CampaignTagBooked:   "Booked",
	CampaignTagFollowUp: "Follow-up",
	CampaignTagNew:      "New",
	CampaignTagBirthday: "Birthday",
}

// Label returns the display label for the tag
func (t CampaignTag) Label() string {
	if label, ok := campaignTagLabels[t]; ok {
		return label
	}
	return string(t)
}

// Valid checks that the tag belongs to the closed set
func (t CampaignTag) Valid() bool {
	_, ok := campaignTagLabels[t]
	return ok
}
