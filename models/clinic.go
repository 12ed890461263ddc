package models

import "time"

// ClinicControlID is the _id of the singleton clinic control document.
const ClinicControlID = "clinic-control"

// ClinicControl is the administrator-owned override switch. When
// ManualOverride is set, booking is suspended for the inclusive
// ClosedFrom..ClosedTill window (ClosedTill empty means indefinitely).
type ClinicControl struct {
	ID             string    `bson:"_id" json:"-"`
	ManualOverride bool      `bson:"manual_override" json:"manualOverride"`
	ClosedFrom     string    `bson:"closed_from,omitempty" json:"closedFrom,omitempty"`
	ClosedTill     string    `bson:"closed_till,omitempty" json:"closedTill,omitempty"`
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
