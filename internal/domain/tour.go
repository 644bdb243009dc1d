package domain

// TourType represents the kind of tour requested through self-service
type TourType string

const (
	TourVirtual            TourType = "virtualTour"
	TourInPerson           TourType = "inPersonTour"
	TourAgentless          TourType = "agentlessTour"
	TourInPersonSelfGuided TourType = "inPersonSelfGuidedTour"
	TourLeasingAppointment TourType = "leasingAppointment"
)

// KnownTourTypes перечень всех известных типов туров
var KnownTourTypes = []TourType{
	TourVirtual,
	TourInPerson,
	TourAgentless,
	TourInPersonSelfGuided,
	TourLeasingAppointment,
}

// IsKnown returns true if the tour type is one of the defined values
func (t TourType) IsKnown() bool {
	for _, k := range KnownTourTypes {
		if t == k {
			return true
		}
	}
	return false
}
