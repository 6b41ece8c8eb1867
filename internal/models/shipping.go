package models

type ShippingMethod string

const (
	ShipStandard       ShippingMethod = "standard"
	ShipExpress        ShippingMethod = "express"
	ShipPickup         ShippingMethod = "pickup"
	ShipYalidinaHome   ShippingMethod = "yalidina_home"
	ShipYalidinaPickup ShippingMethod = "yalidina_pickup"
	ShipAramexHome     ShippingMethod = "aramex_home"
	ShipAramexPickup   ShippingMethod = "aramex_pickup"
)

// ShippingRate is a static catalog entry. An empty AvailableWilayas list
// means the service is available everywhere. FreeThreshold and MaxWeight
// are disabled when zero.
type ShippingRate struct {
	Method            ShippingMethod `json:"method"`
	Name              string         `json:"name"`
	Price             float64        `json:"price"`
	EstimatedDays     int            `json:"estimated_days"`
	FreeThreshold     float64        `json:"free_threshold,omitempty"`
	MaxWeight         float64        `json:"max_weight,omitempty"`
	AvailableWilayas  []string       `json:"available_wilayas,omitempty"`
	TrackingIncluded  bool           `json:"tracking_included"`
	InsuranceIncluded bool           `json:"insurance_included"`
	RequiresSignature bool           `json:"requires_signature"`
}

// ShippingAddress holds a delivery destination. Only Wilaya is semantically
// significant to the rate engine; the rest is carried as-is.
type ShippingAddress struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	StreetAddress string `json:"street_address"`
	Wilaya        string `json:"wilaya"`
	Commune       string `json:"commune"`
	PostalCode    string `json:"postal_code"`
	Phone         string `json:"phone"`
	Landmark      string `json:"landmark,omitempty"`
}

// DefaultShippingRates is the carrier catalog for the Algerian market.
// Declaration order is the presentation order.
func DefaultShippingRates() []ShippingRate {
	return []ShippingRate{
		{
			Method:           ShipStandard,
			Name:             "Standard Delivery",
			Price:            500,
			EstimatedDays:    5,
			FreeThreshold:    5000,
			MaxWeight:        30,
			TrackingIncluded: true,
		},
		{
			Method:            ShipExpress,
			Name:              "Express Delivery",
			Price:             1000,
			EstimatedDays:     2,
			MaxWeight:         20,
			AvailableWilayas:  []string{"16", "31", "09", "25", "19", "06", "23"},
			TrackingIncluded:  true,
			InsuranceIncluded: true,
			RequiresSignature: true,
		},
		{
			Method:            ShipPickup,
			Name:              "Store Pickup",
			Price:             0,
			EstimatedDays:     1,
			AvailableWilayas:  []string{"16", "31"},
			RequiresSignature: true,
		},
		{
			Method:            ShipYalidinaHome,
			Name:              "Yalidina Home Delivery",
			Price:             400,
			EstimatedDays:     3,
			FreeThreshold:     8000,
			MaxWeight:         25,
			AvailableWilayas:  []string{"16", "31", "09", "25", "19", "06", "23", "13", "14", "15", "35", "42"},
			TrackingIncluded:  true,
			InsuranceIncluded: true,
		},
		{
			Method:           ShipYalidinaPickup,
			Name:             "Yalidina Pickup Point",
			Price:            300,
			EstimatedDays:    3,
			FreeThreshold:    6000,
			MaxWeight:        25,
			AvailableWilayas: []string{"16", "31", "09", "25", "19", "06", "23", "13", "14", "15", "35", "42", "02", "27", "29"},
			TrackingIncluded: true,
		},
		{
			Method:            ShipAramexHome,
			Name:              "Aramex Home Delivery",
			Price:             600,
			EstimatedDays:     4,
			MaxWeight:         30,
			AvailableWilayas:  []string{"16", "31", "09", "25", "19", "06", "23"},
			TrackingIncluded:  true,
			InsuranceIncluded: true,
			RequiresSignature: true,
		},
		{
			Method:            ShipAramexPickup,
			Name:              "Aramex Pickup Point",
			Price:             450,
			EstimatedDays:     4,
			MaxWeight:         30,
			AvailableWilayas:  []string{"16", "31", "09", "25", "19", "06", "23", "13", "14"},
			TrackingIncluded:  true,
			InsuranceIncluded: true,
		},
	}
}
