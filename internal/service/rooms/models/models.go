package models

import "github.com/mairie-chartrettes/SalleReservationService/internal/domain"

// TariffView exposes one tariff tier, nil when the tier is unset.
type TariffView struct {
	Chartrettois float64 `json:"chartrettois"`
	Association  float64 `json:"association"`
	Exterieur    float64 `json:"exterieur"`
}

// RoomResponse is the room as served over HTTP.
type RoomResponse struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Capacity       int         `json:"capacity"`
	IsPaid         bool        `json:"isPaid"`
	Deposit        float64     `json:"deposit"`
	PricingFullDay *TariffView `json:"pricingFullDay,omitempty"`
	PricingHalfDay *TariffView `json:"pricingHalfDay,omitempty"`
	PricingHourly  *TariffView `json:"pricingHourly,omitempty"`
}

// RoomListResponse wraps a list of rooms.
type RoomListResponse struct {
	Rooms []*RoomResponse `json:"rooms"`
}

// FromDomainRoom converts a domain room.
func FromDomainRoom(r *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:             r.ID,
		Name:           r.Name,
		Capacity:       r.Capacity,
		IsPaid:         r.IsPaid,
		Deposit:        r.Deposit,
		PricingFullDay: tariffView(r.PricingFullDay),
		PricingHalfDay: tariffView(r.PricingHalfDay),
		PricingHourly:  tariffView(r.PricingHourly),
	}
}

// FromDomainRoomList converts a list of domain rooms.
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	out := make([]*RoomResponse, len(rooms))
	for i, r := range rooms {
		out[i] = FromDomainRoom(r)
	}
	return &RoomListResponse{Rooms: out}
}

func tariffView(t *domain.TariffTable) *TariffView {
	if t == nil {
		return nil
	}
	return &TariffView{
		Chartrettois: t.Chartrettois,
		Association:  t.Association,
		Exterieur:    t.Exterieur,
	}
}
