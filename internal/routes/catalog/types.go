package catalog

import (
	"time"

	"github.com/caoimherice/FoodMiles/internal/data"
)

type RouteInput struct {
	Origin            *string       `json:"origin"`
	Destination       *string       `json:"destination"`
	OriginLatLng      *string       `json:"originLatLng"`
	DestinationLatLng *string       `json:"destinationLatLng"`
	TransportMode     *string       `json:"transportMode"`
	LeadTime          *int          `json:"leadTime"`
	Distance          *int          `json:"distance"`
	Emissions         *int          `json:"emissions"`
	Coordinates       *[][2]float64 `json:"coordinates"`
}

func (r *RouteInput) ToData() data.RouteInputDTO {
	return data.RouteInputDTO{
		Origin:            r.Origin,
		Destination:       r.Destination,
		OriginLatLng:      r.OriginLatLng,
		DestinationLatLng: r.DestinationLatLng,
		TransportMode:     r.TransportMode,
		LeadTime:          r.LeadTime,
		Distance:          r.Distance,
		Emissions:         r.Emissions,
		Coordinates:       r.Coordinates,
	}
}

type CatalogRoute struct {
	Origin            string       `json:"origin"`
	Destination       string       `json:"destination"`
	OriginLatLng      string       `json:"originLatLng,omitempty"`
	DestinationLatLng string       `json:"destinationLatLng,omitempty"`
	TransportMode     string       `json:"transportMode,omitempty"`
	LeadTime          int          `json:"leadTime"`
	Distance          int          `json:"distance"`
	Emissions         int          `json:"emissions"`
	Coordinates       [][2]float64 `json:"coordinates,omitempty"`
	CreateTime        time.Time    `json:"createTime"`
}

func NewCatalogRoute(dto data.RouteDTO) CatalogRoute {
	return CatalogRoute{
		Origin:            dto.Origin,
		Destination:       dto.Destination,
		OriginLatLng:      dto.OriginLatLng,
		DestinationLatLng: dto.DestinationLatLng,
		TransportMode:     dto.TransportMode,
		LeadTime:          dto.LeadTime,
		Distance:          dto.Distance,
		Emissions:         dto.Emissions,
		Coordinates:       dto.Coordinates,
		CreateTime:        dto.CreateTime,
	}
}
