package data

import "time"

// RouteDTO is one catalog record for a transport leg between two named
// locations. Coordinates hold (longitude, latitude) pairs tracing the
// polyline of the leg in travel order.
type RouteDTO struct {
	PK                string       `dynamodbav:"PK"`
	SK                string       `dynamodbav:"SK"`
	Origin            string       `dynamodbav:"origin"`
	Destination       string       `dynamodbav:"destination"`
	OriginLatLng      string       `dynamodbav:"originLatLng"`
	DestinationLatLng string       `dynamodbav:"destinationLatLng"`
	TransportMode     string       `dynamodbav:"transportMode"`
	LeadTime          int          `dynamodbav:"leadTime"`
	Distance          int          `dynamodbav:"distance"`
	Emissions         int          `dynamodbav:"emissions"`
	Coordinates       [][2]float64 `dynamodbav:"coordinates"`
	CreateTime        time.Time    `dynamodbav:"createTime"`
}

type RouteInputDTO struct {
	Origin            *string       `dynamodbav:"origin"`
	Destination       *string       `dynamodbav:"destination"`
	OriginLatLng      *string       `dynamodbav:"originLatLng"`
	DestinationLatLng *string       `dynamodbav:"destinationLatLng"`
	TransportMode     *string       `dynamodbav:"transportMode"`
	LeadTime          *int          `dynamodbav:"leadTime"`
	Distance          *int          `dynamodbav:"distance"`
	Emissions         *int          `dynamodbav:"emissions"`
	Coordinates       *[][2]float64 `dynamodbav:"coordinates"`
}

type RouteDataService interface {
	GetRoute(origin string, destination string) (RouteDTO, error)
	PutRoute(input RouteInputDTO) (RouteDTO, error)
}
