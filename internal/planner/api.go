package planner

import (
	"fmt"
	"io"
	"math"
	"net/url"
	"strings"

	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const _metersPerMile = 1609.344

// DirectionsAPI talks to a GeoJSON directions service. The caller hands
// in "lat,lng" strings the way they are stored on a catalog route; the
// wire format wants "lng,lat", so coordinates are flipped on the way out.
type DirectionsAPI struct {
	Endpoint string
	ApiKey   string
	Client   *retryablehttp.Client
}

func NewDirectionsAPI(endpoint string, apiKey string) *DirectionsAPI {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &DirectionsAPI{
		Endpoint: endpoint,
		ApiKey:   apiKey,
		Client:   client,
	}
}

func _flipLatLng(latLng string) (string, error) {
	parts := strings.Split(strings.TrimSpace(latLng), ",")
	if len(parts) != 2 {
		return "", exceptions.InvalidInput(fmt.Sprintf("%q is not a \"lat,lng\" pair", latLng))
	}
	return strings.TrimSpace(parts[1]) + "," + strings.TrimSpace(parts[0]), nil
}

func (api *DirectionsAPI) Plan(originLatLng string, destinationLatLng string) (RoutePlan, error) {
	start, err := _flipLatLng(originLatLng)
	if err != nil {
		return RoutePlan{}, err
	}
	end, err := _flipLatLng(destinationLatLng)
	if err != nil {
		return RoutePlan{}, err
	}
	params := url.Values{}
	params.Set("api_key", api.ApiKey)
	params.Set("start", start)
	params.Set("end", end)
	resp, err := api.Client.Get(fmt.Sprintf("%s/v2/directions/driving-hgv?%s", api.Endpoint, params.Encode()))
	if err != nil {
		return RoutePlan{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RoutePlan{}, err
	}
	if resp.StatusCode != 200 {
		return RoutePlan{}, exceptions.InternalServer(fmt.Sprintf("Directions service responded %d", resp.StatusCode))
	}
	feature := gjson.GetBytes(body, "features.0")
	if !feature.Exists() {
		return RoutePlan{}, exceptions.NotFound("directions", originLatLng+" -> "+destinationLatLng)
	}
	meters := feature.Get("properties.summary.distance").Float()
	seconds := feature.Get("properties.summary.duration").Float()
	plan := RoutePlan{
		Distance: int(math.Round(meters / _metersPerMile)),
		LeadTime: int(math.Ceil(seconds / 86400)),
	}
	for _, pair := range feature.Get("geometry.coordinates").Array() {
		points := pair.Array()
		if len(points) < 2 {
			continue
		}
		plan.Coordinates = append(plan.Coordinates, [2]float64{points[0].Float(), points[1].Float()})
	}
	return plan, nil
}
