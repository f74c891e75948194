package items

import (
	"github.com/caoimherice/FoodMiles/internal/aggregation"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/routes/util"
)

type Leg struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type ItemInput struct {
	Name   *string `json:"name"`
	Origin *string `json:"origin"`
	Legs   *[]Leg  `json:"legs"`
}

func ConvertLegToData(leg Leg) data.LegDTO {
	return data.LegDTO{
		Origin:      leg.Origin,
		Destination: leg.Destination,
	}
}

func ConvertLegDataToTransfer(leg data.LegDTO) Leg {
	return Leg{
		Origin:      leg.Origin,
		Destination: leg.Destination,
	}
}

func (i *ItemInput) ToData() data.ItemInputDTO {
	return data.ItemInputDTO{
		Name:   i.Name,
		Origin: i.Origin,
		Legs:   util.MapOnList(i.Legs, ConvertLegToData),
	}
}

type Item struct {
	Name   string `json:"name"`
	Origin string `json:"origin"`
	Legs   []Leg  `json:"legs"`
}

func NewItem(dto data.ItemDTO) Item {
	return Item{
		Name:   dto.Name,
		Origin: dto.Origin,
		Legs:   *util.MapOnList(&dto.Legs, ConvertLegDataToTransfer),
	}
}

// ItemDetail is the journey view: the stored item plus its freshly
// aggregated totals and traced path.
type ItemDetail struct {
	Name      string                   `json:"name"`
	Origin    string                   `json:"origin"`
	Legs      []Leg                    `json:"legs"`
	Distance  int                      `json:"distance"`
	Emissions int                      `json:"emissions"`
	LeadTime  int                      `json:"leadTime"`
	Path      []aggregation.Coordinate `json:"path"`
}

// NotFoundBody carries alternatives alongside the item miss, so a client
// can offer "did you mean" without a second round trip.
type NotFoundBody struct {
	Message     string         `json:"message"`
	Suggestions []data.ItemRef `json:"suggestions"`
}
