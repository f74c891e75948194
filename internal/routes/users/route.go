package users

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/caoimherice/FoodMiles/internal/data"
	"github.com/caoimherice/FoodMiles/internal/exceptions"
	"github.com/caoimherice/FoodMiles/internal/routes"
	"github.com/caoimherice/FoodMiles/internal/routes/util"
)

type User struct {
	UserId     string    `json:"userId"`
	Name       string    `json:"name"`
	CreateTime time.Time `json:"createTime"`
}

type UserInput struct {
	UserId *string `json:"userId"`
	Name   *string `json:"name"`
}

func (u *UserInput) ToData() data.UserInputDTO {
	return data.UserInputDTO{
		UserId: u.UserId,
		Name:   u.Name,
	}
}

func NewUser(dto data.UserDTO) User {
	return User{
		UserId:     dto.UserId,
		Name:       dto.Name,
		CreateTime: dto.CreateTime,
	}
}

type UserService struct {
	data data.UserDataService
}

func NewRoute(data data.UserDataService) routes.Service {
	return &UserService{
		data: data,
	}
}

func (us *UserService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/users/:userId": util.AuthorizedRoute(us.GetUser),
		"POST:/users":        util.AuthorizedRoute(us.CreateUser),
	}
}

func (us *UserService) GetUser(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	user, err := us.data.GetUser(util.RequestParam(ctx, "userId"))
	return util.SerializeResponseOK(NewUser, user, err)
}

func (us *UserService) CreateUser(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := UserInput{}
	if err := json.Unmarshal([]byte(event.Body), &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, exceptions.InvalidInput(err.Error())
	}
	created, err := us.data.PutUser(input.ToData())
	return util.SerializeResponseOK(NewUser, created, err)
}
