package services

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/caoimherice/FoodMiles/internal/notifications"
)

type NotificationSNSService struct {
	Sns      sns.Client
	TopicArn string
}

func (n *NotificationSNSService) PublishSavedList(message notifications.SavedListMessage) (*notifications.PublishOutput, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}
	output, err := n.Sns.Publish(context.TODO(), &sns.PublishInput{
		Message:  aws.String(string(body)),
		Subject:  aws.String("Shopping list saved"),
		TopicArn: aws.String(n.TopicArn),
	})

	if err != nil {
		return nil, err
	}

	return &notifications.PublishOutput{
		MessageId: *output.MessageId,
	}, nil
}
