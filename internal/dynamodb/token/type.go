package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler converts a DynamoDB pagination key to and from an opaque
// client token. Tokens are bound to the userId they were issued for.
type TokenMarshaler interface {
	Marshal(userId string, lastKey map[string]types.AttributeValue) ([]byte, error)

	Unmarshal(userId string, token []byte) (map[string]types.AttributeValue, error)
}
